package services

import (
	"errors"
	"fmt"

	"lapak/internal/models"
	"lapak/internal/repositories"

	"gorm.io/gorm"
)

// LatestProductLimit caps the storefront's newest-listings feed.
const LatestProductLimit = 20

// ProductService handles business logic for product listings.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products with categories and sellers.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProduct retrieves a single product by ID.
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return product, nil
}

// CreateProduct creates a new listing. A dangling category or seller
// reference is rejected as invalid data.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("product references a missing category or seller: %w", ErrInvalidData)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct updates an existing listing.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("product %d: %w", product.ID, ErrNotFound)
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("product references a missing category or seller: %w", ErrInvalidData)
		}
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	return nil
}

// DeleteProduct deletes a listing by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

// ProductsBySeller retrieves the seller's listings.
func (s *ProductService) ProductsBySeller(sellerID uint) ([]models.Product, error) {
	return s.repo.FindBySeller(sellerID)
}

// ProductsBySellerInCategory retrieves the seller's listings in one category.
func (s *ProductService) ProductsBySellerInCategory(sellerID, categoryID uint) ([]models.Product, error) {
	return s.repo.FindBySellerAndCategory(sellerID, categoryID)
}

// LatestProducts retrieves the newest listings for the storefront feed.
func (s *ProductService) LatestProducts() ([]models.Product, error) {
	return s.repo.FindLatest(LatestProductLimit)
}
