package services

import (
	"errors"
	"fmt"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// FeaturedProductsPerCategory caps the products shown per category on the
// storefront's category overview.
const FeaturedProductsPerCategory = 3

// CategoryService handles business logic for product categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.repo.GetAll()
}

// GetCategory retrieves a single category by ID.
func (s *CategoryService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return category, nil
}

// FeaturedCategories retrieves every category trimmed to its first few
// products for the storefront overview.
func (s *CategoryService) FeaturedCategories() ([]models.Category, error) {
	categories, err := s.repo.GetAllWithProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to get featured categories: %w", err)
	}
	for i := range categories {
		if len(categories[i].Products) > FeaturedProductsPerCategory {
			categories[i].Products = categories[i].Products[:FeaturedProductsPerCategory]
		}
	}
	return categories, nil
}
