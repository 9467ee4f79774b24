package repositories

import (
	"errors"
	"fmt"
	"strings"

	"lapak/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products with their categories and sellers.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Preload("Category").
		Preload("Seller").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product with its seller.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Seller").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product. Save updates all columns, including
// zero values.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a product by its ID.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// FindBySeller retrieves the seller's listings with categories.
func (r *GORMProductRepository) FindBySeller(sellerID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Preload("Category").
		Where("seller_id = ?", sellerID).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products for seller %d: %w", sellerID, err)
	}
	return products, nil
}

// FindSoldBySeller retrieves the seller's products that appear in at least
// one closed order.
func (r *GORMProductRepository) FindSoldBySeller(sellerID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Joins("JOIN order_products ON order_products.product_id = products.id").
		Joins("JOIN orders ON orders.id = order_products.order_id").
		Where("products.seller_id = ? AND orders.closed = ?", sellerID, true).
		Distinct("products.*").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sold products for seller %d: %w", sellerID, err)
	}
	return products, nil
}

// FindBySellerAndCategory retrieves the seller's listings in one category.
func (r *GORMProductRepository) FindBySellerAndCategory(sellerID, categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Where("seller_id = ? AND category_id = ?", sellerID, categoryID).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products for seller %d in category %d: %w", sellerID, categoryID, err)
	}
	return products, nil
}

// FindLatest retrieves the newest listings, up to limit.
func (r *GORMProductRepository) FindLatest(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Preload("Category").
		Preload("Seller").
		Order("id DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get latest products: %w", err)
	}
	return products, nil
}

// Search matches the term as a case-insensitive substring of the title,
// description, category name or seller username.
func (r *GORMProductRepository) Search(term string) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var products []models.Product
	err := r.db.
		Joins("JOIN categories ON categories.id = products.category_id").
		Joins("JOIN users ON users.id = products.seller_id").
		Where(
			"LOWER(products.title) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(categories.name) LIKE ? OR LOWER(users.username) LIKE ?",
			pattern, pattern, pattern, pattern,
		).
		Preload("Category").
		Preload("Seller").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products for %q: %w", term, err)
	}
	return products, nil
}
