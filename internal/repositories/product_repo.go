package repositories

import (
	"lapak/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product with its category and seller populated.
	GetAll() ([]models.Product, error)
	// GetByID returns one product with its seller populated.
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	// FindBySeller returns the seller's listings with categories populated.
	FindBySeller(sellerID uint) ([]models.Product, error)
	// FindSoldBySeller returns the seller's products that appear in at least
	// one closed order.
	FindSoldBySeller(sellerID uint) ([]models.Product, error)
	// FindBySellerAndCategory returns the seller's listings in one category.
	FindBySellerAndCategory(sellerID, categoryID uint) ([]models.Product, error)
	// FindLatest returns the newest listings, up to limit.
	FindLatest(limit int) ([]models.Product, error)
	// Search matches the term as a case-insensitive substring of the title,
	// description, category name or seller username.
	Search(term string) ([]models.Product, error)
}
