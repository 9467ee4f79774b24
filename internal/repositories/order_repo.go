package repositories

import (
	"lapak/internal/models"
)

// OrderRepository defines the interface for order data access, including the
// order-product link set.
type OrderRepository interface {
	// GetByID returns the bare order without associations.
	GetByID(id uint) (*models.Order, error)
	// GetWithProducts returns the order with its products and each product's
	// seller populated.
	GetWithProducts(id uint) (*models.Order, error)
	// GetOpenWithProducts returns the order only while it is still open,
	// with its products populated.
	GetOpenWithProducts(id uint) (*models.Order, error)
	// FindOpenByCustomer returns the customer's open cart without associations.
	FindOpenByCustomer(customerID uint) (*models.Order, error)
	// FindCartByCustomer returns the customer's open cart with products,
	// their categories and their sellers populated.
	FindCartByCustomer(customerID uint) (*models.Order, error)
	Create(order *models.Order) error
	// Update persists the order's own columns; the product link set is
	// managed exclusively through AddProduct/RemoveProduct.
	Update(order *models.Order) error
	// AddProduct inserts the link; adding an existing link is a no-op.
	AddProduct(orderID, productID uint) error
	// RemoveProduct deletes the link; removing an absent link is a no-op.
	RemoveProduct(orderID, productID uint) error
	// FindBySellerProduct returns orders containing at least one product of
	// the seller, each with its full product list populated.
	FindBySellerProduct(sellerID uint) ([]models.Order, error)
	// FindClosedByCustomer returns the customer's completed orders with
	// products populated.
	FindClosedByCustomer(customerID uint) ([]models.Order, error)
}
