package repositories

import (
	"errors"
	"fmt"

	"lapak/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetByID retrieves a bare order by its ID.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &order, nil
}

// GetWithProducts retrieves an order with its products and their sellers.
func (r *GORMOrderRepository) GetWithProducts(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Products").
		Preload("Products.Seller").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &order, nil
}

// GetOpenWithProducts retrieves a still-open order with its products. A
// closed order is reported as not found, same as a missing one.
func (r *GORMOrderRepository) GetOpenWithProducts(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Products").
		First(&order, "id = ? AND closed = ?", id, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("open order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get open order %d: %w", id, err)
	}
	return &order, nil
}

// FindOpenByCustomer retrieves the customer's open cart without associations.
func (r *GORMOrderRepository) FindOpenByCustomer(customerID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, "customer_id = ? AND closed = ?", customerID, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("open cart for customer %d: %w", customerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find open cart for customer %d: %w", customerID, err)
	}
	return &order, nil
}

// FindCartByCustomer retrieves the customer's open cart with products, their
// categories and their sellers populated.
func (r *GORMOrderRepository) FindCartByCustomer(customerID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Products").
		Preload("Products.Category").
		Preload("Products.Seller").
		First(&order, "customer_id = ? AND closed = ?", customerID, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("open cart for customer %d: %w", customerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find open cart for customer %d: %w", customerID, err)
	}
	return &order, nil
}

// Create inserts a new order. A second open cart for the same customer hits
// the partial unique index and surfaces as gorm.ErrDuplicatedKey.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Omit(clause.Associations).Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("open cart for customer %d already exists: %w", order.CustomerID, err)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update persists the order's own columns. Associations are omitted so the
// product link set is only ever mutated through AddProduct/RemoveProduct.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Omit(clause.Associations).Save(order)
	if res.Error != nil {
		return fmt.Errorf("failed to update order %d: %w", order.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %d for update: %w", order.ID, ErrNotFound)
	}
	return nil
}

// AddProduct inserts the order-product link. The composite primary key plus
// ON CONFLICT DO NOTHING make a repeated add a no-op rather than a duplicate
// row.
func (r *GORMOrderRepository) AddProduct(orderID, productID uint) error {
	link := models.OrderProduct{OrderID: orderID, ProductID: productID}
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	if err != nil {
		return fmt.Errorf("failed to link product %d to order %d: %w", productID, orderID, err)
	}
	return nil
}

// RemoveProduct deletes the order-product link. Zero affected rows means the
// link was absent, which is not an error.
func (r *GORMOrderRepository) RemoveProduct(orderID, productID uint) error {
	res := r.db.Delete(&models.OrderProduct{OrderID: orderID, ProductID: productID})
	if res.Error != nil {
		return fmt.Errorf("failed to unlink product %d from order %d: %w", productID, orderID, res.Error)
	}
	return nil
}

// FindBySellerProduct retrieves orders containing at least one product of the
// seller. Each order carries its full product list; narrowing the list to the
// seller's own products is the caller's projection.
func (r *GORMOrderRepository) FindBySellerProduct(sellerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Products").
		Joins("JOIN order_products ON order_products.order_id = orders.id").
		Joins("JOIN products ON products.id = order_products.product_id").
		Where("products.seller_id = ?", sellerID).
		Distinct("orders.*").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders for seller %d: %w", sellerID, err)
	}
	return orders, nil
}

// FindClosedByCustomer retrieves the customer's completed orders.
func (r *GORMOrderRepository) FindClosedByCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Products").
		Where("customer_id = ? AND closed = ?", customerID, true).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find closed orders for customer %d: %w", customerID, err)
	}
	return orders, nil
}
