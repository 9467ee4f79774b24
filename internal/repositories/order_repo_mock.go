package repositories

import (
	"fmt"
	"sync"

	"lapak/internal/models"

	"gorm.io/gorm"
)

// MockOrderRepository is an in-memory implementation of OrderRepository. It
// keeps the order-product link as a set per order and mimics the database
// constraints: the one-open-cart-per-customer unique index and the foreign
// keys on the link table. Product lookups for preload-style reads are served
// by the supplied MockProductRepository.
type MockOrderRepository struct {
	orders   map[uint]models.Order
	links    map[uint]map[uint]bool
	nextID   uint
	products *MockProductRepository
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(products *MockProductRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[uint]models.Order),
		links:    make(map[uint]map[uint]bool),
		nextID:   1,
		products: products,
	}
}

func (r *MockOrderRepository) loadProducts(orderID uint) []models.Product {
	products := make([]models.Product, 0, len(r.links[orderID]))
	for productID := range r.links[orderID] {
		if p, err := r.products.GetByID(productID); err == nil {
			products = append(products, *p)
		}
	}
	return products
}

// GetByID returns a bare order by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return &order, nil
}

// GetWithProducts returns an order with its linked products resolved.
func (r *MockOrderRepository) GetWithProducts(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	order.Products = r.loadProducts(id)
	return &order, nil
}

// GetOpenWithProducts returns a still-open order with its linked products.
func (r *MockOrderRepository) GetOpenWithProducts(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok || order.Closed {
		return nil, fmt.Errorf("open order %d: %w", id, ErrNotFound)
	}
	order.Products = r.loadProducts(id)
	return &order, nil
}

// FindOpenByCustomer returns the customer's open cart.
func (r *MockOrderRepository) FindOpenByCustomer(customerID uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.CustomerID == customerID && !order.Closed {
			return &order, nil
		}
	}
	return nil, fmt.Errorf("open cart for customer %d: %w", customerID, ErrNotFound)
}

// FindCartByCustomer returns the customer's open cart with products resolved.
func (r *MockOrderRepository) FindCartByCustomer(customerID uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, order := range r.orders {
		if order.CustomerID == customerID && !order.Closed {
			order.Products = r.loadProducts(id)
			return &order, nil
		}
	}
	return nil, fmt.Errorf("open cart for customer %d: %w", customerID, ErrNotFound)
}

// Create adds a new order, enforcing the one-open-cart-per-customer rule the
// same way the partial unique index does.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !order.Closed {
		for _, existing := range r.orders {
			if existing.CustomerID == order.CustomerID && !existing.Closed {
				return fmt.Errorf("open cart for customer %d already exists: %w", order.CustomerID, gorm.ErrDuplicatedKey)
			}
		}
	}
	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
	}
	r.orders[order.ID] = *order
	return nil
}

// Update replaces the order's own columns; the link set is untouched.
func (r *MockOrderRepository) Update(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return fmt.Errorf("order %d for update: %w", order.ID, ErrNotFound)
	}
	stored := *order
	stored.Products = nil
	r.orders[order.ID] = stored
	return nil
}

// AddProduct inserts the link; adding an existing link is a no-op.
func (r *MockOrderRepository) AddProduct(orderID, productID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[orderID]; !ok {
		return fmt.Errorf("failed to link product %d to order %d: %w", productID, orderID, gorm.ErrForeignKeyViolated)
	}
	if _, err := r.products.GetByID(productID); err != nil {
		return fmt.Errorf("failed to link product %d to order %d: %w", productID, orderID, gorm.ErrForeignKeyViolated)
	}
	if r.links[orderID] == nil {
		r.links[orderID] = make(map[uint]bool)
	}
	r.links[orderID][productID] = true
	return nil
}

// RemoveProduct deletes the link; removing an absent link is a no-op.
func (r *MockOrderRepository) RemoveProduct(orderID, productID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.links[orderID], productID)
	return nil
}

// FindBySellerProduct returns orders containing at least one of the seller's
// products, each with its full product list resolved.
func (r *MockOrderRepository) FindBySellerProduct(sellerID uint) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0)
	for id, order := range r.orders {
		products := r.loadProducts(id)
		for _, p := range products {
			if p.SellerID == sellerID {
				order.Products = products
				orders = append(orders, order)
				break
			}
		}
	}
	return orders, nil
}

// FindClosedByCustomer returns the customer's completed orders with products.
func (r *MockOrderRepository) FindClosedByCustomer(customerID uint) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0)
	for id, order := range r.orders {
		if order.CustomerID == customerID && order.Closed {
			order.Products = r.loadProducts(id)
			orders = append(orders, order)
		}
	}
	return orders, nil
}
