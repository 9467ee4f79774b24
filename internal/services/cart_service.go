package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"lapak/internal/models"
	"lapak/internal/repositories"

	"gorm.io/gorm"
)

// EventPublisher publishes domain events to the message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// CheckoutQueue is the routing key for cart lifecycle events.
const CheckoutQueue = "checkout_queue"

// CartService handles the cart lifecycle: resolving a customer's open cart,
// linking and unlinking products, and closing the cart into a completed
// order.
type CartService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewCartService creates a new CartService. The publisher may be nil, in
// which case checkout events are skipped.
func NewCartService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *CartService {
	return &CartService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// GetOrCreateCart returns the customer's open cart, creating one when none
// exists. The call is idempotent: an existing cart is returned unchanged.
// A fresh cart keeps the zero DateCreated; the field records checkout time
// and is stamped by CloseCart. If the insert loses a race against a
// concurrent call, the partial unique index rejects it and the winner's cart
// is fetched instead.
func (s *CartService) GetOrCreateCart(customerID uint) (*models.Order, error) {
	cart, err := s.orderRepo.FindOpenByCustomer(customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve cart for customer %d: %w", customerID, err)
	}

	cart = &models.Order{
		CustomerID:  customerID,
		PaymentType: "none",
		Shipping:    false,
		Closed:      false,
	}
	if err := s.orderRepo.Create(cart); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.orderRepo.FindOpenByCustomer(customerID)
		}
		return nil, fmt.Errorf("failed to create cart for customer %d: %w", customerID, err)
	}
	return cart, nil
}

// GetCart returns the customer's open cart with products, their categories
// and their sellers populated. Returns nil without error when the customer
// has no open cart.
func (s *CartService) GetCart(customerID uint) (*models.Order, error) {
	cart, err := s.orderRepo.FindCartByCustomer(customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cart for customer %d: %w", customerID, err)
	}
	return cart, nil
}

// AddProduct links a product to an order. Both records must exist; the link
// is a set membership, so adding an already-linked product is a no-op.
func (s *CartService) AddProduct(orderID, productID uint) error {
	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return fmt.Errorf("failed to look up order %d: %w", orderID, err)
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return fmt.Errorf("failed to look up product %d: %w", productID, err)
	}
	if err := s.orderRepo.AddProduct(orderID, productID); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("link order %d to product %d: %w", orderID, productID, ErrInvalidData)
		}
		return fmt.Errorf("failed to add product %d to order %d: %w", productID, orderID, err)
	}
	return nil
}

// RemoveProduct unlinks a product from an order. Both records must exist;
// removing a link that was never made is a no-op.
func (s *CartService) RemoveProduct(orderID, productID uint) error {
	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return fmt.Errorf("failed to look up order %d: %w", orderID, err)
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return fmt.Errorf("failed to look up product %d: %w", productID, err)
	}
	if err := s.orderRepo.RemoveProduct(orderID, productID); err != nil {
		return fmt.Errorf("failed to remove product %d from order %d: %w", productID, orderID, err)
	}
	return nil
}

// CloseCart transitions an open order to closed, stamping the checkout time
// and payment details. A missing or already-closed order reports not found; a
// cart with no products is rejected without mutation. The transition is
// one-way: no operation reopens a closed order.
func (s *CartService) CloseCart(orderID uint, paymentType string, shipping bool) (*models.Order, error) {
	cart, err := s.orderRepo.GetOpenWithProducts(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("cart %d: %w", orderID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load cart %d: %w", orderID, err)
	}
	if len(cart.Products) == 0 {
		return nil, fmt.Errorf("cart %d: %w", orderID, ErrCartEmpty)
	}

	cart.Closed = true
	cart.DateCreated = time.Now()
	cart.PaymentType = paymentType
	cart.Shipping = shipping
	if err := s.orderRepo.Update(cart); err != nil {
		return nil, fmt.Errorf("failed to close cart %d: %w", orderID, err)
	}

	s.publishCartClosed(cart)
	return cart, nil
}

// publishCartClosed emits the checkout event. Publish failures are logged and
// swallowed; the order is already closed and the write is the source of
// truth.
func (s *CartService) publishCartClosed(order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := map[string]interface{}{
		"event":       "cart.closed",
		"orderId":     order.ID,
		"customerId":  order.CustomerID,
		"paymentType": order.PaymentType,
		"shipping":    order.Shipping,
		"total":       order.Total(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal checkout event for order %d: %v", order.ID, err)
		return
	}
	if err := s.publisher.Publish(CheckoutQueue, body); err != nil {
		log.Printf("Warning: failed to publish checkout event for order %d: %v", order.ID, err)
	}
}
