package services

import (
	"errors"
	"fmt"
	"strings"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// QueryService serves the read-side composed queries joining orders,
// products and users. Every query is a pure projection: no matches means an
// empty result, never a domain error.
type QueryService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
}

// NewQueryService creates a new QueryService.
func NewQueryService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, userRepo repositories.UserRepository) *QueryService {
	return &QueryService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// GetOrder returns one order with its products and their sellers.
func (s *QueryService) GetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetWithProducts(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}
	return order, nil
}

// OrdersBySeller returns every order containing at least one of the seller's
// products. Each order's product list is re-projected down to only that
// seller's products, not the full order contents.
func (s *QueryService) OrdersBySeller(sellerID uint) ([]models.Order, error) {
	orders, err := s.orderRepo.FindBySellerProduct(sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for seller %d: %w", sellerID, err)
	}
	for i := range orders {
		kept := make([]models.Product, 0, len(orders[i].Products))
		for _, p := range orders[i].Products {
			if p.SellerID == sellerID {
				kept = append(kept, p)
			}
		}
		orders[i].Products = kept
	}
	return orders, nil
}

// CompletedOrdersByCustomer returns the customer's closed orders.
func (s *QueryService) CompletedOrdersByCustomer(customerID uint) ([]models.Order, error) {
	orders, err := s.orderRepo.FindClosedByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed orders for customer %d: %w", customerID, err)
	}
	return orders, nil
}

// ProductsSoldBySeller returns the seller's products appearing in at least
// one closed order.
func (s *QueryService) ProductsSoldBySeller(sellerID uint) ([]models.Product, error) {
	products, err := s.productRepo.FindSoldBySeller(sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sold products for seller %d: %w", sellerID, err)
	}
	return products, nil
}

// SearchProducts matches the term as a case-insensitive substring of a
// product's title, description, category name or seller username. Any one
// field matching makes the product a hit.
func (s *QueryService) SearchProducts(term string) ([]models.Product, error) {
	products, err := s.productRepo.Search(term)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// SearchSellers matches the term as a case-insensitive substring of a
// seller's username, phone number or email. Only users with the seller flag
// are considered; their listings are included.
func (s *QueryService) SearchSellers(term string) ([]models.User, error) {
	sellers, err := s.userRepo.GetSellers()
	if err != nil {
		return nil, fmt.Errorf("failed to search sellers: %w", err)
	}
	needle := strings.ToLower(term)
	matched := make([]models.User, 0)
	for _, seller := range sellers {
		if strings.Contains(strings.ToLower(seller.Username), needle) ||
			strings.Contains(strings.ToLower(seller.PhoneNumber), needle) ||
			strings.Contains(strings.ToLower(seller.Email), needle) {
			matched = append(matched, seller)
		}
	}
	return matched, nil
}
