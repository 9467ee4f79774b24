package repositories

import (
	"fmt"
	"strings"
	"sync"

	"lapak/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
		r.nextID++
	} else if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product %d for update: %w", product.ID, ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %d for deletion: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// FindBySeller returns the seller's listings.
func (r *MockProductRepository) FindBySeller(sellerID uint) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0)
	for _, p := range r.products {
		if p.SellerID == sellerID {
			products = append(products, p)
		}
	}
	return products, nil
}

// FindSoldBySeller returns the seller's products carrying at least one closed
// order in their Orders field.
func (r *MockProductRepository) FindSoldBySeller(sellerID uint) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0)
	for _, p := range r.products {
		if p.SellerID != sellerID {
			continue
		}
		for _, o := range p.Orders {
			if o.Closed {
				products = append(products, p)
				break
			}
		}
	}
	return products, nil
}

// FindBySellerAndCategory returns the seller's listings in one category.
func (r *MockProductRepository) FindBySellerAndCategory(sellerID, categoryID uint) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0)
	for _, p := range r.products {
		if p.SellerID == sellerID && p.CategoryID == categoryID {
			products = append(products, p)
		}
	}
	return products, nil
}

// FindLatest returns up to limit products with the highest IDs.
func (r *MockProductRepository) FindLatest(limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, limit)
	for id := r.nextID; id > 0 && len(products) < limit; id-- {
		if p, ok := r.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

// Search matches the term against title, description, category name and
// seller username, case-insensitively.
func (r *MockProductRepository) Search(term string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(term)
	products := make([]models.Product, 0)
	for _, p := range r.products {
		haystacks := []string{p.Title, p.Description}
		if p.Category != nil {
			haystacks = append(haystacks, p.Category.Name)
		}
		if p.Seller != nil {
			haystacks = append(haystacks, p.Seller.Username)
		}
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), needle) {
				products = append(products, p)
				break
			}
		}
	}
	return products, nil
}
