package repositories

import "lapak/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	// GetAllWithProducts returns every category with its products populated.
	GetAllWithProducts() ([]models.Category, error)
}
