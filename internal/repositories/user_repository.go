package repositories

import "lapak/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetAll() ([]models.User, error)
	GetByID(id uint) (*models.User, error)
	// GetByUID looks a user up by the external auth identifier.
	GetByUID(uid string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	// GetSellers returns all users with the seller flag set, with their
	// listings populated.
	GetSellers() ([]models.User, error)
}
