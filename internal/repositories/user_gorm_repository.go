package repositories

import (
	"errors"
	"fmt"

	"lapak/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// GetAll retrieves all users.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

// GetByUID retrieves a user by the external auth identifier.
func (r *GORMUserRepository) GetByUID(uid string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with uid %s: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by uid %s: %w", uid, err)
	}
	return &user, nil
}

// Create inserts a new user.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update persists the user's own columns.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Omit("Products").Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d for update: %w", user.ID, ErrNotFound)
	}
	return nil
}

// GetSellers retrieves all users with the seller flag set, with listings.
func (r *GORMUserRepository) GetSellers() ([]models.User, error) {
	var users []models.User
	err := r.db.
		Preload("Products").
		Where("seller = ?", true).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sellers: %w", err)
	}
	return users, nil
}
