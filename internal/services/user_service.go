package services

import (
	"errors"
	"fmt"

	"lapak/internal/models"
	"lapak/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService handles business logic for marketplace accounts.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.repo.GetAll()
}

// GetUser retrieves a single user by ID.
func (s *UserService) GetUser(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

// CheckUser looks a user up by the external auth identifier, as the frontend
// does at login.
func (s *UserService) CheckUser(uid string) (*models.User, error) {
	user, err := s.repo.GetByUID(uid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("user with uid %s: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to check user by uid %s: %w", uid, err)
	}
	return user, nil
}

// RegisterUser creates a new account. A missing external auth identifier is
// generated; a duplicate one is rejected as invalid data.
func (s *UserService) RegisterUser(user *models.User) error {
	if user.UID == "" {
		user.UID = uuid.New().String()
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("uid %s already registered: %w", user.UID, ErrInvalidData)
		}
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// UpdateUser applies the editable account fields. The external auth
// identifier is immutable.
func (s *UserService) UpdateUser(id uint, username, email, phoneNumber string, seller bool) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	user.Username = username
	user.Email = email
	user.PhoneNumber = phoneNumber
	user.Seller = seller
	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return user, nil
}

// GetSellers retrieves all users with the seller flag set.
func (s *UserService) GetSellers() ([]models.User, error) {
	return s.repo.GetSellers()
}
