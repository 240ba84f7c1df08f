package repositories

import "storefront/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
}

// RoleRepository defines the interface for role data access.
type RoleRepository interface {
	GetByID(id uint) (*models.Role, error)
	GetAll() ([]models.Role, error)
	// EnsureNames creates any missing roles from names.
	EnsureNames(names []string) error
}
