package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

var errUsernameTaken = apperrors.FieldError("username", "A user with that username already exists.")

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Omit("Role").Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Role").First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundWrap(fmt.Sprintf("user with username %s not found", username), err)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Role").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundWrap(fmt.Sprintf("user with ID %d not found", id), err)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// Update saves the profile columns of an existing user.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Model(user).
		Select("first_name", "last_name", "username", "password").
		Omit(clause.Associations).
		Updates(user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return errUsernameTaken
		}
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("user with ID %d not found for update", user.ID))
	}
	return nil
}

// Delete deletes a user by their ID.
func (r *GORMUserRepository) Delete(id uint) error {
	res := r.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("user with ID %d not found for deletion", id))
	}
	return nil
}

// GORMRoleRepository is a GORM implementation of RoleRepository.
type GORMRoleRepository struct {
	db *gorm.DB
}

// NewGORMRoleRepository creates a new instance of GORMRoleRepository.
func NewGORMRoleRepository(db *gorm.DB) *GORMRoleRepository {
	return &GORMRoleRepository{db: db}
}

// GetByID retrieves a role by id.
func (r *GORMRoleRepository) GetByID(id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundWrap(fmt.Sprintf("role with ID %d not found", id), err)
		}
		return nil, fmt.Errorf("failed to get role by ID %d: %w", id, err)
	}
	return &role, nil
}

// GetAll lists every role ordered by id.
func (r *GORMRoleRepository) GetAll() ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Order("id ASC").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// EnsureNames inserts the roles that do not exist yet.
func (r *GORMRoleRepository) EnsureNames(names []string) error {
	for _, name := range names {
		role := models.Role{Name: name}
		err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&role).Error
		if err != nil {
			return fmt.Errorf("failed to ensure role %q: %w", name, err)
		}
	}
	return nil
}
