package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for the two-level taxonomy.
type CategoryRepository interface {
	ListMain() ([]models.MainCategory, error)
	// CreateMain stores the main category together with its sub-categories.
	CreateMain(main *models.MainCategory) error
	GetMain(id uint) (*models.MainCategory, error)
	GetSub(id uint) (*models.SubCategory, error)
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// ListMain returns all main categories with their sub-categories.
func (r *GORMCategoryRepository) ListMain() ([]models.MainCategory, error) {
	var mains []models.MainCategory
	err := r.db.
		Preload("SubCategories", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id ASC").
		Find(&mains).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return mains, nil
}

// CreateMain inserts the main category and all nested sub-categories atomically.
func (r *GORMCategoryRepository) CreateMain(main *models.MainCategory) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		subs := main.SubCategories
		main.SubCategories = nil
		if err := tx.Create(main).Error; err != nil {
			return err
		}
		for i := range subs {
			subs[i].MainCategoryID = &main.ID
			if err := tx.Omit("MainCategory").Create(&subs[i]).Error; err != nil {
				return err
			}
		}
		main.SubCategories = subs
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetMain retrieves a main category by id.
func (r *GORMCategoryRepository) GetMain(id uint) (*models.MainCategory, error) {
	var main models.MainCategory
	if err := r.db.First(&main, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Not found.")
		}
		return nil, fmt.Errorf("failed to get main category %d: %w", id, err)
	}
	return &main, nil
}

// GetSub retrieves a sub-category by id.
func (r *GORMCategoryRepository) GetSub(id uint) (*models.SubCategory, error) {
	var sub models.SubCategory
	if err := r.db.First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Not found.")
		}
		return nil, fmt.Errorf("failed to get sub-category %d: %w", id, err)
	}
	return &sub, nil
}
