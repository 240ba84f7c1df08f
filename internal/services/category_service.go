package services

import (
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CategoryService manages the two-level taxonomy.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// ListCategories returns main categories with their sub-categories.
func (s *CategoryService) ListCategories() ([]models.MainCategory, error) {
	return s.repo.ListMain()
}

// CreateCategory creates a main category and its sub-categories together.
func (s *CategoryService) CreateCategory(name string, subNames []string) (*models.MainCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.FieldError("name", "This field may not be blank.")
	}
	main := &models.MainCategory{Name: name}
	for _, sub := range subNames {
		if strings.TrimSpace(sub) == "" {
			return nil, apperrors.FieldError("sub_category", "Sub-category title may not be blank.")
		}
		main.SubCategories = append(main.SubCategories, models.SubCategory{Name: sub})
	}
	if err := s.repo.CreateMain(main); err != nil {
		return nil, err
	}
	return main, nil
}
