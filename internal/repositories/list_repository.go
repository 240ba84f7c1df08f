package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

// ListRepository is the data access needed by flat content entities.
type ListRepository[T any] interface {
	GetAll() ([]T, error)
	Create(item *T) error
}

// GORMListRepository is a GORM implementation of ListRepository.
type GORMListRepository[T any] struct {
	db *gorm.DB
}

// NewGORMListRepository creates a list repository for T.
func NewGORMListRepository[T any](db *gorm.DB) *GORMListRepository[T] {
	return &GORMListRepository[T]{db: db}
}

// GetAll returns every row, newest first.
func (r *GORMListRepository[T]) GetAll() ([]T, error) {
	items := make([]T, 0)
	if err := r.db.Order("id DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list %T: %w", *new(T), err)
	}
	return items, nil
}

// Create inserts item.
func (r *GORMListRepository[T]) Create(item *T) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create %T: %w", *item, err)
	}
	return nil
}
