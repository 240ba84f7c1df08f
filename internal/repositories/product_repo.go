package repositories

import (
	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(q ProductQuery) (Page[models.Product], error)
	GetByID(id uint) (*models.Product, error)
	FindByIDs(ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	AddImage(image *models.ProductImage) error
	// Delete removes the product with its images and returns the removed images.
	Delete(id uint) ([]models.ProductImage, error)
}

// ProductCardRepository defines the interface for order line persistence.
type ProductCardRepository interface {
	CreateAll(cards []models.ProductCard) error
}
