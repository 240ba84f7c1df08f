package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("SubCategory.MainCategory").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

// List returns one page of products matching q.
func (r *GORMProductRepository) List(q ProductQuery) (Page[models.Product], error) {
	page := Page[models.Product]{Number: q.page, Size: q.limit}

	if err := r.db.Model(&models.Product{}).Scopes(q.filters()...).Count(&page.Count).Error; err != nil {
		return page, fmt.Errorf("failed to count products: %w", err)
	}

	offset, err := q.offset(page.Count)
	if err != nil {
		return page, err
	}

	if err := r.db.Scopes(q.filters()...).
		Scopes(withDetails).
		Order(q.orderClause()).
		Offset(offset).
		Limit(q.limit).
		Find(&page.Items).Error; err != nil {
		return page, fmt.Errorf("failed to list products: %w", err)
	}
	return page, nil
}

// GetByID retrieves a single product with its category chain and images.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Scopes(withDetails).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// FindByIDs returns the products that exist among ids, in no particular order.
func (r *GORMProductRepository) FindByIDs(ids []uint) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Omit("SubCategory", "Images").Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// AddImage attaches an image row to an existing product.
func (r *GORMProductRepository) AddImage(image *models.ProductImage) error {
	if err := r.db.Create(image).Error; err != nil {
		return fmt.Errorf("failed to create product image: %w", err)
	}
	return nil
}

// Delete removes a product and its images in one transaction. Order lines
// that referenced the product keep their snapshot and lose the reference.
func (r *GORMProductRepository) Delete(id uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Product not found")
			}
			return fmt.Errorf("failed to load product %d: %w", id, err)
		}
		if err := tx.Where("product_id = ?", id).Find(&images).Error; err != nil {
			return fmt.Errorf("failed to load product images: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete product images: %w", err)
		}
		if err := tx.Model(&models.ProductCard{}).Where("product_id = ?", id).Update("product_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach order lines: %w", err)
		}
		if err := tx.Delete(&models.Product{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// GORMProductCardRepository is a GORM implementation of ProductCardRepository.
type GORMProductCardRepository struct {
	db *gorm.DB
}

// NewGORMProductCardRepository creates a new instance of GORMProductCardRepository.
func NewGORMProductCardRepository(db *gorm.DB) *GORMProductCardRepository {
	return &GORMProductCardRepository{db: db}
}

// CreateAll inserts every card or none of them.
func (r *GORMProductCardRepository) CreateAll(cards []models.ProductCard) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range cards {
			if err := tx.Omit("Product").Create(&cards[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create order lines: %w", err)
	}
	return nil
}
