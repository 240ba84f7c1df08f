package services

import (
	"context"
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/sirupsen/logrus"
)

// Importer fetches a remote image and returns the storage key it was saved under.
type Importer interface {
	Import(ctx context.Context, rawURL string) (string, error)
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
	importer   Importer
	store      ImageStore
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categories repositories.CategoryRepository, importer Importer, store ImageStore) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
		importer:   importer,
		store:      store,
	}
}

// ListProducts returns one page of the filtered catalog.
func (s *ProductService) ListProducts(q repositories.ProductQuery) (repositories.Page[models.Product], error) {
	return s.repo.List(q)
}

// ListBySubCategory lists products of an existing sub-category.
func (s *ProductService) ListBySubCategory(id uint, q repositories.ProductQuery) (repositories.Page[models.Product], error) {
	if _, err := s.categories.GetSub(id); err != nil {
		return repositories.Page[models.Product]{}, err
	}
	return s.repo.List(q.InSubCategory(id))
}

// ListByMainCategory lists products of every sub-category under an existing main category.
func (s *ProductService) ListByMainCategory(id uint, q repositories.ProductQuery) (repositories.Page[models.Product], error) {
	if _, err := s.categories.GetMain(id); err != nil {
		return repositories.Page[models.Product]{}, err
	}
	return s.repo.List(q.InMainCategory(id))
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct stores the product and then imports each image URL.
// Import failures are logged and skipped.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product, imageURLs []string) (*models.Product, error) {
	if product.PriceType == "" {
		product.PriceType = models.DefaultPriceType
	}
	if !product.PriceType.Valid() {
		return nil, apperrors.FieldError("price_type", fmt.Sprintf("\"%s\" is not a valid choice.", product.PriceType))
	}
	if product.Price.IsNegative() {
		return nil, apperrors.FieldError("price", "Ensure this value is greater than or equal to 0.")
	}
	if product.SubCategoryID != nil {
		if _, err := s.categories.GetSub(*product.SubCategoryID); err != nil {
			if apperrors.Is(err, apperrors.KindNotFound) {
				return nil, apperrors.FieldError("sub_category", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *product.SubCategoryID))
			}
			return nil, err
		}
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	for _, rawURL := range imageURLs {
		key, err := s.importer.Import(ctx, rawURL)
		if err == nil {
			err = s.repo.AddImage(&models.ProductImage{ProductID: product.ID, Image: key})
		}
		metrics.ObserveImageImport(err)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"product_id": product.ID,
				"url":        rawURL,
			}).WithError(err).Warn("Failed to import product image")
		}
	}

	return s.repo.GetByID(product.ID)
}

// DeleteProduct deletes a product and then removes its stored image files.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	images, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	for _, img := range images {
		if err := s.store.Remove(ctx, img.Image); err != nil {
			logrus.WithFields(logrus.Fields{
				"product_id": id,
				"key":        img.Image,
			}).WithError(err).Warn("Failed to remove product image")
		}
	}
	return nil
}
