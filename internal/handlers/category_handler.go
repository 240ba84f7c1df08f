package handlers

import (
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles category browsing and creation.
type CategoryHandler struct {
	categories *services.CategoryService
	products   *services.ProductService
	media      Media
	validate   *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories *services.CategoryService, products *services.ProductService, media Media) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		products:   products,
		media:      media,
		validate:   newValidator(),
	}
}

// RegisterRoutes registers the category routes. protect guards creation.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	router.Get("/categories", h.HandleListCategories)
	router.Post("/categories", protect, h.HandleCreateCategory)
	router.Get("/category_product/:id", h.HandleSubCategoryProducts)
	router.Get("/main/categories/products/:id", h.HandleMainCategoryProducts)
}

type subCategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type mainCategoryResponse struct {
	ID          uint                  `json:"id"`
	Name        string                `json:"name"`
	SubCategory []subCategoryResponse `json:"sub_category"`
}

// HandleListCategories lists main categories with nested sub-categories.
func (h *CategoryHandler) HandleListCategories(c *fiber.Ctx) error {
	mains, err := h.categories.ListCategories()
	if err != nil {
		return err
	}
	resp := make([]mainCategoryResponse, 0, len(mains))
	for _, m := range mains {
		item := mainCategoryResponse{ID: m.ID, Name: m.Name, SubCategory: []subCategoryResponse{}}
		for _, s := range m.SubCategories {
			item.SubCategory = append(item.SubCategory, subCategoryResponse{ID: s.ID, Name: s.Name})
		}
		resp = append(resp, item)
	}
	return c.JSON(resp)
}

// CategoryRequest creates a main category with its sub-categories.
type CategoryRequest struct {
	Name        string               `json:"name" validate:"required,max=200"`
	SubCategory []SubCategoryRequest `json:"sub_category" validate:"required,dive"`
}

// SubCategoryRequest is one nested sub-category.
type SubCategoryRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

// HandleCreateCategory creates a main category and its sub-categories.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	raw, err := rawObject(c.Body(), "name", "sub_category")
	if err != nil {
		return err
	}
	if err := checkNestedFields(raw["sub_category"], "title"); err != nil {
		return err
	}
	var req CategoryRequest
	if err := decodeInto(h.validate, c.Body(), &req); err != nil {
		return err
	}

	titles := make([]string, 0, len(req.SubCategory))
	for _, s := range req.SubCategory {
		titles = append(titles, s.Title)
	}
	if _, err := h.categories.CreateCategory(req.Name, titles); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"msg": "Successfully added"})
}

// HandleSubCategoryProducts lists the products of one sub-category.
func (h *CategoryHandler) HandleSubCategoryProducts(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	page, err := h.products.ListBySubCategory(id, q)
	if err != nil {
		return err
	}
	return c.JSON(productPage(c, h.media, page))
}

// HandleMainCategoryProducts lists the products under every sub-category of a main category.
func (h *CategoryHandler) HandleMainCategoryProducts(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	page, err := h.products.ListByMainCategory(id, q)
	if err != nil {
		return err
	}
	return c.JSON(productPage(c, h.media, page))
}
