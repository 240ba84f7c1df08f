package handlers

import (
	"encoding/json"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	media    Media
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, media Media) *ProductHandler {
	return &ProductHandler{
		service:  service,
		media:    media,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes. protect guards the write routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	productRoutes := router.Group("/product")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", protect, h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Delete("/:id", protect, h.HandleDeleteProduct)
}

// HandleListProducts lists products filtered by name and popularity, ordered by price.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	q = q.WithName(c.Query("name")).
		WithPopular(c.Query("is_popular") != "" || c.Query("is_rating") != "").
		OrderByPrice(c.Query("is_max_min") == "1")

	page, err := h.service.ListProducts(q)
	if err != nil {
		return err
	}
	return c.JSON(productPage(c, h.media, page))
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return err
	}
	return c.JSON(newProductResponse(c, h.media, *product))
}

// ProductRequest is the body of a product creation.
type ProductRequest struct {
	Name             string           `json:"name" validate:"required,max=200"`
	Description      string           `json:"description"`
	Price            *decimal.Decimal `json:"price" validate:"required"`
	Quantity         int              `json:"quantity" validate:"gte=0"`
	PriceType        string           `json:"price_type" validate:"omitempty,oneof=USD UZS RUB"`
	VendorCode       string           `json:"vendor_code" validate:"max=200"`
	Image            string           `json:"image" validate:"max=500"`
	SubCategory      *uint            `json:"sub_category"`
	Characteristics  json.RawMessage  `json:"characteristics"`
	Advantages       json.RawMessage  `json:"advantages"`
	ManufacturedCity string           `json:"manufactured_city" validate:"max=200"`
	Firm             string           `json:"firm" validate:"max=200"`
	ImagesSet        []string         `json:"images_set" validate:"required,dive,url"`
}

var productFields = []string{
	"name", "description", "price", "quantity", "price_type", "vendor_code", "image",
	"sub_category", "characteristics", "advantages", "manufactured_city", "firm", "images_set",
}

// HandleCreateProduct creates a product and imports its image set.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := decodeStrict(h.validate, c.Body(), &req, productFields...); err != nil {
		return err
	}

	product := &models.Product{
		Name:             req.Name,
		Description:      req.Description,
		Price:            *req.Price,
		Quantity:         req.Quantity,
		PriceType:        models.PriceType(req.PriceType),
		VendorCode:       req.VendorCode,
		Image:            req.Image,
		SubCategoryID:    req.SubCategory,
		Characteristics:  jsonBag(req.Characteristics),
		Advantages:       jsonBag(req.Advantages),
		ManufacturedCity: req.ManufacturedCity,
		Firm:             req.Firm,
	}

	created, err := h.service.CreateProduct(c.UserContext(), product, req.ImagesSet)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newProductResponse(c, h.media, *created))
}

func jsonBag(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}

// HandleDeleteProduct deletes a product and its images.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
