package handlers

import (
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// OrderHandler handles order intake.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the order routes. throttle limits public writes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, throttle fiber.Handler) {
	router.Post("/card", throttle, h.HandleCreateOrder)
}

// CardRequest is the body of an order intake.
type CardRequest struct {
	FullName    string           `json:"full_name" validate:"required,max=200"`
	Email       string           `json:"email" validate:"required,email,max=254"`
	Phone       string           `json:"phone" validate:"required,max=200"`
	Address     string           `json:"address" validate:"max=200"`
	TotalPrice  *decimal.Decimal `json:"total_price" validate:"required"`
	ProductData []CardLine       `json:"product_data" validate:"required,min=1,dive"`
}

// CardLine is one product and quantity of an order.
type CardLine struct {
	Product  uint `json:"product" validate:"required,gt=0"`
	Quantity int  `json:"quantity" validate:"required,gt=0"`
}

// HandleCreateOrder persists every order line and answers with all of them.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	raw, err := rawObject(c.Body(), "full_name", "email", "phone", "address", "total_price", "product_data")
	if err != nil {
		return err
	}
	if err := checkNestedFields(raw["product_data"], "product", "quantity"); err != nil {
		return err
	}
	var req CardRequest
	if err := decodeInto(h.validate, c.Body(), &req); err != nil {
		return err
	}

	in := services.PlaceOrderInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		TotalPrice: *req.TotalPrice,
		Lines:      make([]services.OrderLine, 0, len(req.ProductData)),
	}
	for _, line := range req.ProductData {
		in.Lines = append(in.Lines, services.OrderLine{ProductID: line.Product, Quantity: line.Quantity})
	}

	cards, err := h.service.PlaceOrder(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(cards)
}
