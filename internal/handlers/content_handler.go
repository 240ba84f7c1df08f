package handlers

import (
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContentHandler serves banners, services, partners and consultation requests.
type ContentHandler struct {
	service  *services.ContentService
	media    Media
	validate *validator.Validate
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(service *services.ContentService, media Media) *ContentHandler {
	return &ContentHandler{
		service:  service,
		media:    media,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the content routes. throttle limits public writes.
func (h *ContentHandler) RegisterRoutes(router fiber.Router, throttle fiber.Handler) {
	router.Get("/banner", h.HandleBanners)
	router.Get("/service", h.HandleServices)
	router.Get("/our_partner", h.HandlePartners)
	router.Post("/consultation", throttle, h.HandleConsultation)
}

// HandleBanners lists banners.
func (h *ContentHandler) HandleBanners(c *fiber.Ctx) error {
	banners, err := h.service.Banners()
	if err != nil {
		return err
	}
	for i := range banners {
		banners[i].Image = h.media.URL(c, banners[i].Image)
	}
	return c.JSON(banners)
}

// HandleServices lists services.
func (h *ContentHandler) HandleServices(c *fiber.Ctx) error {
	items, err := h.service.Services()
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Image = h.media.URL(c, items[i].Image)
	}
	return c.JSON(items)
}

// HandlePartners lists partners.
func (h *ContentHandler) HandlePartners(c *fiber.Ctx) error {
	partners, err := h.service.Partners()
	if err != nil {
		return err
	}
	for i := range partners {
		partners[i].Image = h.media.URL(c, partners[i].Image)
	}
	return c.JSON(partners)
}

// ConsultationRequest is a visitor's request to be called back.
type ConsultationRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Phone       string `json:"phone" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
}

// HandleConsultation stores a consultation request.
func (h *ContentHandler) HandleConsultation(c *fiber.Ctx) error {
	var req ConsultationRequest
	if err := decodeStrict(h.validate, c.Body(), &req, "name", "phone", "description"); err != nil {
		return err
	}
	consultant := &models.Consultant{
		Name:        req.Name,
		Phone:       req.Phone,
		Description: req.Description,
	}
	if err := h.service.RequestConsultation(consultant); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(consultant)
}
