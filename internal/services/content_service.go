package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ContentService serves the flat storefront content.
type ContentService struct {
	banners       repositories.ListRepository[models.Banner]
	services      repositories.ListRepository[models.Service]
	partners      repositories.ListRepository[models.OurPartner]
	consultations repositories.ListRepository[models.Consultant]
}

// NewContentService creates a new ContentService.
func NewContentService(
	banners repositories.ListRepository[models.Banner],
	services repositories.ListRepository[models.Service],
	partners repositories.ListRepository[models.OurPartner],
	consultations repositories.ListRepository[models.Consultant],
) *ContentService {
	return &ContentService{
		banners:       banners,
		services:      services,
		partners:      partners,
		consultations: consultations,
	}
}

// Banners returns all banners, newest first.
func (s *ContentService) Banners() ([]models.Banner, error) { return s.banners.GetAll() }

// Services returns all services, newest first.
func (s *ContentService) Services() ([]models.Service, error) { return s.services.GetAll() }

// Partners returns all partners, newest first.
func (s *ContentService) Partners() ([]models.OurPartner, error) { return s.partners.GetAll() }

// RequestConsultation stores a consultation request.
func (s *ContentService) RequestConsultation(c *models.Consultant) error {
	return s.consultations.Create(c)
}
