package handlers

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Media turns stored image keys into absolute URLs.
type Media struct {
	// BaseURL is prefixed to keys. Empty means <request base>/media/.
	BaseURL string
}

// URL returns the absolute URL of key, or "" for an empty key.
func (m Media) URL(c *fiber.Ctx, key string) string {
	if key == "" {
		return ""
	}
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	base := m.BaseURL
	if base == "" {
		base = c.BaseURL() + "/media/"
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

type subCategoryRef struct {
	ID   uint   `json:"sub_category_id"`
	Name string `json:"sub_category_name"`
}

type categoryChain struct {
	MainID      uint             `json:"main_category_id"`
	MainName    string           `json:"main_category_name"`
	SubCategory []subCategoryRef `json:"sub_category"`
}

type productImageResponse struct {
	ID      uint   `json:"id"`
	Product uint   `json:"product"`
	Image   string `json:"image"`
}

type productResponse struct {
	ID               uint                   `json:"id"`
	Name             string                 `json:"name"`
	Description      string                 `json:"description"`
	Price            decimal.Decimal        `json:"price"`
	Quantity         int                    `json:"quantity"`
	PriceType        models.PriceType       `json:"price_type"`
	VendorCode       string                 `json:"vendor_code"`
	Image            *string                `json:"image"`
	Category         []categoryChain        `json:"category"`
	Characteristics  datatypes.JSON         `json:"characteristics"`
	Advantages       datatypes.JSON         `json:"advantages"`
	ManufacturedCity string                 `json:"manufactured_city"`
	Firm             string                 `json:"firm"`
	ImagesSet        []productImageResponse `json:"images_set"`
	CreatedAt        time.Time              `json:"created_at"`
}

func optionalURL(m Media, c *fiber.Ctx, key string) *string {
	if key == "" {
		return nil
	}
	u := m.URL(c, key)
	return &u
}

func newProductResponse(c *fiber.Ctx, m Media, p models.Product) productResponse {
	resp := productResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		Quantity:         p.Quantity,
		PriceType:        p.PriceType,
		VendorCode:       p.VendorCode,
		Image:            optionalURL(m, c, p.Image),
		Category:         []categoryChain{},
		Characteristics:  p.Characteristics,
		Advantages:       p.Advantages,
		ManufacturedCity: p.ManufacturedCity,
		Firm:             p.Firm,
		ImagesSet:        make([]productImageResponse, 0, len(p.Images)),
		CreatedAt:        p.CreatedAt,
	}
	if sub := p.SubCategory; sub != nil {
		chain := categoryChain{
			SubCategory: []subCategoryRef{{ID: sub.ID, Name: sub.Name}},
		}
		if sub.MainCategory != nil {
			chain.MainID = sub.MainCategory.ID
			chain.MainName = sub.MainCategory.Name
		}
		resp.Category = append(resp.Category, chain)
	}
	for _, img := range p.Images {
		resp.ImagesSet = append(resp.ImagesSet, productImageResponse{
			ID:      img.ID,
			Product: img.ProductID,
			Image:   m.URL(c, img.Image),
		})
	}
	return resp
}

type paginatedResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

func newPaginatedResponse[T any](c *fiber.Ctx, page repositories.Page[T], results interface{}) paginatedResponse {
	resp := paginatedResponse{Count: page.Count, Results: results}
	if page.HasNext() {
		resp.Next = pageLink(c, page.Number+1)
	}
	if page.HasPrevious() {
		resp.Previous = pageLink(c, page.Number-1)
	}
	return resp
}

func pageLink(c *fiber.Ctx, number int) *string {
	u, err := url.Parse(c.OriginalURL())
	if err != nil {
		return nil
	}
	q := u.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	link := c.BaseURL() + u.String()
	return &link
}

func productPage(c *fiber.Ctx, m Media, page repositories.Page[models.Product]) paginatedResponse {
	results := make([]productResponse, 0, len(page.Items))
	for _, p := range page.Items {
		results = append(results, newProductResponse(c, m, p))
	}
	return newPaginatedResponse(c, page, results)
}
