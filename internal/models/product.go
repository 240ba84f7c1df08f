package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func init() {
	// Prices are rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// PriceType is the currency tag of a price.
type PriceType string

const (
	PriceUSD PriceType = "USD"
	PriceUZS PriceType = "UZS"
	PriceRUB PriceType = "RUB"

	DefaultPriceType = PriceRUB
)

// Valid reports whether p is one of the supported currencies.
func (p PriceType) Valid() bool {
	switch p {
	case PriceUSD, PriceUZS, PriceRUB:
		return true
	}
	return false
}

// Product represents a product in the catalog.
type Product struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Name             string          `json:"name" gorm:"size:200;index"`
	Description      string          `json:"description" gorm:"type:text"`
	Price            decimal.Decimal `json:"price" gorm:"type:decimal(14,2);not null;default:0"`
	Quantity         int             `json:"quantity"`
	PriceType        PriceType       `json:"price_type" gorm:"size:3;not null;default:RUB"`
	VendorCode       string          `json:"vendor_code" gorm:"size:200"`
	SubCategoryID    *uint           `json:"sub_category" gorm:"index"`
	SubCategory      *SubCategory    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Image            string          `json:"image" gorm:"size:500"`
	Characteristics  datatypes.JSON  `json:"characteristics"`
	Advantages       datatypes.JSON  `json:"advantages"`
	ManufacturedCity string          `json:"manufactured_city" gorm:"size:200"`
	Firm             string          `json:"firm" gorm:"size:200"`
	Images           []ProductImage  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ProductImage is an additional image owned by a product.
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"product" gorm:"index;not null"`
	Image     string `json:"image" gorm:"size:500"`
}
