package models

import "github.com/shopspring/decimal"

// Banner is a promotional block on the storefront.
type Banner struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	Header      string              `json:"header" gorm:"size:200"`
	Title       string              `json:"title" gorm:"size:200"`
	Description string              `json:"description" gorm:"type:text"`
	Discount    *int                `json:"discount"`
	Price       decimal.NullDecimal `json:"price" gorm:"type:decimal(14,2)"`
	PriceType   PriceType           `json:"price_type" gorm:"size:3;default:RUB"`
	Image       string              `json:"image" gorm:"size:500"`
}

// Service is a service offering shown on the storefront.
type Service struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image" gorm:"size:500"`
}

// OurPartner is a partner logo entry.
type OurPartner struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:200"`
	Image string `json:"image" gorm:"size:500"`
}

// Consultant is a consultation request left by a visitor.
type Consultant struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:200"`
	Phone       string `json:"phone" gorm:"size:200"`
	Description string `json:"description" gorm:"type:text"`
}

// All lists every model for migrations.
func All() []interface{} {
	return []interface{}{
		&Role{},
		&User{},
		&MainCategory{},
		&SubCategory{},
		&Product{},
		&ProductImage{},
		&ProductCard{},
		&Banner{},
		&Service{},
		&OurPartner{},
		&Consultant{},
	}
}
