package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCard is one purchased line of an order. TotalPrice and PriceType are
// snapshots taken when the line was created and are never recalculated.
type ProductCard struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	ProductID  *uint           `json:"product" gorm:"index"`
	Product    *Product        `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(14,2);not null"`
	PriceType  PriceType       `json:"price_type" gorm:"size:3;not null"`
	FullName   string          `json:"full_name" gorm:"size:200"`
	Phone      string          `json:"phone" gorm:"size:200"`
	Email      string          `json:"email" gorm:"size:254"`
	Address    string          `json:"address" gorm:"size:200"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Receipt is the plain-text notification sent to a buyer after an order.
type Receipt struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
