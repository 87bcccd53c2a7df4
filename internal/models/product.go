package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry with a live stock counter.
// Barcode is an indexed lookup key but is not required to be unique.
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null;index" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null;index" json:"price"`
	Stock     int             `gorm:"not null;default:0;index" json:"stock"`
	GST       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;index" json:"gst"`
	Barcode   string          `gorm:"size:64;index" json:"barcode,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PriceWithGST returns the unit price including tax, rounded to the minor unit.
func (p *Product) PriceWithGST() decimal.Decimal {
	return p.Price.Add(p.GSTAmount()).Round(2)
}

// GSTAmount returns the tax on one unit. GST is stored as a percentage.
func (p *Product) GSTAmount() decimal.Decimal {
	return p.Price.Mul(p.GST).Div(decimal.NewFromInt(100))
}
