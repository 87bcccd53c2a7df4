package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is a committed bill. Total and GST are computed once at compile time
// from the line items; Date is assigned at creation and never changed by edits.
type Invoice struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Number    string          `gorm:"size:50;uniqueIndex" json:"number"`
	ClientID  uint            `gorm:"not null;index" json:"client_id"`
	Items     []InvoiceItem   `gorm:"foreignKey:InvoiceID" json:"items"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null;index" json:"total"`
	GST       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"gst"`
	Paid      bool            `gorm:"not null;default:false;index" json:"paid"`
	Date      time.Time       `gorm:"not null;index" json:"date"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// InvoiceItem is one product+quantity line. Price is the snapshot of the
// product price at compile time and stays fixed even if the catalog changes.
type InvoiceItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	InvoiceID uint            `gorm:"not null;index" json:"invoice_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}

// LineTotal is quantity times the snapshot price.
func (item *InvoiceItem) LineTotal() decimal.Decimal {
	return item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// GenerateInvoiceNumber builds the next human-readable invoice number for the
// given year. Format: INV-YYYY-NNNN (e.g. INV-2026-0001).
func GenerateInvoiceNumber(db *gorm.DB, year int) (string, error) {
	var count int64
	err := db.Model(&Invoice{}).
		Where("strftime('%Y', date) = ?", fmt.Sprintf("%04d", year)).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%04d", year, count+1), nil
}
