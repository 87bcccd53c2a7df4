package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"smartbill/internal/models"
	"smartbill/internal/validation"
)

// LineRequest is one requested invoice line: a product and a quantity.
type LineRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// BillingService compiles invoices and keeps product stock consistent with
// them. Every mutation runs inside a single transaction: the invoice row, its
// items, and all stock adjustments commit together or not at all.
type BillingService struct {
	DB *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService { return &BillingService{DB: db} }

// ListInvoices returns all invoices with their items, in insertion order.
func (s *BillingService) ListInvoices() ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.DB.Preload("Items").Order("id").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// GetInvoice returns one invoice with items, or nil when absent.
func (s *BillingService) GetInvoice(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.Preload("Items").First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice %d: %w", id, err)
	}
	return &inv, nil
}

// CreateInvoice validates the request against the current catalog, snapshots
// line prices, computes totals, and commits the invoice together with the
// stock decrement for every line.
func (s *BillingService) CreateInvoice(clientID uint, lines []LineRequest) (*models.Invoice, error) {
	var created *models.Invoice
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		catalog, err := s.loadCatalog(tx, clientID, lines)
		if err != nil {
			return err
		}
		// Stock sufficiency: a create reserves the full quantity of every line.
		// Quantities are aggregated per product first so duplicate lines for
		// the same product are checked against their combined demand.
		need := map[uint]int{}
		for _, line := range lines {
			need[line.ProductID] += line.Quantity
		}
		for pid, qty := range need {
			p, ok := catalog[pid]
			if !ok {
				return &InsufficientStockError{ProductName: "Unknown"}
			}
			if p.Stock < qty {
				return &InsufficientStockError{ProductName: p.Name}
			}
		}
		items, total, gst := compileItems(lines, catalog)
		now := time.Now()
		number, err := models.GenerateInvoiceNumber(tx, now.Year())
		if err != nil {
			return fmt.Errorf("generate invoice number: %w", err)
		}
		inv := models.Invoice{
			Number:   number,
			ClientID: clientID,
			Total:    total,
			GST:      gst,
			Paid:     false,
			Date:     now,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		for i := range items {
			items[i].InvoiceID = inv.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("create invoice items: %w", err)
		}
		for pid, qty := range need {
			p := catalog[pid]
			err := tx.Model(&models.Product{ID: pid}).
				Update("stock", p.Stock-qty).Error
			if err != nil {
				return fmt.Errorf("decrement stock for product %d: %w", pid, err)
			}
		}
		inv.Items = items
		created = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// EditInvoice recompiles an existing invoice against the current catalog and
// overwrites its client, items, and totals. Paid and Date stay untouched.
// Stock is reconciled against the quantity delta between the old and new line
// sets: increased quantities are validated and decremented, reduced or removed
// ones are restocked, all in the same transaction as the overwrite.
func (s *BillingService) EditInvoice(id, clientID uint, lines []LineRequest) (*models.Invoice, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Invoice
		if err := tx.Preload("Items").First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validation.Errorf("id", "not_found")
			}
			return fmt.Errorf("load invoice %d: %w", id, err)
		}
		catalog, err := s.loadCatalog(tx, clientID, lines)
		if err != nil {
			return err
		}

		oldQty := map[uint]int{}
		for _, item := range existing.Items {
			oldQty[item.ProductID] += item.Quantity
		}
		newQty := map[uint]int{}
		for _, line := range lines {
			newQty[line.ProductID] += line.Quantity
		}

		// Validate increased quantities before writing anything.
		for pid, qty := range newQty {
			delta := qty - oldQty[pid]
			if delta <= 0 {
				continue
			}
			p, ok := catalog[pid]
			if !ok {
				return &InsufficientStockError{ProductName: "Unknown"}
			}
			if p.Stock < delta {
				return &InsufficientStockError{ProductName: p.Name}
			}
		}

		items, total, gst := compileItems(lines, catalog)
		err = tx.Model(&models.Invoice{ID: id}).Updates(map[string]any{
			"client_id": clientID,
			"total":     total,
			"gst":       gst,
		}).Error
		if err != nil {
			return fmt.Errorf("update invoice %d: %w", id, err)
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return fmt.Errorf("clear invoice items %d: %w", id, err)
		}
		for i := range items {
			items[i].InvoiceID = id
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("recreate invoice items %d: %w", id, err)
		}

		// Apply the stock delta. Products removed from the catalog since the
		// original invoice cannot be restocked; their rows are gone.
		for pid := range oldQty {
			if _, seen := newQty[pid]; !seen {
				newQty[pid] = 0
			}
		}
		for pid, qty := range newQty {
			delta := qty - oldQty[pid]
			if delta == 0 {
				continue
			}
			p, ok := catalog[pid]
			if !ok {
				continue
			}
			err := tx.Model(&models.Product{ID: pid}).
				Update("stock", p.Stock-delta).Error
			if err != nil {
				return fmt.Errorf("reconcile stock for product %d: %w", pid, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetInvoice(id)
}

// TogglePaid flips the paid flag of an invoice; no other column changes.
func (s *BillingService) TogglePaid(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validation.Errorf("id", "not_found")
		}
		return nil, fmt.Errorf("load invoice %d: %w", id, err)
	}
	if err := s.DB.Model(&inv).Update("paid", !inv.Paid).Error; err != nil {
		return nil, fmt.Errorf("toggle paid for invoice %d: %w", id, err)
	}
	return s.GetInvoice(id)
}

// loadCatalog validates the request shape, confirms the client exists, and
// loads the full product catalog once as the snapshot every later step reads.
func (s *BillingService) loadCatalog(tx *gorm.DB, clientID uint, lines []LineRequest) (map[uint]models.Product, error) {
	v := validation.Violations{}
	if clientID == 0 {
		v["client_id"] = "required"
	}
	if len(lines) == 0 {
		v["items"] = "required"
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			v["items"] = "invalid_quantity"
		}
	}
	if err := validation.NewError(v); err != nil {
		return nil, err
	}
	var count int64
	if err := tx.Model(&models.Client{}).Where("id = ?", clientID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check client %d: %w", clientID, err)
	}
	if count == 0 {
		return nil, validation.Errorf("client_id", "unknown_client")
	}
	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	catalog := make(map[uint]models.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	return catalog, nil
}

// compileItems snapshots line prices from the catalog and computes the
// aggregate total and GST. The price is frozen per line; the GST rate is read
// live from the catalog at compile time. Both aggregates are rounded to the
// currency minor unit once, here.
func compileItems(lines []LineRequest, catalog map[uint]models.Product) (items []models.InvoiceItem, total, gst decimal.Decimal) {
	hundred := decimal.NewFromInt(100)
	items = make([]models.InvoiceItem, 0, len(lines))
	for _, line := range lines {
		p := catalog[line.ProductID]
		qty := decimal.NewFromInt(int64(line.Quantity))
		items = append(items, models.InvoiceItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     p.Price,
		})
		total = total.Add(p.Price.Mul(qty))
		gst = gst.Add(p.Price.Mul(p.GST).Div(hundred).Mul(qty))
	}
	return items, total.Round(2), gst.Round(2)
}
