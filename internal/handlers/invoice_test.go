package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartbill/internal/models"
	"smartbill/internal/services"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Product{}, &models.Invoice{}, &models.InvoiceItem{}, &models.Setting{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seed one client and one product (price 100, stock 5, gst 10)
func seedHandlerFixtures(t *testing.T, db *gorm.DB) (client models.Client, product models.Product) {
	t.Helper()
	client = models.Client{Name: "ClientCo", Contact: "c@test"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	product = models.Product{Name: "Widget", Price: decimal.NewFromInt(100), Stock: 5, GST: decimal.NewFromInt(10)}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("product: %v", err)
	}
	return
}

func TestInvoiceCreateAndListJSON(t *testing.T) {
	db := setupHandlerDB(t)
	client, product := seedHandlerFixtures(t, db)
	h := NewInvoiceHandler(services.NewBillingService(db))

	body := `{"client_id":` + strconv.Itoa(int(client.ID)) + `,"items":[{"product_id":` + strconv.Itoa(int(product.ID)) + `,"quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		Invoice models.Invoice   `json:"invoice"`
		Items   []models.Invoice `json:"items"`
		Total   int              `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Invoice.ID == 0 {
		t.Fatalf("missing invoice id in response: %s", w.Body.String())
	}
	if !created.Invoice.Total.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected total 200 got %s", created.Invoice.Total)
	}
	if created.Total != 1 || len(created.Items) != 1 {
		t.Fatalf("expected full post-state list with one invoice, got %s", w.Body.String())
	}

	listReq := httptest.NewRequest(http.MethodGet, "/invoices", nil)
	listW := httptest.NewRecorder()
	h.List(listW, listReq)
	if listW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", listW.Code)
	}
	var list struct {
		Items []models.Invoice `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(listW.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 1 || len(list.Items) != 1 {
		t.Fatalf("expected one invoice, got %s", listW.Body.String())
	}
	if len(list.Items[0].Items) != 1 {
		t.Fatalf("expected invoice items preloaded, got %s", listW.Body.String())
	}
}

func TestInvoiceCreateInsufficientStock(t *testing.T) {
	db := setupHandlerDB(t)
	client, product := seedHandlerFixtures(t, db)
	h := NewInvoiceHandler(services.NewBillingService(db))

	body := `{"client_id":` + strconv.Itoa(int(client.ID)) + `,"items":[{"product_id":` + strconv.Itoa(int(product.ID)) + `,"quantity":6}]}`
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "insufficient_stock") || !strings.Contains(w.Body.String(), "Widget") {
		t.Fatalf("expected insufficient_stock naming the product, got %s", w.Body.String())
	}
	var p models.Product
	if err := db.First(&p, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if p.Stock != 5 {
		t.Fatalf("stock must be unchanged, got %d", p.Stock)
	}
}

func TestInvoiceCreateValidation(t *testing.T) {
	db := setupHandlerDB(t)
	seedHandlerFixtures(t, db)
	h := NewInvoiceHandler(services.NewBillingService(db))

	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(`{"client_id":0,"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "validation_failed") {
		t.Fatalf("expected validation_failed, got %s", w.Body.String())
	}
}

func TestInvoiceTogglePaid(t *testing.T) {
	db := setupHandlerDB(t)
	client, product := seedHandlerFixtures(t, db)
	svc := services.NewBillingService(db)
	h := NewInvoiceHandler(svc)

	inv, err := svc.CreateInvoice(client.ID, []services.LineRequest{{ProductID: product.ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/invoices/toggle-paid?id="+strconv.Itoa(int(inv.ID)), nil)
	w := httptest.NewRecorder()
	h.TogglePaid(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Invoice models.Invoice `json:"invoice"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Invoice.Paid {
		t.Fatalf("expected paid=true after toggle, got %s", w.Body.String())
	}
}

func TestInvoiceUpdateKeepsDateAndPaid(t *testing.T) {
	db := setupHandlerDB(t)
	client, product := seedHandlerFixtures(t, db)
	svc := services.NewBillingService(db)
	h := NewInvoiceHandler(svc)

	inv, err := svc.CreateInvoice(client.ID, []services.LineRequest{{ProductID: product.ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	body := `{"id":` + strconv.Itoa(int(inv.ID)) + `,"client_id":` + strconv.Itoa(int(client.ID)) + `,"items":[{"product_id":` + strconv.Itoa(int(product.ID)) + `,"quantity":3}]}`
	req := httptest.NewRequest(http.MethodPost, "/invoices/update", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Invoice models.Invoice `json:"invoice"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Invoice.Total.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected recomputed total 300, got %s", resp.Invoice.Total)
	}
	if resp.Invoice.Paid != inv.Paid {
		t.Fatalf("edit must not change paid")
	}
	if !resp.Invoice.Date.Equal(inv.Date) {
		t.Fatalf("edit must not change date: %s vs %s", resp.Invoice.Date, inv.Date)
	}
}
