package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"smartbill/internal/httpx"
	"smartbill/internal/models"
	"smartbill/internal/repo"
)

type ProductHandler struct {
	Repo *repo.ProductRepo
}

func NewProductHandler(r *repo.ProductRepo) *ProductHandler { return &ProductHandler{Repo: r} }

// List: GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Repo.List()
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": len(products)})
}

type productReq struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock"`
	GST     decimal.Decimal `json:"gst"`
	Barcode string          `json:"barcode"`
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p := models.Product{Name: req.Name, Price: req.Price, Stock: req.Stock, GST: req.GST, Barcode: strings.TrimSpace(req.Barcode)}
	if err := h.Repo.Create(&p); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Update: POST /products/update
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	p := models.Product{Name: req.Name, Price: req.Price, Stock: req.Stock, GST: req.GST, Barcode: strings.TrimSpace(req.Barcode)}
	if err := h.Repo.Update(req.ID, &p); err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.Repo.Get(req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// Delete: POST /products/delete?id=...
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Barcode: GET /products/barcode?code=...
// Returns the first product carrying the code, or 404. The entry form uses
// this to auto-select an existing product after a scan.
func (h *ProductHandler) Barcode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_code", nil)
		return
	}
	p, err := h.Repo.FindByBarcode(code)
	if err != nil {
		writeError(w, err)
		return
	}
	if p == nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}
