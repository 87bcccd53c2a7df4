package handlers

import (
	"encoding/json"
	"net/http"

	"smartbill/internal/httpx"
	"smartbill/internal/services"
)

type InvoiceHandler struct {
	Svc *services.BillingService
}

func NewInvoiceHandler(svc *services.BillingService) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc}
}

// List: GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Svc.ListInvoices()
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invoices, "total": len(invoices)})
}

type invoiceReq struct {
	ID       uint                   `json:"id"`
	ClientID uint                   `json:"client_id"`
	Items    []services.LineRequest `json:"items"`
}

// Create: POST /invoices
// Responds with the full reloaded invoice list so the caller observes the
// committed post-state rather than an incremental diff.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req invoiceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	inv, err := h.Svc.CreateInvoice(req.ClientID, req.Items)
	if err != nil {
		writeError(w, err)
		return
	}
	invoices, err := h.Svc.ListInvoices()
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"invoice": inv, "items": invoices, "total": len(invoices)})
}

// Update: POST /invoices/update
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req invoiceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	inv, err := h.Svc.EditInvoice(req.ID, req.ClientID, req.Items)
	if err != nil {
		writeError(w, err)
		return
	}
	invoices, err := h.Svc.ListInvoices()
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": inv, "items": invoices, "total": len(invoices)})
}

// TogglePaid: POST /invoices/toggle-paid?id=...
func (h *InvoiceHandler) TogglePaid(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.Svc.TogglePaid(id)
	if err != nil {
		writeError(w, err)
		return
	}
	invoices, err := h.Svc.ListInvoices()
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": inv, "items": invoices, "total": len(invoices)})
}
