package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"smartbill/internal/httpx"
	"smartbill/internal/services"
	"smartbill/internal/validation"
)

// writeError maps the error taxonomy onto HTTP statuses. Validation and stock
// errors carry their details to the caller for inline display; anything else
// is a persistence failure reported generically and logged.
func writeError(w http.ResponseWriter, err error) {
	var vErr *validation.Error
	var stockErr *services.InsufficientStockError
	switch {
	case errors.As(err, &vErr):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", vErr.Violations)
	case errors.As(err, &stockErr):
		httpx.JSONError(w, http.StatusConflict, "insufficient_stock", map[string]string{"product": stockErr.ProductName})
	default:
		log.Printf("store error: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "store_error", nil)
	}
}

// idFromRequest reads an entity id from the query string or form.
func idFromRequest(r *http.Request) (uint, bool) {
	v := r.URL.Query().Get("id")
	if v == "" {
		if err := r.ParseForm(); err == nil {
			v = r.Form.Get("id")
		}
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return uint(n), true
}
