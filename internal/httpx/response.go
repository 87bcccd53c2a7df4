package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the uniform error body: a short machine-readable code
// (validation_failed, insufficient_stock, store_error, ...) plus optional
// details such as field violations or the product that ran out.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload with the given status. A nil payload encodes as null.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes an ErrorResponse with the given code and optional details.
func JSONError(w http.ResponseWriter, status int, code string, details any) {
	JSON(w, status, ErrorResponse{Error: code, Details: details})
}
