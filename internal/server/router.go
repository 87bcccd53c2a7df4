package server

import (
	"net/http"

	"gorm.io/gorm"

	"smartbill/internal/handlers"
	"smartbill/internal/httpx"
	"smartbill/internal/repo"
	"smartbill/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, notifier services.Notifier) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Client endpoints. List/Create via /clients, Update/Delete via
	// /clients/update & /clients/delete for simplicity.
	ch := handlers.NewClientHandler(repo.NewClientRepo(db))
	mux.Handle("/clients", listCreate(ch.List, ch.Create))
	mux.Handle("/clients/update", postOnly(ch.Update))
	mux.Handle("/clients/delete", postOnly(ch.Delete))

	// Product endpoints
	ph := handlers.NewProductHandler(repo.NewProductRepo(db))
	mux.Handle("/products", listCreate(ph.List, ph.Create))
	mux.Handle("/products/update", postOnly(ph.Update))
	mux.Handle("/products/delete", postOnly(ph.Delete))
	mux.Handle("/products/barcode", getOnly(ph.Barcode))

	// Invoice endpoints
	ih := handlers.NewInvoiceHandler(services.NewBillingService(db))
	mux.Handle("/invoices", listCreate(ih.List, ih.Create))
	mux.Handle("/invoices/update", postOnly(ih.Update))
	mux.Handle("/invoices/toggle-paid", postOnly(ih.TogglePaid))

	// Dashboard endpoints (read-only aggregates + summary delivery)
	dh := handlers.NewDashboardHandler(services.NewReportService(db), repo.NewSettingRepo(db), notifier)
	mux.Handle("/dashboard", getOnly(dh.Stats))
	mux.Handle("/dashboard/sales", getOnly(dh.Sales))
	mux.Handle("/dashboard/summary", postOnly(dh.SendSummary))
	mux.Handle("/dashboard/summary-email", postOnly(dh.SummaryEmail))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("SmartBill API"))
	})

	return withRequestID(withRecover(withLogging(mux)))
}

func listCreate(list, create http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
}

func postOnly(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	})
}

func getOnly(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	})
}
