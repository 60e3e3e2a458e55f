package router

import (
	"net/http"

	"mini-inventory/internal/handler"
	"mini-inventory/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers the router dispatches to.
type Handlers struct {
	Auth         *handler.AuthHandler
	Products     *handler.ProductHandler
	Transactions *handler.TransactionHandler
	Reports      *handler.ReportHandler
	Inventory    *handler.InventoryHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, tokens middleware.TokenParser, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	requireUser := middleware.RequireUser(tokens, logger)
	requireAdmin := middleware.RequireAdmin(tokens, logger)

	user := func(fn http.HandlerFunc) http.Handler { return requireUser(fn) }
	admin := func(fn http.HandlerFunc) http.Handler { return requireAdmin(fn) }

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("POST /api/login", h.Auth.Login)

	// Products
	mux.HandleFunc("GET /api/products", h.Products.List)
	mux.HandleFunc("GET /api/products/{id}", h.Products.GetByID)
	mux.Handle("POST /api/products", admin(h.Products.Create))
	mux.Handle("PUT /api/products/{id}", admin(h.Products.Update))
	mux.Handle("DELETE /api/products/{id}", admin(h.Products.Delete))

	// Ledger
	mux.HandleFunc("GET /api/transactions", h.Transactions.List)
	mux.Handle("POST /api/transactions", user(h.Transactions.Record))

	// Reports
	mux.HandleFunc("GET /api/reports/sales", h.Reports.Sales)
	mux.HandleFunc("GET /api/reports/inventory", h.Reports.Inventory)
	mux.Handle("POST /api/reports/sales/export", user(h.Reports.ExportSales))

	// Persistence
	mux.Handle("POST /api/inventory/save", admin(h.Inventory.Save))
	mux.Handle("POST /api/inventory/load", admin(h.Inventory.Load))
	mux.Handle("POST /api/inventory/db/save", admin(h.Inventory.SaveToDatabase))
	mux.Handle("POST /api/inventory/db/load", admin(h.Inventory.LoadFromDatabase))

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
