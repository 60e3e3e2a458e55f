package handler

import (
	"net/http"
	"time"

	"mini-inventory/internal/model"
	"mini-inventory/internal/report"
	"mini-inventory/internal/service"

	"github.com/rs/zerolog"
)

// RecordTransactionRequest is the body of POST /api/transactions.
// Date is YYYY-MM-DD and defaults to today; Type is SALE or PURCHASE in any case.
type RecordTransactionRequest struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Date        string `json:"date,omitempty"`
	Type        string `json:"type"`
}

// TransactionHandler handles ledger HTTP requests.
type TransactionHandler struct {
	service service.InventoryService
	logger  zerolog.Logger
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(service service.InventoryService, logger zerolog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: service,
		logger:  logger.With().Str("handler", "transaction").Logger(),
	}
}

// List handles GET /api/transactions requests.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Transactions(r.Context()))
}

// Record handles POST /api/transactions requests.
func (h *TransactionHandler) Record(w http.ResponseWriter, r *http.Request) {
	var body RecordTransactionRequest
	if err := decodeJSON(r, &body); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	typ, err := model.ParseTransactionType(body.Type)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	var date time.Time
	if body.Date != "" {
		date, err = time.Parse(report.DateLayout, body.Date)
		if err != nil {
			writeDomainError(w, r, model.NewInvalidInput("date must be YYYY-MM-DD", err), h.logger)
			return
		}
	}

	tx, err := h.service.RecordTransaction(r.Context(), model.TransactionRequest{
		ProductName: body.ProductName,
		Quantity:    body.Quantity,
		Date:        date,
		Type:        typ,
	})
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}
