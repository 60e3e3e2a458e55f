package handler

import (
	"net/http"

	"mini-inventory/internal/service"

	"github.com/rs/zerolog"
)

// ReportHandler serves the text reports.
type ReportHandler struct {
	service service.InventoryService
	logger  zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service service.InventoryService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("handler", "report").Logger(),
	}
}

// Sales handles GET /api/reports/sales requests.
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, h.service.SalesReport(r.Context()))
}

// Inventory handles GET /api/reports/inventory requests.
func (h *ReportHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, h.service.InventoryReport(r.Context()))
}

// ExportSales handles POST /api/reports/sales/export requests.
func (h *ReportHandler) ExportSales(w http.ResponseWriter, r *http.Request) {
	path, err := decodePath(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if err := h.service.ExportSalesReport(r.Context(), path); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, PathRequest{Path: path})
}
