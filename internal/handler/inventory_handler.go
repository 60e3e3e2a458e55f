package handler

import (
	"net/http"

	"mini-inventory/internal/service"

	"github.com/rs/zerolog"
)

// LoadResponse reports how many products a file load added.
type LoadResponse struct {
	Loaded int `json:"loaded"`
}

// InventoryHandler handles persistence requests.
type InventoryHandler struct {
	service service.InventoryService
	logger  zerolog.Logger
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(service service.InventoryService, logger zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "inventory").Logger(),
	}
}

// Save handles POST /api/inventory/save requests.
func (h *InventoryHandler) Save(w http.ResponseWriter, r *http.Request) {
	path, err := decodePath(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if err := h.service.Save(r.Context(), path); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, PathRequest{Path: path})
}

// Load handles POST /api/inventory/load requests.
func (h *InventoryHandler) Load(w http.ResponseWriter, r *http.Request) {
	path, err := decodePath(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	n, err := h.service.Load(r.Context(), path)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, LoadResponse{Loaded: n})
}

// SaveToDatabase handles POST /api/inventory/db/save requests.
func (h *InventoryHandler) SaveToDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SaveToDatabase(r.Context()); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// LoadFromDatabase handles POST /api/inventory/db/load requests.
func (h *InventoryHandler) LoadFromDatabase(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.LoadFromDatabase(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
