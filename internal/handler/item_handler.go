package handler

import (
	"errors"
	"net/http"

	"items-api/internal/model"
	"items-api/internal/service"

	"github.com/rs/zerolog"
)

const (
	welcomeMessage = "Welcome to the items API"
	deletedMessage = "Item deleted successfully"
)

// ItemHandler handles item-related HTTP requests.
type ItemHandler struct {
	service service.ItemService
	logger  zerolog.Logger
}

// NewItemHandler creates a new item handler.
func NewItemHandler(service service.ItemService, logger zerolog.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		logger:  logger.With().Str("handler", "item").Logger(),
	}
}

// Root handles GET / requests.
func (h *ItemHandler) Root(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, r, h.logger, http.MethodGet)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: welcomeMessage})
}

// Health handles GET /health requests.
func (h *ItemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, r, h.logger, http.MethodGet)
		return
	}

	if err := h.service.Healthy(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// NotFound answers requests for paths no route serves.
func (h *ItemHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "resource not found", h.logger)
}

// Collection dispatches requests for /items/.
func (h *ItemHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		writeMethodNotAllowed(w, r, h.logger, http.MethodGet, http.MethodPost)
	}
}

// Member dispatches requests for /items/{id}.
func (h *ItemHandler) Member(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetByID(w, r)
	case http.MethodPut:
		h.Update(w, r)
	case http.MethodDelete:
		h.Delete(w, r)
	default:
		writeMethodNotAllowed(w, r, h.logger, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// List handles GET /items/ requests.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve items", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// GetByID handles GET /items/{id} requests.
func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseItemID(r)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, model.ErrCodeInvalidID, err.Error(), h.logger)
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to retrieve item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /items/ requests.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ItemCreate
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, model.ErrCodeValidation, err.Error(), h.logger)
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Update handles PUT /items/{id} requests.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseItemID(r)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, model.ErrCodeInvalidID, err.Error(), h.logger)
		return
	}

	var req model.ItemUpdate
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, model.ErrCodeValidation, err.Error(), h.logger)
		return
	}

	item, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to update item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /items/{id} requests.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseItemID(r)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, model.ErrCodeInvalidID, err.Error(), h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "failed to delete item")
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: deletedMessage})
}

// writeServiceError maps domain errors to client errors and everything else to 500.
func (h *ItemHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == model.ErrCodeItemNotFound {
		writeError(w, r, http.StatusNotFound, domainErr.Code, domainErr.Message, h.logger)
		return
	}

	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, fallback, h.logger)
}
