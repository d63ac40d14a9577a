package get_lot_levels

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/parkhub/parkhub-booking/internal/api/handlers"
	"github.com/parkhub/parkhub-booking/internal/service/hierarchy"
)

const (
	msgInvalidLotID = "некорректный ID парковки"
	msgLotNotFound  = "парковка не найдена"
)

type Handler struct {
	service HierarchyService
	logger  Logger
}

func NewHandler(service HierarchyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/lots/{lotId}/levels
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lotID, err := strconv.ParseInt(vars["lotId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /lots/{id}/levels - Invalid lot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	result, err := h.service.ListLevels(r.Context(), lotID)
	if err != nil {
		switch {
		case errors.Is(err, hierarchy.ErrLotNotFound):
			h.logger.Warn("GET /lots/{id}/levels - Lot not found: lot_id=%d", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		default:
			h.logger.Error("GET /lots/{id}/levels - Failed to list levels: lot_id=%d, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /lots/{id}/levels - Retrieved %d levels: lot_id=%d", len(result.Levels), lotID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
