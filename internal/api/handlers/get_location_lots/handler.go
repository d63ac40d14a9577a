package get_location_lots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/parkhub/parkhub-booking/internal/api/handlers"
	"github.com/parkhub/parkhub-booking/internal/service/hierarchy"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgLocationNotFound  = "локация не найдена"
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

// Handle GET /api/v1/locations/{locationId}/lots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	locationID, err := strconv.ParseInt(vars["locationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /locations/{id}/lots - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	result, err := h.service.ListLots(r.Context(), locationID)
	if err != nil {
		switch {
		case errors.Is(err, hierarchy.ErrLocationNotFound):
			h.logger.Warn("GET /locations/{id}/lots - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		default:
			h.logger.Error("GET /locations/{id}/lots - Failed to list lots: location_id=%d, error=%v",
				locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{id}/lots - Retrieved %d lots: location_id=%d", len(result.Lots), locationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
