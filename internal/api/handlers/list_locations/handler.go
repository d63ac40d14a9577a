package list_locations

import (
	"net/http"

	"github.com/parkhub/parkhub-booking/internal/api/handlers"
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

// Handle GET /api/v1/locations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListLocations(r.Context())
	if err != nil {
		h.logger.Error("GET /locations - Failed to list locations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /locations - Retrieved %d locations", len(result.Locations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
