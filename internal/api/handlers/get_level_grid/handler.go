package get_level_grid

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/parkhub/parkhub-booking/internal/api/handlers"
	getLevelGrid "github.com/parkhub/parkhub-booking/internal/usecase/get_level_grid"
	"github.com/parkhub/parkhub-booking/pkg/types"
)

const (
	msgInvalidLevelID = "некорректный ID уровня"
	msgInvalidAtTime  = "некорректный момент запроса, ожидается YYYY-MM-DDTHH:MM"
	msgLevelNotFound  = "уровень парковки не найден"
)

type Handler struct {
	useCase GetLevelGridUseCase
	logger  Logger
}

func NewHandler(useCase GetLevelGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/levels/{levelId}/grid?at=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	levelID, err := strconv.ParseInt(vars["levelId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /levels/{id}/grid - Invalid level ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLevelID)
		return
	}

	req := &getLevelGrid.Request{LevelID: levelID}
	if raw := r.URL.Query().Get("at"); raw != "" {
		at := types.DateTimeString(raw)
		req.At = &at
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getLevelGrid.ErrLevelNotFound):
			h.logger.Warn("GET /levels/{id}/grid - Level not found: level_id=%d", levelID)
			handlers.RespondNotFound(w, msgLevelNotFound)

		case errors.Is(err, getLevelGrid.ErrInvalidAtTime),
			errors.Is(err, getLevelGrid.ErrInvalidInput):
			h.logger.Warn("GET /levels/{id}/grid - Invalid request: level_id=%d, error=%v", levelID, err)
			handlers.RespondBadRequest(w, msgInvalidAtTime)

		default:
			h.logger.Error("GET /levels/{id}/grid - Failed to build grid: level_id=%d, error=%v", levelID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /levels/{id}/grid - level_id=%d, %d/%d occupied",
		levelID, result.Stats.OccupiedSlots, result.Stats.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, result)
}
