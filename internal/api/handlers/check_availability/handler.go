package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/parkhub/parkhub-booking/internal/api/handlers"
	checkAvailability "github.com/parkhub/parkhub-booking/internal/usecase/check_availability"
	"github.com/parkhub/parkhub-booking/pkg/types"
)

const (
	msgInvalidSlotID   = "некорректный ID слота"
	msgInvalidInterval = "некорректный интервал, ожидается start и end в формате YYYY-MM-DDTHH:MM"
	msgSlotNotFound    = "парковочный слот не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/{slotId}/availability?start=...&end=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /slots/{id}/availability - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	query := r.URL.Query()
	req := &checkAvailability.Request{
		SlotID: slotID,
		Start:  types.DateTimeString(query.Get("start")),
		End:    types.DateTimeString(query.Get("end")),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrSlotNotFound):
			h.logger.Warn("GET /slots/{id}/availability - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInterval),
			errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /slots/{id}/availability - Invalid interval: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /slots/{id}/availability - Failed to check availability: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/{id}/availability - slot_id=%d available=%t", slotID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, result)
}
