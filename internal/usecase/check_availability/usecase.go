package check_availability

import (
	"context"
	"errors"
	"fmt"

	slotRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/slot"
)

// UseCase use case проверки доступности слота на интервал
// Ответ консультативный: решающая проверка выполняется повторно
// в транзакции создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		logger:      logger,
	}
}

// Execute проверяет, свободен ли слот на полуоткрытый интервал [start, end)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: slot=%d, start=%s, end=%s", req.SlotID, req.Start, req.End)

	if req.SlotID <= 0 {
		uc.logger.Warn("CheckAvailability: invalid slot id=%d", req.SlotID)
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	start, err := req.Start.Parse()
	if err != nil {
		uc.logger.Warn("CheckAvailability: failed to parse start %q: %v", req.Start, err)
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidInterval, err)
	}

	end, err := req.End.Parse()
	if err != nil {
		uc.logger.Warn("CheckAvailability: failed to parse end %q: %v", req.End, err)
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidInterval, err)
	}

	if !end.After(start) {
		uc.logger.Warn("CheckAvailability: degenerate interval [%s, %s)", start, end)
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidInterval)
	}

	slot, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("CheckAvailability: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	overlapping, err := uc.bookingRepo.GetOverlapping(ctx, req.SlotID, start, end)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get overlapping bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckAvailability: slot=%d has %d conflicts for [%s, %s)",
		req.SlotID, len(overlapping), start, end)

	return &Response{
		SlotID:     slot.ID,
		SlotNumber: slot.SlotNumber,
		Start:      start,
		End:        end,
		Available:  len(overlapping) == 0,
		Conflicts:  len(overlapping),
	}, nil
}
