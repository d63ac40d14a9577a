package create_booking

import (
	"fmt"
	"time"

	"github.com/parkhub/parkhub-booking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.VehicleNumber == "" {
		return fmt.Errorf("%w: vehicleNumber is required", ErrInvalidInput)
	}

	if len(req.VehicleNumber) > domain.MaxVehicleNumberLength {
		return fmt.Errorf("%w: vehicleNumber exceeds %d characters", ErrInvalidInput, domain.MaxVehicleNumberLength)
	}

	if req.StartTime == "" {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStartTime, err)
	}

	if req.DurationHours < domain.MinDurationHours || req.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: duration must be between %d and %d hours",
			ErrInvalidDuration, domain.MinDurationHours, domain.MaxDurationHours)
	}

	return nil
}

// validateStartNotInPast проверяет, что начало бронирования не в прошлом
// Граничный случай start == now допустим
func validateStartNotInPast(start, now time.Time) error {
	if start.Before(now) {
		return ErrPastStartTime
	}
	return nil
}
