package create_booking

import (
	"time"

	createBooking "github.com/parkhub/parkhub-booking/internal/usecase/create_booking"
	"github.com/parkhub/parkhub-booking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID        int64  `json:"slotId"`
	VehicleNumber string `json:"vehicleNumber"`
	StartTime     string `json:"startTime"` // "2025-10-15T10:00"
	DurationHours int    `json:"durationHours"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	SlotID        int64   `json:"slotId"`
	SlotNumber    string  `json:"slotNumber"`
	VehicleNumber string  `json:"vehicleNumber"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	DurationHours float64 `json:"durationHours"`
	Status        string  `json:"status"`

	HourlyRate float64 `json:"hourlyRate"`
	TotalPrice float64 `json:"totalPrice"`
	Multiplier float64 `json:"multiplier"`
	PriceTier  string  `json:"priceTier"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// userID приходит из контекста аутентификации, а не из тела
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:        userID,
		SlotID:        r.SlotID,
		VehicleNumber: r.VehicleNumber,
		StartTime:     types.DateTimeString(r.StartTime),
		DurationHours: r.DurationHours,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		SlotID:        resp.SlotID,
		SlotNumber:    resp.SlotNumber,
		VehicleNumber: resp.VehicleNumber,
		StartTime:     string(types.NewDateTimeString(resp.StartTime)),
		EndTime:       string(types.NewDateTimeString(resp.EndTime)),
		DurationHours: resp.DurationHours,
		Status:        resp.Status,
		HourlyRate:    resp.HourlyRate,
		TotalPrice:    resp.TotalPrice,
		Multiplier:    resp.Multiplier,
		PriceTier:     resp.PriceTier,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
