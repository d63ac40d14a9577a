package models

import (
	"errors"
	"time"

	"github.com/parkhub/parkhub-booking/internal/domain"
	"github.com/parkhub/parkhub-booking/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID  int64   `json:"userId"`
	ActorID int64   `json:"-"`
	Status  *string `json:"status,omitempty"`
}

// GetAllBookingsRequest запрос административной выборки бронирований
type GetAllBookingsRequest struct {
	ActorID          int64      `json:"-"`
	UserID           *int64     `json:"userId,omitempty"`
	SlotID           *int64     `json:"slotId,omitempty"`
	Status           *string    `json:"status,omitempty"`
	From             *time.Time `json:"from,omitempty"`
	To               *time.Time `json:"to,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
	Limit            uint64     `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAllBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		UserID:           r.UserID,
		SlotID:           r.SlotID,
		From:             r.From,
		To:               r.To,
		IncludeCancelled: r.IncludeCancelled,
		Limit:            r.Limit,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	SlotID        int64   `json:"slotId"`
	VehicleNumber string  `json:"vehicleNumber"`
	StartTime     string  `json:"startTime"` // "2025-10-15T10:00"
	EndTime       string  `json:"endTime"`
	DurationHours float64 `json:"durationHours"`
	HourlyRate    float64 `json:"hourlyRate"`
	TotalPrice    float64 `json:"totalPrice"`
	Status        string  `json:"status"`
	Cancelled     bool    `json:"cancelled"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		SlotID:        b.SlotID,
		VehicleNumber: b.VehicleNumber,
		StartTime:     string(types.NewDateTimeString(b.StartTime)),
		EndTime:       string(types.NewDateTimeString(b.EndTime)),
		DurationHours: b.DurationHours,
		HourlyRate:    b.HourlyRate,
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		Cancelled:     b.Cancelled,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusActive,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
