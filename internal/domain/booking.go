package domain

import "time"

// BookingStatus represents the status of a parking reservation
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a time-bounded claim on a parking slot.
// The interval is half-open: [StartTime, EndTime). Cancelled and Status
// are kept consistent by the storage layer: Cancelled == true always
// implies Status == StatusCancelled, and cancellation is terminal.
type Booking struct {
	ID     int64
	UserID int64
	SlotID int64

	VehicleNumber string
	StartTime     time.Time
	EndTime       time.Time
	DurationHours float64

	// Price snapshot taken at creation time, never recomputed
	HourlyRate float64
	TotalPrice float64

	Status    BookingStatus
	Cancelled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Cancelled || b.Status == StatusCancelled
}

// IsActiveAt returns true if the booking occupies its slot at the given instant.
// The end bound is exclusive: a booking ending at t does not occupy the slot at t.
func (b *Booking) IsActiveAt(at time.Time) bool {
	if b.IsCancelled() {
		return false
	}
	return !b.StartTime.After(at) && at.Before(b.EndTime)
}

// Overlaps reports whether the booking's interval overlaps [start, end)
// under the half-open rule. Back-to-back intervals do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	if b.IsCancelled() {
		return false
	}
	return IntervalsOverlap(b.StartTime, b.EndTime, start, end)
}

// IntervalsOverlap reports whether [aStart, aEnd) and [bStart, bEnd) overlap.
// Intervals that merely touch at an endpoint do not overlap, so adjacent
// bookings on the same slot are legal.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// BookingsFilter фильтр для административной выборки бронирований
type BookingsFilter struct {
	UserID           *int64         // Фильтр по пользователю (опционально)
	SlotID           *int64         // Фильтр по слоту (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	From             *time.Time     // Начало периода по start_time (опционально)
	To               *time.Time     // Конец периода по start_time (опционально)
	IncludeCancelled bool           // Включать ли отмененные бронирования
	Limit            uint64         // 0 = без ограничения
}
