package domain

import "time"

// BookingEvent is an append-only record written for every successfully
// created booking. It feeds external predictive models (peak-hour
// regression, cancellation probability); the booking engine itself
// never reads these records back.
type BookingEvent struct {
	ID         int64
	Timestamp  time.Time // scheduled start of the booking
	SlotNumber string
	UserID     int64

	Occupied  bool // outcome placeholder, true at creation
	Cancelled bool // outcome placeholder, false at creation

	DurationHours float64
	LeadTimeHours float64 // start - now at creation time

	Hour      int // 0-23, hour of StartTime
	DayOfWeek int // 0=Monday .. 6=Sunday
}

// NewBookingEvent builds the history record for a freshly created booking
func NewBookingEvent(b *Booking, slotNumber string, now time.Time) *BookingEvent {
	return &BookingEvent{
		Timestamp:     b.StartTime,
		SlotNumber:    slotNumber,
		UserID:        b.UserID,
		Occupied:      true,
		Cancelled:     false,
		DurationHours: b.DurationHours,
		LeadTimeHours: b.StartTime.Sub(now).Hours(),
		Hour:          b.StartTime.Hour(),
		DayOfWeek:     mondayIndexedWeekday(b.StartTime.Weekday()),
	}
}

// mondayIndexedWeekday converts time.Weekday (Sunday=0) to the
// Monday=0..Sunday=6 convention used by the historical dataset
func mondayIndexedWeekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}
