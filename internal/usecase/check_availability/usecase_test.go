package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkhub/parkhub-booking/internal/domain"
	slotRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/slot"
	"github.com/parkhub/parkhub-booking/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetOverlapping(_ context.Context, slotID int64, start, end time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.SlotID == slotID && b.Overlaps(start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeSlotRepo struct {
	slots map[int64]*domain.ParkingSlot
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.ParkingSlot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return s, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(hour int) time.Time {
	return time.Date(2025, 10, 15, hour, 0, 0, 0, time.Local)
}

func newUseCase() *UseCase {
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, SlotID: 7, StartTime: at(10), EndTime: at(12), Status: domain.StatusActive},
		},
	}
	slots := &fakeSlotRepo{
		slots: map[int64]*domain.ParkingSlot{
			7: {ID: 7, SlotNumber: "A-01", Row: 1, Column: 1},
		},
	}
	return NewUseCase(bookings, slots, nopLogger{})
}

func TestUseCase_Execute(t *testing.T) {
	uc := newUseCase()

	tests := []struct {
		name      string
		start     types.DateTimeString
		end       types.DateTimeString
		available bool
	}{
		{name: "overlapping interval", start: "2025-10-15T11:00", end: "2025-10-15T13:00", available: false},
		{name: "covered interval", start: "2025-10-15T10:30", end: "2025-10-15T11:30", available: false},
		{name: "back-to-back after", start: "2025-10-15T12:00", end: "2025-10-15T14:00", available: true},
		{name: "back-to-back before", start: "2025-10-15T08:00", end: "2025-10-15T10:00", available: true},
		{name: "disjoint", start: "2025-10-15T14:00", end: "2025-10-15T15:00", available: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), &Request{SlotID: 7, Start: tt.start, End: tt.end})
			require.NoError(t, err)

			assert.Equal(t, tt.available, resp.Available)
			assert.Equal(t, "A-01", resp.SlotNumber)
			if !tt.available {
				assert.Equal(t, 1, resp.Conflicts)
			}
		})
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := newUseCase()

	t.Run("unknown slot", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{SlotID: 99, Start: "2025-10-15T10:00", End: "2025-10-15T11:00"})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("malformed start", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{SlotID: 7, Start: "10:00", End: "2025-10-15T11:00"})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{SlotID: 7, Start: "2025-10-15T11:00", End: "2025-10-15T10:00"})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("empty interval", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{SlotID: 7, Start: "2025-10-15T11:00", End: "2025-10-15T11:00"})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}
