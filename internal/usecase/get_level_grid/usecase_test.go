package get_level_grid

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkhub/parkhub-booking/internal/domain"
	hierarchyRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/hierarchy"
	"github.com/parkhub/parkhub-booking/internal/service/pricing"
	"github.com/parkhub/parkhub-booking/pkg/ptr"
	"github.com/parkhub/parkhub-booking/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) ListActiveForLevelAt(_ context.Context, _ int64, at time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.IsActiveAt(at) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeSlotRepo struct {
	slots []*domain.ParkingSlot
}

func (f *fakeSlotRepo) ListByLevel(_ context.Context, _ int64) ([]*domain.ParkingSlot, error) {
	return f.slots, nil
}

type fakeHierarchyRepo struct {
	level *domain.ParkingLevel
}

func (f *fakeHierarchyRepo) GetLevelByID(_ context.Context, id int64) (*domain.ParkingLevel, error) {
	if f.level == nil || f.level.ID != id {
		return nil, hierarchyRepo.ErrLevelNotFound
	}
	return f.level, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(hour, min int) time.Time {
	return time.Date(2025, 10, 15, hour, min, 0, 0, time.Local)
}

func newUseCase(bookings []*domain.Booking) *UseCase {
	level := &domain.ParkingLevel{ID: 1, LotID: 10, LevelName: "A", LevelOrder: 1, Rows: 2, Columns: 2, Capacity: 4}

	slots := []*domain.ParkingSlot{
		{ID: 1, LevelID: ptr.Ptr(int64(1)), SlotNumber: "A-01", Row: 1, Column: 1},
		{ID: 2, LevelID: ptr.Ptr(int64(1)), SlotNumber: "A-02", Row: 1, Column: 2},
		{ID: 3, LevelID: ptr.Ptr(int64(1)), SlotNumber: "A-03", Row: 2, Column: 1},
		{ID: 4, LevelID: ptr.Ptr(int64(1)), SlotNumber: "A-04", Row: 2, Column: 2},
	}

	uc := NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeSlotRepo{slots: slots},
		&fakeHierarchyRepo{level: level},
		pricing.NewService(50.0, 1.0, 2.0, 0.8),
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: at(12, 0)}
	return uc
}

func booking(slotID int64, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		SlotID:    slotID,
		StartTime: start,
		EndTime:   end,
		Status:    domain.StatusActive,
	}
}

func TestUseCase_Execute_DerivedOccupancy(t *testing.T) {
	uc := newUseCase([]*domain.Booking{
		booking(1, at(11, 0), at(13, 0)), // занят в 12:00
		booking(2, at(13, 0), at(14, 0)), // еще не начался
	})

	resp, err := uc.Execute(context.Background(), &Request{LevelID: 1})
	require.NoError(t, err)

	assert.Equal(t, "A", resp.LevelName)
	require.Len(t, resp.Slots, 4)

	assert.True(t, resp.Slots[0].Occupied)
	require.NotNil(t, resp.Slots[0].OccupiedUntil)
	assert.Equal(t, at(13, 0), *resp.Slots[0].OccupiedUntil)
	assert.False(t, resp.Slots[1].Occupied)

	assert.Equal(t, 4, resp.Stats.TotalSlots)
	assert.Equal(t, 1, resp.Stats.OccupiedSlots)
	assert.Equal(t, 3, resp.Stats.AvailableSlots)
	assert.InDelta(t, 0.25, resp.Stats.OccupancyRate, 0.001)
}

func TestUseCase_Execute_OccupancyBoundaries(t *testing.T) {
	// Бронирование [11:00, 12:00): конец исключен
	bookings := []*domain.Booking{booking(1, at(11, 0), at(12, 0))}

	tests := []struct {
		name     string
		at       types.DateTimeString
		occupied bool
	}{
		{name: "before start", at: "2025-10-15T10:59", occupied: false},
		{name: "at start", at: "2025-10-15T11:00", occupied: true},
		{name: "inside", at: "2025-10-15T11:30", occupied: true},
		{name: "at end", at: "2025-10-15T12:00", occupied: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(bookings)

			resp, err := uc.Execute(context.Background(), &Request{LevelID: 1, At: &tt.at})
			require.NoError(t, err)
			assert.Equal(t, tt.occupied, resp.Slots[0].Occupied)
		})
	}
}

func TestUseCase_Execute_CancelledExcluded(t *testing.T) {
	cancelled := booking(1, at(11, 0), at(13, 0))
	cancelled.Cancelled = true
	cancelled.Status = domain.StatusCancelled

	uc := newUseCase([]*domain.Booking{cancelled})

	resp, err := uc.Execute(context.Background(), &Request{LevelID: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Stats.OccupiedSlots)
	assert.False(t, resp.Slots[0].Occupied)
}

func TestUseCase_Execute_Recommendations(t *testing.T) {
	// Заняты A-01 и A-02: ближайшим свободным становится A-03 (ряд 2, место 1)
	uc := newUseCase([]*domain.Booking{
		booking(1, at(11, 0), at(13, 0)),
		booking(2, at(11, 0), at(13, 0)),
	})

	resp, err := uc.Execute(context.Background(), &Request{LevelID: 1})
	require.NoError(t, err)

	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "A-03", resp.Recommendations[0].SlotNumber)
	assert.Equal(t, 3, resp.Recommendations[0].Distance)
	assert.Equal(t, "A-04", resp.Recommendations[1].SlotNumber)
}

func TestUseCase_Execute_PricingReflectsOccupancy(t *testing.T) {
	uc := newUseCase([]*domain.Booking{
		booking(1, at(11, 0), at(13, 0)),
		booking(2, at(11, 0), at(13, 0)),
		booking(3, at(11, 0), at(13, 0)),
		booking(4, at(11, 0), at(13, 0)),
	})

	resp, err := uc.Execute(context.Background(), &Request{LevelID: 1})
	require.NoError(t, err)

	require.NotNil(t, resp.Pricing)
	assert.InDelta(t, 2.0, resp.Pricing.Multiplier, 0.001)
	assert.Equal(t, pricing.TierPremium, resp.Pricing.Tier)
	assert.Empty(t, resp.Recommendations)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := newUseCase(nil)

	t.Run("unknown level", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{LevelID: 99})
		assert.ErrorIs(t, err, ErrLevelNotFound)
	})

	t.Run("invalid at time", func(t *testing.T) {
		bad := types.DateTimeString("not-a-time")
		_, err := uc.Execute(context.Background(), &Request{LevelID: 1, At: &bad})
		assert.ErrorIs(t, err, ErrInvalidAtTime)
	})

	t.Run("invalid level id", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{LevelID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
