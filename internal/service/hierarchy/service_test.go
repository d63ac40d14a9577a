package hierarchy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkhub/parkhub-booking/internal/domain"
	configurationRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/configuration"
	hierarchyRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/hierarchy"
	"github.com/parkhub/parkhub-booking/pkg/ptr"
)

type fakeHierarchyRepo struct {
	locations map[int64]*domain.Location
	lots      map[int64]*domain.ParkingLot
	levels    map[int64]*domain.ParkingLevel
}

func (f *fakeHierarchyRepo) ListLocations(_ context.Context) ([]*domain.Location, error) {
	var out []*domain.Location
	for _, l := range f.locations {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeHierarchyRepo) GetLocationByID(_ context.Context, id int64) (*domain.Location, error) {
	l, ok := f.locations[id]
	if !ok {
		return nil, hierarchyRepo.ErrLocationNotFound
	}
	return l, nil
}

func (f *fakeHierarchyRepo) ListLotsByLocation(_ context.Context, locationID int64) ([]*domain.ParkingLot, error) {
	var out []*domain.ParkingLot
	for _, lot := range f.lots {
		if lot.LocationID == locationID {
			out = append(out, lot)
		}
	}
	return out, nil
}

func (f *fakeHierarchyRepo) GetLotByID(_ context.Context, id int64) (*domain.ParkingLot, error) {
	lot, ok := f.lots[id]
	if !ok {
		return nil, hierarchyRepo.ErrLotNotFound
	}
	return lot, nil
}

func (f *fakeHierarchyRepo) ListLevelsByLot(_ context.Context, lotID int64) ([]*domain.ParkingLevel, error) {
	var out []*domain.ParkingLevel
	for _, level := range f.levels {
		if level.LotID == lotID {
			out = append(out, level)
		}
	}
	return out, nil
}

type fakeSlotCounts struct {
	perLevel    map[int64]int
	perLocation map[int64]int
}

func (f *fakeSlotCounts) CountByLevel(_ context.Context, levelID int64) (int, error) {
	return f.perLevel[levelID], nil
}

func (f *fakeSlotCounts) CountByLocation(_ context.Context, locationID int64) (int, error) {
	return f.perLocation[locationID], nil
}

type fakeBookingCounts struct {
	activePerLevel    map[int64]int
	activePerLocation map[int64]int
}

func (f *fakeBookingCounts) CountActiveForLevelAt(_ context.Context, levelID int64, _ time.Time) (int, error) {
	return f.activePerLevel[levelID], nil
}

func (f *fakeBookingCounts) CountActiveForLocationAt(_ context.Context, locationID int64, _ time.Time) (int, error) {
	return f.activePerLocation[locationID], nil
}

type fakeConfigurationRepo struct {
	configurations map[int64]*domain.ParkingConfiguration
}

func (f *fakeConfigurationRepo) GetByID(_ context.Context, id int64) (*domain.ParkingConfiguration, error) {
	c, ok := f.configurations[id]
	if !ok {
		return nil, configurationRepo.ErrConfigurationNotFound
	}
	return c, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() *Service {
	hier := &fakeHierarchyRepo{
		locations: map[int64]*domain.Location{
			1: {ID: 1, Name: "City Mall", Address: "Main St 1"},
		},
		lots: map[int64]*domain.ParkingLot{
			10: {ID: 10, LocationID: 1, Name: "North Lot", TotalLevels: 2, ConfigurationID: ptr.Ptr(int64(5))},
		},
		levels: map[int64]*domain.ParkingLevel{
			100: {ID: 100, LotID: 10, LevelName: "A", LevelOrder: 1, Rows: 2, Columns: 5, Capacity: 10},
			101: {ID: 101, LotID: 10, LevelName: "B", LevelOrder: 2, Rows: 2, Columns: 5, Capacity: 10},
		},
	}

	slots := &fakeSlotCounts{
		perLevel:    map[int64]int{100: 10, 101: 10},
		perLocation: map[int64]int{1: 20},
	}

	bookings := &fakeBookingCounts{
		activePerLevel:    map[int64]int{100: 4, 101: 0},
		activePerLocation: map[int64]int{1: 4},
	}

	configurations := &fakeConfigurationRepo{
		configurations: map[int64]*domain.ParkingConfiguration{
			5: {ID: 5, Name: "Standard", NumLevels: 2, RowsPerLevel: 2, ColumnsPerLevel: 5},
		},
	}

	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	return NewService(hier, slots, bookings, configurations, fixedTime{now: now}, nopLogger{})
}

func TestService_ListLocations(t *testing.T) {
	svc := newTestService()

	resp, err := svc.ListLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Locations, 1)

	loc := resp.Locations[0]
	assert.Equal(t, "City Mall", loc.Name)
	assert.Equal(t, 20, loc.Availability.TotalSlots)
	assert.Equal(t, 4, loc.Availability.OccupiedSlots)
	assert.Equal(t, 16, loc.Availability.AvailableSlots)
	assert.InDelta(t, 0.2, loc.Availability.OccupancyRate, 0.001)
}

func TestService_ListLots(t *testing.T) {
	svc := newTestService()

	t.Run("aggregates levels and resolves configuration name", func(t *testing.T) {
		resp, err := svc.ListLots(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, resp.Lots, 1)

		lot := resp.Lots[0]
		assert.Equal(t, "North Lot", lot.Name)
		assert.Equal(t, "Standard", lot.Configuration)
		assert.Equal(t, 20, lot.Availability.TotalSlots)
		assert.Equal(t, 4, lot.Availability.OccupiedSlots)
	})

	t.Run("unknown location", func(t *testing.T) {
		_, err := svc.ListLots(context.Background(), 99)
		assert.ErrorIs(t, err, ErrLocationNotFound)
	})
}

func TestService_ListLevels(t *testing.T) {
	svc := newTestService()

	t.Run("per level availability", func(t *testing.T) {
		resp, err := svc.ListLevels(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, resp.Levels, 2)

		byName := map[string]int{}
		for _, level := range resp.Levels {
			byName[level.LevelName] = level.Availability.OccupiedSlots
		}
		assert.Equal(t, 4, byName["A"])
		assert.Equal(t, 0, byName["B"])
	})

	t.Run("unknown lot", func(t *testing.T) {
		_, err := svc.ListLevels(context.Background(), 99)
		assert.ErrorIs(t, err, ErrLotNotFound)
	})
}
