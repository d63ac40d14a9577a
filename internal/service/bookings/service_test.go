package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkhub/parkhub-booking/internal/domain"
	bookingRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/booking"
	userRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/user"
	"github.com/parkhub/parkhub-booking/internal/service/bookings/models"
	"github.com/parkhub/parkhub-booking/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	cancelCalls []int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if !filter.IncludeCancelled && b.IsCancelled() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64) error {
	f.cancelCalls = append(f.cancelCalls, id)
	b, ok := f.bookings[id]
	if !ok || b.Cancelled {
		return bookingRepo.ErrAlreadyCancelled
	}
	b.Cancelled = true
	b.Status = domain.StatusCancelled
	return nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeBookingRepo, *fakeUserRepo) {
	start := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{
			1: {
				ID:            1,
				UserID:        100,
				SlotID:        7,
				VehicleNumber: "AB123CD",
				StartTime:     start,
				EndTime:       start.Add(2 * time.Hour),
				DurationHours: 2,
				HourlyRate:    50,
				TotalPrice:    100,
				Status:        domain.StatusActive,
			},
			2: {
				ID:        2,
				UserID:    100,
				SlotID:    8,
				StartTime: start,
				EndTime:   start.Add(time.Hour),
				Status:    domain.StatusCancelled,
				Cancelled: true,
			},
		},
	}

	users := &fakeUserRepo{
		users: map[int64]*domain.User{
			100: {ID: 100, Name: "owner"},
			200: {ID: 200, Name: "stranger"},
			300: {ID: 300, Name: "admin", IsAdmin: true},
		},
	}

	return NewService(bookings, users, nopLogger{}), bookings, users
}

func TestService_GetByID(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	t.Run("owner can read own booking", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "2025-10-15T10:00", resp.StartTime)
	})

	t.Run("admin can read any booking", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, 1, 300)
		require.NoError(t, err)
		assert.Equal(t, int64(100), resp.UserID)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 1, 200)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown actor is denied", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 1, 999)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 42, 100)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_GetUserBookings(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	t.Run("own history", func(t *testing.T) {
		resp, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: 100, ActorID: 100})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		resp, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{
			UserID:  100,
			ActorID: 100,
			Status:  ptr.Ptr("active"),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
		assert.Equal(t, "active", resp.Bookings[0].Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{
			UserID:  100,
			ActorID: 100,
			Status:  ptr.Ptr("parked"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("foreign history denied for non-admin", func(t *testing.T) {
		_, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: 100, ActorID: 200})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin reads foreign history", func(t *testing.T) {
		resp, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: 100, ActorID: 300})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})
}

func TestService_GetAllBookings(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	t.Run("admin only", func(t *testing.T) {
		_, err := svc.GetAllBookings(ctx, &models.GetAllBookingsRequest{ActorID: 100})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("cancelled excluded by default", func(t *testing.T) {
		resp, err := svc.GetAllBookings(ctx, &models.GetAllBookingsRequest{ActorID: 300})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("cancelled included on request", func(t *testing.T) {
		resp, err := svc.GetAllBookings(ctx, &models.GetAllBookingsRequest{ActorID: 300, IncludeCancelled: true})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("owner cancels once", func(t *testing.T) {
		svc, repo, _ := newTestService()

		err := svc.Cancel(context.Background(), 1, 100)
		require.NoError(t, err)
		assert.True(t, repo.bookings[1].Cancelled)
		assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	})

	t.Run("repeat cancel is a no-op success", func(t *testing.T) {
		svc, repo, _ := newTestService()

		require.NoError(t, svc.Cancel(context.Background(), 2, 100))
		assert.Equal(t, []int64{2}, repo.cancelCalls)
	})

	t.Run("admin cancels foreign booking", func(t *testing.T) {
		svc, repo, _ := newTestService()

		require.NoError(t, svc.Cancel(context.Background(), 1, 300))
		assert.True(t, repo.bookings[1].Cancelled)
	})

	t.Run("stranger denied, state untouched", func(t *testing.T) {
		svc, repo, _ := newTestService()

		err := svc.Cancel(context.Background(), 1, 200)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.False(t, repo.bookings[1].Cancelled)
		assert.Empty(t, repo.cancelCalls)
	})

	t.Run("missing booking", func(t *testing.T) {
		svc, _, _ := newTestService()

		err := svc.Cancel(context.Background(), 42, 100)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
