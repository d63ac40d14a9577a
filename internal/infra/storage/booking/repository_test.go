package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkhub/parkhub-booking/internal/domain"
	"github.com/parkhub/parkhub-booking/pkg/psqlbuilder"
	"github.com/parkhub/parkhub-booking/pkg/ptr"
)

func buildFilterSQL(t *testing.T, filter domain.BookingsFilter) (string, []interface{}) {
	t.Helper()

	query, args, err := applyFilter(
		psqlbuilder.Select("id").From("bookings"),
		filter,
	).ToSql()
	require.NoError(t, err)
	return query, args
}

func TestApplyFilter_PeriodIsHalfOpen(t *testing.T) {
	from := time.Date(2025, 10, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 10, 16, 0, 0, 0, 0, time.Local)

	query, args := buildFilterSQL(t, domain.BookingsFilter{From: &from, To: &to, IncludeCancelled: true})

	assert.Contains(t, query, "start_time >= $")
	assert.Contains(t, query, "start_time < $")
	assert.NotContains(t, query, "start_time <= $",
		"бронирование, начинающееся ровно на верхней границе, не должно попадать в выборку")
	assert.Equal(t, []interface{}{from, to}, args)
}

func TestApplyFilter_CancelledExcludedByDefault(t *testing.T) {
	query, _ := buildFilterSQL(t, domain.BookingsFilter{})
	assert.Contains(t, query, "cancelled = $")

	query, _ = buildFilterSQL(t, domain.BookingsFilter{IncludeCancelled: true})
	assert.NotContains(t, query, "cancelled")
}

func TestApplyFilter_StatusOverridesCancelledGuard(t *testing.T) {
	status := domain.StatusCancelled
	query, args := buildFilterSQL(t, domain.BookingsFilter{Status: &status})

	assert.Contains(t, query, "status = $")
	assert.NotContains(t, query, "cancelled = $")
	assert.Equal(t, []interface{}{status}, args)
}

func TestApplyFilter_UserSlotAndLimit(t *testing.T) {
	query, args := buildFilterSQL(t, domain.BookingsFilter{
		UserID: ptr.Ptr(int64(100)),
		SlotID: ptr.Ptr(int64(7)),
		Limit:  50,
	})

	assert.Contains(t, query, "user_id = $")
	assert.Contains(t, query, "slot_id = $")
	assert.Contains(t, query, "LIMIT 50")
	assert.Equal(t, []interface{}{int64(100), int64(7), false}, args)
}
