package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) time.Time {
	return time.Date(2025, 10, 15, hour, min, 0, 0, time.UTC)
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{name: "identical intervals", aStart: ts(10, 0), aEnd: ts(12, 0), bStart: ts(10, 0), bEnd: ts(12, 0), want: true},
		{name: "partial overlap right", aStart: ts(10, 0), aEnd: ts(12, 0), bStart: ts(11, 0), bEnd: ts(13, 0), want: true},
		{name: "partial overlap left", aStart: ts(10, 0), aEnd: ts(12, 0), bStart: ts(9, 0), bEnd: ts(11, 0), want: true},
		{name: "contained", aStart: ts(10, 0), aEnd: ts(12, 0), bStart: ts(10, 30), bEnd: ts(11, 30), want: true},
		{name: "containing", aStart: ts(10, 30), aEnd: ts(11, 30), bStart: ts(10, 0), bEnd: ts(12, 0), want: true},
		{name: "back-to-back after", aStart: ts(10, 0), aEnd: ts(12, 0), bStart: ts(12, 0), bEnd: ts(14, 0), want: false},
		{name: "back-to-back before", aStart: ts(10, 0), aEnd: ts(12, 0), bStart: ts(9, 0), bEnd: ts(10, 0), want: false},
		{name: "disjoint", aStart: ts(10, 0), aEnd: ts(12, 0), bStart: ts(13, 0), bEnd: ts(14, 0), want: false},
		{name: "one minute overlap", aStart: ts(10, 0), aEnd: ts(12, 1), bStart: ts(12, 0), bEnd: ts(14, 0), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric
			assert.Equal(t, tt.want, IntervalsOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestBooking_Overlaps_CancelledExcluded(t *testing.T) {
	b := &Booking{
		StartTime: ts(10, 0),
		EndTime:   ts(12, 0),
		Status:    StatusActive,
	}

	assert.True(t, b.Overlaps(ts(11, 0), ts(13, 0)))

	b.Cancelled = true
	b.Status = StatusCancelled
	assert.False(t, b.Overlaps(ts(11, 0), ts(13, 0)))
}

func TestBooking_IsActiveAt(t *testing.T) {
	b := &Booking{
		StartTime: ts(10, 0),
		EndTime:   ts(12, 0),
		Status:    StatusActive,
	}

	assert.False(t, b.IsActiveAt(ts(9, 59)))
	assert.True(t, b.IsActiveAt(ts(10, 0)), "start bound is inclusive")
	assert.True(t, b.IsActiveAt(ts(11, 59)))
	assert.False(t, b.IsActiveAt(ts(12, 0)), "end bound is exclusive")

	cancelled := &Booking{
		StartTime: ts(10, 0),
		EndTime:   ts(12, 0),
		Status:    StatusCancelled,
		Cancelled: true,
	}
	assert.False(t, cancelled.IsActiveAt(ts(11, 0)))
}

func TestBooking_IsCancelled_FieldConsistency(t *testing.T) {
	// Either field alone marks the booking cancelled; the storage layer
	// updates both atomically, but a reader must not trust one over the other.
	assert.True(t, (&Booking{Cancelled: true}).IsCancelled())
	assert.True(t, (&Booking{Status: StatusCancelled}).IsCancelled())
	assert.False(t, (&Booking{Status: StatusActive}).IsCancelled())
}
