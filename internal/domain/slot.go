package domain

import "time"

// ParkingSlot represents a single parkable unit within a level.
// A slot has no stored occupancy flag: whether it is occupied at a point
// in time is always derived from the set of non-cancelled bookings
// overlapping that instant.
type ParkingSlot struct {
	ID         int64
	LevelID    *int64 // nil for legacy slots outside the hierarchy
	SlotNumber string // e.g. "A-01"
	Row        int
	Column     int
	CreatedAt  time.Time
}

// Distance returns the walking-distance metric from the entrance.
// Row 1, column 1 is the closest slot. Used for ranking recommendations.
func (s *ParkingSlot) Distance() int {
	return s.Row + s.Column
}
