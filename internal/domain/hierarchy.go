package domain

import "time"

// Location represents a geographic parking location (mall, airport, hospital).
// Ownership of the hierarchy is unidirectional: a location owns its lots by id,
// a lot owns its levels, a level owns its slots. No back-pointers.
type Location struct {
	ID          int64
	Name        string
	Address     string
	Description string
	Icon        string
	CreatedAt   time.Time
}

// ParkingLot represents a parking lot within a location
type ParkingLot struct {
	ID              int64
	LocationID      int64
	ConfigurationID *int64 // nil = default layout
	Name            string
	Description     string
	TotalLevels     int
	CreatedAt       time.Time
}

// ParkingLevel represents a level within a parking lot ("A", "B", ...)
type ParkingLevel struct {
	ID         int64
	LotID      int64
	LevelName  string
	LevelOrder int
	Rows       int
	Columns    int
	Capacity   int
	CreatedAt  time.Time
}

// ParkingConfiguration is a grid layout template shared by parking lots
// (e.g. "Compact", "Standard", "Large")
type ParkingConfiguration struct {
	ID              int64
	Name            string
	Description     string
	NumLevels       int
	RowsPerLevel    int
	ColumnsPerLevel int
	CreatedAt       time.Time
}

// SlotsPerLevel returns the number of slots a single level holds
func (c *ParkingConfiguration) SlotsPerLevel() int {
	return c.RowsPerLevel * c.ColumnsPerLevel
}

// TotalCapacity returns the total number of slots across all levels
func (c *ParkingConfiguration) TotalCapacity() int {
	return c.NumLevels * c.SlotsPerLevel()
}
