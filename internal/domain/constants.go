package domain

// Business validation constants
const (
	MinDurationHours       = 1
	MaxDurationHours       = 24
	MaxVehicleNumberLength = 20
)

// Default pricing values, overridable via config
const (
	DefaultBaseHourlyRate      = 50.0
	DefaultMinMultiplier       = 1.0
	DefaultMaxMultiplier       = 2.0
	DefaultHighDemandThreshold = 0.8 // 80% occupancy
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// RecommendationLimit количество слотов в подборке ближайших свободных мест
const RecommendationLimit = 5
