package get_level_grid

import (
	"time"

	"github.com/parkhub/parkhub-booking/internal/service/pricing"
	"github.com/parkhub/parkhub-booking/pkg/types"
)

// Request модель запроса сетки уровня
type Request struct {
	LevelID int64                 // ID уровня
	At      *types.DateTimeString // Момент, на который считается занятость (по умолчанию сейчас)
}

// SlotCell ячейка сетки уровня
// Занятость всегда производная от бронирований, отдельного флага нет
type SlotCell struct {
	SlotID     int64  `json:"slotId"`
	SlotNumber string `json:"slotNumber"`
	Row        int    `json:"row"`
	Column     int    `json:"column"`
	Occupied   bool   `json:"occupied"`

	// Для занятых слотов - конец текущего бронирования (исключительно)
	OccupiedUntil *time.Time `json:"occupiedUntil,omitempty"`
}

// Stats агрегированная статистика уровня на запрошенный момент
type Stats struct {
	TotalSlots     int     `json:"totalSlots"`
	OccupiedSlots  int     `json:"occupiedSlots"`
	AvailableSlots int     `json:"availableSlots"`
	OccupancyRate  float64 `json:"occupancyRate"` // 0.0-1.0
}

// Recommendation свободный слот, ранжированный по близости к въезду
type Recommendation struct {
	SlotID     int64  `json:"slotId"`
	SlotNumber string `json:"slotNumber"`
	Row        int    `json:"row"`
	Column     int    `json:"column"`
	Distance   int    `json:"distance"`
}

// Response модель ответа с сеткой уровня
type Response struct {
	LevelID   int64     `json:"levelId"`
	LevelName string    `json:"levelName"`
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	At        time.Time `json:"at"`

	Slots           []SlotCell       `json:"slots"`
	Stats           Stats            `json:"stats"`
	Recommendations []Recommendation `json:"recommendations"`
	Pricing         *pricing.Quote   `json:"pricing"`
}
