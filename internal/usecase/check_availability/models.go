package check_availability

import (
	"time"

	"github.com/parkhub/parkhub-booking/pkg/types"
)

// Request модель запроса на проверку доступности слота
type Request struct {
	SlotID int64                // ID парковочного слота
	Start  types.DateTimeString // Начало интервала
	End    types.DateTimeString // Конец интервала (исключительно)
}

// Response модель ответа проверки доступности
type Response struct {
	SlotID     int64     `json:"slotId"`
	SlotNumber string    `json:"slotNumber"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Available  bool      `json:"available"`

	// Число активных бронирований, пересекающих интервал
	Conflicts int `json:"conflicts"`
}
