package create_booking

import (
	"time"

	"github.com/parkhub/parkhub-booking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64                // ID пользователя
	SlotID        int64                // ID парковочного слота
	VehicleNumber string               // Госномер автомобиля
	StartTime     types.DateTimeString // Начало интервала (например, "2025-10-15T10:00")
	DurationHours int                  // Длительность в часах
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64     // ID созданного бронирования
	UserID        int64     // ID пользователя
	SlotID        int64     // ID слота
	SlotNumber    string    // Номер слота (например, "A-01")
	VehicleNumber string    // Госномер
	StartTime     time.Time // Начало интервала
	EndTime       time.Time // Конец интервала (исключительно)
	DurationHours float64   // Длительность в часах
	Status        string    // Статус бронирования

	// Снимок цены, зафиксированный при создании
	HourlyRate float64 // Ставка за час с учетом множителя
	TotalPrice float64 // Итоговая стоимость
	Multiplier float64 // Ценовой множитель на момент создания
	PriceTier  string  // Метка ценового уровня

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
