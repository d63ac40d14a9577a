package get_level_grid

import (
	"context"
	"time"

	"github.com/parkhub/parkhub-booking/internal/domain"
	"github.com/parkhub/parkhub-booking/internal/service/pricing"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListActiveForLevelAt возвращает бронирования, занимающие слоты уровня
	// в момент at
	ListActiveForLevelAt(ctx context.Context, levelID int64, at time.Time) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория парковочных слотов
type SlotRepository interface {
	ListByLevel(ctx context.Context, levelID int64) ([]*domain.ParkingSlot, error)
}

// HierarchyRepository интерфейс репозитория иерархии
type HierarchyRepository interface {
	GetLevelByID(ctx context.Context, id int64) (*domain.ParkingLevel, error)
}

// PricingService интерфейс сервиса динамического ценообразования
type PricingService interface {
	Quote(occupancyRate, hours float64) *pricing.Quote
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
