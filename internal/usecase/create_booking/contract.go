package create_booking

import (
	"context"
	"time"

	"github.com/parkhub/parkhub-booking/internal/domain"
	"github.com/parkhub/parkhub-booking/internal/service/pricing"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetOverlapping возвращает активные бронирования слота, пересекающие
	// полуоткрытый интервал [start, end)
	GetOverlapping(ctx context.Context, slotID int64, start, end time.Time) ([]*domain.Booking, error)
	CountActiveForLevelAt(ctx context.Context, levelID int64, at time.Time) (int, error)
}

// SlotRepository интерфейс репозитория парковочных слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingSlot, error)
	CountByLevel(ctx context.Context, levelID int64) (int, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	IncrementBookingCount(ctx context.Context, id int64) error
}

// HistoryRepository интерфейс журнала событий для обучения внешних моделей
type HistoryRepository interface {
	Append(ctx context.Context, event *domain.BookingEvent) error
}

// PricingService интерфейс сервиса динамического ценообразования
type PricingService interface {
	Quote(occupancyRate, hours float64) *pricing.Quote
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
