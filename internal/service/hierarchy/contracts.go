package hierarchy

import (
	"context"
	"time"

	"github.com/parkhub/parkhub-booking/internal/domain"
)

// HierarchyRepository интерфейс репозитория иерархии локация-парковка-уровень
type HierarchyRepository interface {
	ListLocations(ctx context.Context) ([]*domain.Location, error)
	GetLocationByID(ctx context.Context, id int64) (*domain.Location, error)
	ListLotsByLocation(ctx context.Context, locationID int64) ([]*domain.ParkingLot, error)
	GetLotByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
	ListLevelsByLot(ctx context.Context, lotID int64) ([]*domain.ParkingLevel, error)
}

// SlotRepository интерфейс репозитория парковочных слотов
type SlotRepository interface {
	CountByLevel(ctx context.Context, levelID int64) (int, error)
	CountByLocation(ctx context.Context, locationID int64) (int, error)
}

// BookingRepository интерфейс репозитория бронирований
// Занятость всегда вычисляется по пересечению интервалов, флаг занятости не хранится
type BookingRepository interface {
	CountActiveForLocationAt(ctx context.Context, locationID int64, at time.Time) (int, error)
	CountActiveForLevelAt(ctx context.Context, levelID int64, at time.Time) (int, error)
}

// ConfigurationRepository интерфейс репозитория шаблонов разметки
type ConfigurationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingConfiguration, error)
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
