package models

import "github.com/parkhub/parkhub-booking/internal/domain"

// AvailabilityStats агрегированная доступность, вычисленная по бронированиям
type AvailabilityStats struct {
	TotalSlots     int     `json:"totalSlots"`
	OccupiedSlots  int     `json:"occupiedSlots"`
	AvailableSlots int     `json:"availableSlots"`
	OccupancyRate  float64 `json:"occupancyRate"` // 0.0-1.0
}

// NewAvailabilityStats собирает агрегат доступности из общего числа слотов
// и числа занятых на данный момент
func NewAvailabilityStats(total, occupied int) AvailabilityStats {
	stats := AvailabilityStats{
		TotalSlots:     total,
		OccupiedSlots:  occupied,
		AvailableSlots: total - occupied,
	}
	if total > 0 {
		stats.OccupancyRate = float64(occupied) / float64(total)
	}
	return stats
}

// LocationResponse локация с агрегированной доступностью
type LocationResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`

	Availability AvailabilityStats `json:"availability"`
}

// LocationListResponse ответ со списком локаций
type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
}

// LotResponse парковка с агрегированной доступностью
type LotResponse struct {
	ID            int64  `json:"id"`
	LocationID    int64  `json:"locationId"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	TotalLevels   int    `json:"totalLevels"`
	Configuration string `json:"configuration,omitempty"` // имя шаблона разметки

	Availability AvailabilityStats `json:"availability"`
}

// LotListResponse ответ со списком парковок локации
type LotListResponse struct {
	LocationID int64         `json:"locationId"`
	Lots       []LotResponse `json:"lots"`
}

// LevelResponse уровень парковки с агрегированной доступностью
type LevelResponse struct {
	ID         int64  `json:"id"`
	LotID      int64  `json:"lotId"`
	LevelName  string `json:"levelName"`
	LevelOrder int    `json:"levelOrder"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	Capacity   int    `json:"capacity"`

	Availability AvailabilityStats `json:"availability"`
}

// LevelListResponse ответ со списком уровней парковки
type LevelListResponse struct {
	LotID  int64           `json:"lotId"`
	Levels []LevelResponse `json:"levels"`
}

// FromDomainLocation конвертирует domain модель локации в DTO
func FromDomainLocation(l *domain.Location, availability AvailabilityStats) LocationResponse {
	return LocationResponse{
		ID:           l.ID,
		Name:         l.Name,
		Address:      l.Address,
		Description:  l.Description,
		Icon:         l.Icon,
		Availability: availability,
	}
}

// FromDomainLot конвертирует domain модель парковки в DTO
func FromDomainLot(lot *domain.ParkingLot, configName string, availability AvailabilityStats) LotResponse {
	return LotResponse{
		ID:            lot.ID,
		LocationID:    lot.LocationID,
		Name:          lot.Name,
		Description:   lot.Description,
		TotalLevels:   lot.TotalLevels,
		Configuration: configName,
		Availability:  availability,
	}
}

// FromDomainLevel конвертирует domain модель уровня в DTO
func FromDomainLevel(level *domain.ParkingLevel, availability AvailabilityStats) LevelResponse {
	return LevelResponse{
		ID:           level.ID,
		LotID:        level.LotID,
		LevelName:    level.LevelName,
		LevelOrder:   level.LevelOrder,
		Rows:         level.Rows,
		Columns:      level.Columns,
		Capacity:     level.Capacity,
		Availability: availability,
	}
}
