package get_level_grid

import (
	"sort"
	"time"

	"github.com/parkhub/parkhub-booking/internal/domain"
)

// occupiedIndex строит отображение slotID -> конец текущего бронирования
// для слотов, занятых в запрошенный момент
func occupiedIndex(bookings []*domain.Booking) map[int64]time.Time {
	index := make(map[int64]time.Time, len(bookings))
	for _, b := range bookings {
		until, ok := index[b.SlotID]
		if !ok || b.EndTime.After(until) {
			index[b.SlotID] = b.EndTime
		}
	}
	return index
}

// buildCells собирает ячейки сетки из слотов уровня и индекса занятости
// Слоты приходят из репозитория уже отсортированными по ряду и месту
func buildCells(slots []*domain.ParkingSlot, occupied map[int64]time.Time) []SlotCell {
	cells := make([]SlotCell, 0, len(slots))
	for _, slot := range slots {
		cell := SlotCell{
			SlotID:     slot.ID,
			SlotNumber: slot.SlotNumber,
			Row:        slot.Row,
			Column:     slot.Column,
		}
		if until, ok := occupied[slot.ID]; ok {
			cell.Occupied = true
			u := until
			cell.OccupiedUntil = &u
		}
		cells = append(cells, cell)
	}
	return cells
}

// buildStats считает агрегаты уровня по ячейкам
func buildStats(cells []SlotCell) Stats {
	stats := Stats{TotalSlots: len(cells)}
	for _, cell := range cells {
		if cell.Occupied {
			stats.OccupiedSlots++
		}
	}
	stats.AvailableSlots = stats.TotalSlots - stats.OccupiedSlots
	if stats.TotalSlots > 0 {
		stats.OccupancyRate = float64(stats.OccupiedSlots) / float64(stats.TotalSlots)
	}
	return stats
}

// recommendFreeSlots выбирает свободные слоты, ближайшие к въезду
// Ряд 1, место 1 считается ближайшим; при равной дистанции ряд важнее
func recommendFreeSlots(slots []*domain.ParkingSlot, occupied map[int64]time.Time, limit int) []Recommendation {
	free := make([]*domain.ParkingSlot, 0, len(slots))
	for _, slot := range slots {
		if _, ok := occupied[slot.ID]; !ok {
			free = append(free, slot)
		}
	}

	sort.Slice(free, func(i, j int) bool {
		di, dj := free[i].Distance(), free[j].Distance()
		if di != dj {
			return di < dj
		}
		if free[i].Row != free[j].Row {
			return free[i].Row < free[j].Row
		}
		return free[i].Column < free[j].Column
	})

	if len(free) > limit {
		free = free[:limit]
	}

	recommendations := make([]Recommendation, 0, len(free))
	for _, slot := range free {
		recommendations = append(recommendations, Recommendation{
			SlotID:     slot.ID,
			SlotNumber: slot.SlotNumber,
			Row:        slot.Row,
			Column:     slot.Column,
			Distance:   slot.Distance(),
		})
	}
	return recommendations
}
