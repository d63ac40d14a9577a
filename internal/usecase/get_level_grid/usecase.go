package get_level_grid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parkhub/parkhub-booking/internal/domain"
	hierarchyRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/hierarchy"
)

// UseCase use case построения сетки занятости уровня
// Читающий слой: сетка никогда не пишет обратно в хранилище бронирований
type UseCase struct {
	bookingRepo    BookingRepository
	slotRepo       SlotRepository
	hierarchyRepo  HierarchyRepository
	pricingService PricingService
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	hierarchyRepo HierarchyRepository,
	pricingService PricingService,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		slotRepo:       slotRepo,
		hierarchyRepo:  hierarchyRepo,
		pricingService: pricingService,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute строит сетку занятости уровня на запрошенный момент
// с агрегатами, рекомендациями ближайших свободных мест и текущей ценой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetLevelGrid: level=%d, at=%v", req.LevelID, req.At)

	if req.LevelID <= 0 {
		uc.logger.Warn("GetLevelGrid: invalid level id=%d", req.LevelID)
		return nil, fmt.Errorf("%w: levelID must be positive", ErrInvalidInput)
	}

	at, err := uc.resolveAt(req)
	if err != nil {
		uc.logger.Warn("GetLevelGrid: failed to resolve at time: %v", err)
		return nil, err
	}

	level, err := uc.hierarchyRepo.GetLevelByID(ctx, req.LevelID)
	if err != nil {
		if errors.Is(err, hierarchyRepo.ErrLevelNotFound) {
			uc.logger.Warn("GetLevelGrid: level id=%d not found", req.LevelID)
			return nil, ErrLevelNotFound
		}
		uc.logger.Error("GetLevelGrid: failed to get level id=%d: %v", req.LevelID, err)
		return nil, fmt.Errorf("%w: failed to get level: %v", ErrInternal, err)
	}

	slots, err := uc.slotRepo.ListByLevel(ctx, req.LevelID)
	if err != nil {
		uc.logger.Error("GetLevelGrid: failed to list slots for level=%d: %v", req.LevelID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.ListActiveForLevelAt(ctx, req.LevelID, at)
	if err != nil {
		uc.logger.Error("GetLevelGrid: failed to list active bookings for level=%d: %v", req.LevelID, err)
		return nil, fmt.Errorf("%w: failed to list active bookings: %v", ErrInternal, err)
	}

	occupied := occupiedIndex(bookings)
	cells := buildCells(slots, occupied)
	stats := buildStats(cells)

	uc.logger.Info("GetLevelGrid: level=%d, %d/%d slots occupied at %s",
		req.LevelID, stats.OccupiedSlots, stats.TotalSlots, at)

	return &Response{
		LevelID:         level.ID,
		LevelName:       level.LevelName,
		Rows:            level.Rows,
		Columns:         level.Columns,
		At:              at,
		Slots:           cells,
		Stats:           stats,
		Recommendations: recommendFreeSlots(slots, occupied, domain.RecommendationLimit),
		Pricing:         uc.pricingService.Quote(stats.OccupancyRate, 1),
	}, nil
}

// resolveAt возвращает момент, на который считается занятость
func (uc *UseCase) resolveAt(req *Request) (time.Time, error) {
	if req.At == nil || *req.At == "" {
		return uc.timeProvider.Now(), nil
	}

	at, err := req.At.Parse()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidAtTime, err)
	}
	return at, nil
}
