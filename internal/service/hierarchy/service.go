package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"time"

	configurationRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/configuration"
	hierarchyRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/hierarchy"
	"github.com/parkhub/parkhub-booking/internal/service/hierarchy/models"
)

// Service сервис для просмотра иерархии локация-парковка-уровень
// Доступность агрегатов всегда вычисляется по активным бронированиям
// на момент запроса, данные только для чтения
type Service struct {
	hierarchyRepo HierarchyRepository
	slotRepo      SlotRepository
	bookingRepo   BookingRepository
	configRepo    ConfigurationRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса иерархии
func NewService(
	hierarchyRepo HierarchyRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	configRepo ConfigurationRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		hierarchyRepo: hierarchyRepo,
		slotRepo:      slotRepo,
		bookingRepo:   bookingRepo,
		configRepo:    configRepo,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// ListLocations возвращает все локации с агрегированной доступностью
func (s *Service) ListLocations(ctx context.Context) (*models.LocationListResponse, error) {
	s.logger.Info("ListLocations: fetching locations")

	locations, err := s.hierarchyRepo.ListLocations(ctx)
	if err != nil {
		s.logger.Error("ListLocations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLocations - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := &models.LocationListResponse{
		Locations: make([]models.LocationResponse, 0, len(locations)),
	}

	for _, location := range locations {
		availability, err := s.locationAvailability(ctx, location.ID, now)
		if err != nil {
			return nil, err
		}
		resp.Locations = append(resp.Locations, models.FromDomainLocation(location, availability))
	}

	s.logger.Info("ListLocations: successfully fetched %d locations", len(resp.Locations))
	return resp, nil
}

// ListLots возвращает парковки локации с агрегированной доступностью
// и именем шаблона разметки
func (s *Service) ListLots(ctx context.Context, locationID int64) (*models.LotListResponse, error) {
	s.logger.Info("ListLots: fetching lots for location=%d", locationID)

	if _, err := s.hierarchyRepo.GetLocationByID(ctx, locationID); err != nil {
		if errors.Is(err, hierarchyRepo.ErrLocationNotFound) {
			s.logger.Warn("ListLots: location id=%d not found", locationID)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("ListLots: repository error for location=%d: %v", locationID, err)
		return nil, fmt.Errorf("%w: ListLots - repository error: %v", ErrInternal, err)
	}

	lots, err := s.hierarchyRepo.ListLotsByLocation(ctx, locationID)
	if err != nil {
		s.logger.Error("ListLots: repository error for location=%d: %v", locationID, err)
		return nil, fmt.Errorf("%w: ListLots - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := &models.LotListResponse{
		LocationID: locationID,
		Lots:       make([]models.LotResponse, 0, len(lots)),
	}

	for _, lot := range lots {
		availability, err := s.lotAvailability(ctx, lot.ID, now)
		if err != nil {
			return nil, err
		}

		configName, err := s.configurationName(ctx, lot.ConfigurationID)
		if err != nil {
			return nil, err
		}

		resp.Lots = append(resp.Lots, models.FromDomainLot(lot, configName, availability))
	}

	s.logger.Info("ListLots: successfully fetched %d lots for location=%d", len(resp.Lots), locationID)
	return resp, nil
}

// ListLevels возвращает уровни парковки с агрегированной доступностью
func (s *Service) ListLevels(ctx context.Context, lotID int64) (*models.LevelListResponse, error) {
	s.logger.Info("ListLevels: fetching levels for lot=%d", lotID)

	if _, err := s.hierarchyRepo.GetLotByID(ctx, lotID); err != nil {
		if errors.Is(err, hierarchyRepo.ErrLotNotFound) {
			s.logger.Warn("ListLevels: lot id=%d not found", lotID)
			return nil, ErrLotNotFound
		}
		s.logger.Error("ListLevels: repository error for lot=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: ListLevels - repository error: %v", ErrInternal, err)
	}

	levels, err := s.hierarchyRepo.ListLevelsByLot(ctx, lotID)
	if err != nil {
		s.logger.Error("ListLevels: repository error for lot=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: ListLevels - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := &models.LevelListResponse{
		LotID:  lotID,
		Levels: make([]models.LevelResponse, 0, len(levels)),
	}

	for _, level := range levels {
		availability, err := s.levelAvailability(ctx, level.ID, now)
		if err != nil {
			return nil, err
		}
		resp.Levels = append(resp.Levels, models.FromDomainLevel(level, availability))
	}

	s.logger.Info("ListLevels: successfully fetched %d levels for lot=%d", len(resp.Levels), lotID)
	return resp, nil
}

// Вспомогательные методы

func (s *Service) locationAvailability(ctx context.Context, locationID int64, now time.Time) (models.AvailabilityStats, error) {
	total, err := s.slotRepo.CountByLocation(ctx, locationID)
	if err != nil {
		s.logger.Error("locationAvailability: failed to count slots for location=%d: %v", locationID, err)
		return models.AvailabilityStats{}, fmt.Errorf("%w: failed to count slots: %v", ErrInternal, err)
	}

	occupied, err := s.bookingRepo.CountActiveForLocationAt(ctx, locationID, now)
	if err != nil {
		s.logger.Error("locationAvailability: failed to count active bookings for location=%d: %v", locationID, err)
		return models.AvailabilityStats{}, fmt.Errorf("%w: failed to count active bookings: %v", ErrInternal, err)
	}

	return models.NewAvailabilityStats(total, occupied), nil
}

func (s *Service) levelAvailability(ctx context.Context, levelID int64, now time.Time) (models.AvailabilityStats, error) {
	total, err := s.slotRepo.CountByLevel(ctx, levelID)
	if err != nil {
		s.logger.Error("levelAvailability: failed to count slots for level=%d: %v", levelID, err)
		return models.AvailabilityStats{}, fmt.Errorf("%w: failed to count slots: %v", ErrInternal, err)
	}

	occupied, err := s.bookingRepo.CountActiveForLevelAt(ctx, levelID, now)
	if err != nil {
		s.logger.Error("levelAvailability: failed to count active bookings for level=%d: %v", levelID, err)
		return models.AvailabilityStats{}, fmt.Errorf("%w: failed to count active bookings: %v", ErrInternal, err)
	}

	return models.NewAvailabilityStats(total, occupied), nil
}

// lotAvailability суммирует доступность по всем уровням парковки
func (s *Service) lotAvailability(ctx context.Context, lotID int64, now time.Time) (models.AvailabilityStats, error) {
	levels, err := s.hierarchyRepo.ListLevelsByLot(ctx, lotID)
	if err != nil {
		s.logger.Error("lotAvailability: failed to list levels for lot=%d: %v", lotID, err)
		return models.AvailabilityStats{}, fmt.Errorf("%w: failed to list levels: %v", ErrInternal, err)
	}

	var total, occupied int
	for _, level := range levels {
		stats, err := s.levelAvailability(ctx, level.ID, now)
		if err != nil {
			return models.AvailabilityStats{}, err
		}
		total += stats.TotalSlots
		occupied += stats.OccupiedSlots
	}

	return models.NewAvailabilityStats(total, occupied), nil
}

// configurationName разыменовывает шаблон разметки парковки, если он задан
func (s *Service) configurationName(ctx context.Context, configurationID *int64) (string, error) {
	if configurationID == nil {
		return "", nil
	}

	configuration, err := s.configRepo.GetByID(ctx, *configurationID)
	if err != nil {
		if errors.Is(err, configurationRepo.ErrConfigurationNotFound) {
			// Висячая ссылка на шаблон не должна ломать листинг
			s.logger.Warn("configurationName: configuration id=%d not found", *configurationID)
			return "", nil
		}
		s.logger.Error("configurationName: failed to get configuration id=%d: %v", *configurationID, err)
		return "", fmt.Errorf("%w: failed to get configuration: %v", ErrInternal, err)
	}

	return configuration.Name, nil
}
