package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parkhub/parkhub-booking/internal/domain"
	slotRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/slot"
	userRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/user"
	"github.com/parkhub/parkhub-booking/pkg/txmanager"
)

// UseCase use case для создания бронирования
// Единственный путь, которым в системе появляется новое бронирование
type UseCase struct {
	bookingRepo    BookingRepository
	slotRepo       SlotRepository
	userRepo       UserRepository
	historyRepo    HistoryRepository
	pricingService PricingService
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	userRepo UserRepository,
	historyRepo HistoryRepository,
	pricingService PricingService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		slotRepo:       slotRepo,
		userRepo:       userRepo,
		historyRepo:    historyRepo,
		pricingService: pricingService,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции: из двух конкурентных пересекающихся запросов на один слот
// успешным будет ровно один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, slot=%d, start=%s, duration=%dh",
		req.UserID, req.SlotID, req.StartTime, req.DurationHours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Разбираем интервал
	start, err := req.StartTime.Parse()
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to parse start time %q: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStartTime, err)
	}
	end := start.Add(time.Duration(req.DurationHours) * time.Hour)

	// 3. Бронирование в прошлом запрещено на уровне политики API
	now := uc.timeProvider.Now()
	if err := validateStartNotInPast(start, now); err != nil {
		uc.logger.Warn("CreateBooking: start %s is in the past (now %s)", start, now)
		return nil, err
	}

	// 4. Получаем слот
	slot, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	// 5. Проверяем существование пользователя
	if _, err := uc.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 6. Считаем загруженность уровня на запрошенное начало и фиксируем цену.
	// Снимок цены больше не пересчитывается, даже если загруженность изменится
	occupancyRate, err := uc.levelOccupancyRate(ctx, slot, start)
	if err != nil {
		return nil, err
	}
	quote := uc.pricingService.Quote(occupancyRate, float64(req.DurationHours))

	uc.logger.Info("CreateBooking: slot=%d occupancy=%.2f multiplier=%.2f rate=%.2f",
		req.SlotID, occupancyRate, quote.Multiplier, quote.HourlyRate)

	// Переменная для хранения результата
	var result *domain.Booking

	// 7. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Активные бронирования слота на интервал, с блокировкой FOR UPDATE
		overlapping, err := uc.bookingRepo.GetOverlapping(txCtx, req.SlotID, start, end)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: slot=%d has %d overlapping bookings for [%s, %s)",
				req.SlotID, len(overlapping), start, end)
			return ErrSlotNotAvailable
		}

		// 7.2. Создаем бронирование со снимком цены
		booking := &domain.Booking{
			UserID:        req.UserID,
			SlotID:        req.SlotID,
			VehicleNumber: req.VehicleNumber,
			StartTime:     start,
			EndTime:       end,
			DurationHours: float64(req.DurationHours),
			HourlyRate:    quote.HourlyRate,
			TotalPrice:    quote.TotalPrice,
			Status:        domain.StatusActive,
			Cancelled:     false,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 7.3. Увеличиваем счетчик бронирований пользователя
		if err := uc.userRepo.IncrementBookingCount(txCtx, req.UserID); err != nil {
			uc.logger.Error("CreateBooking: failed to increment booking count for user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to increment booking count: %v", ErrInternal, err)
		}

		// 7.4. Пишем событие в журнал для внешних моделей
		event := domain.NewBookingEvent(created, slot.SlotNumber, now)
		if err := uc.historyRepo.Append(txCtx, event); err != nil {
			uc.logger.Error("CreateBooking: failed to append history event: %v", err)
			return fmt.Errorf("%w: failed to append history event: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигрыш конкурентной гонки за слот: транзакция-победитель уже
		// зафиксировала пересекающееся бронирование
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization conflict for slot=%d [%s, %s): %v",
				req.SlotID, start, end, err)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:            result.ID,
		UserID:        result.UserID,
		SlotID:        result.SlotID,
		SlotNumber:    slot.SlotNumber,
		VehicleNumber: result.VehicleNumber,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		DurationHours: result.DurationHours,
		Status:        string(result.Status),
		HourlyRate:    result.HourlyRate,
		TotalPrice:    result.TotalPrice,
		Multiplier:    quote.Multiplier,
		PriceTier:     quote.Tier,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// levelOccupancyRate вычисляет долю занятых слотов уровня на момент at
// Для слотов вне иерархии уровней загруженность считается нулевой
func (uc *UseCase) levelOccupancyRate(ctx context.Context, slot *domain.ParkingSlot, at time.Time) (float64, error) {
	if slot.LevelID == nil {
		return 0, nil
	}

	total, err := uc.slotRepo.CountByLevel(ctx, *slot.LevelID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to count slots for level=%d: %v", *slot.LevelID, err)
		return 0, fmt.Errorf("%w: failed to count slots: %v", ErrInternal, err)
	}
	if total == 0 {
		return 0, nil
	}

	occupied, err := uc.bookingRepo.CountActiveForLevelAt(ctx, *slot.LevelID, at)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to count active bookings for level=%d: %v", *slot.LevelID, err)
		return 0, fmt.Errorf("%w: failed to count active bookings: %v", ErrInternal, err)
	}

	return float64(occupied) / float64(total), nil
}
