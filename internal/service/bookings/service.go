package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkhub/parkhub-booking/internal/domain"
	bookingRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/booking"
	userRepo "github.com/parkhub/parkhub-booking/internal/infra/storage/user"
	"github.com/parkhub/parkhub-booking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	userRepo    UserRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование,
// администратор может видеть любое
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actorID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkOwnerOrAdmin(ctx, booking.UserID, actorID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actorID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Пользователь видит только свою историю, администратор - любую
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, actor=%d, status=%v", req.UserID, req.ActorID, req.Status)

	if err := s.checkOwnerOrAdmin(ctx, req.UserID, req.ActorID); err != nil {
		s.logger.Warn("GetUserBookings: access denied for actor=%d to user=%d history", req.ActorID, req.UserID)
		return nil, err
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetAllBookings получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по пользователю, слоту, периоду, статусу
// и включению отмененных бронирований. Доступно только администраторам
func (s *Service) GetAllBookings(ctx context.Context, req *models.GetAllBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetAllBookings: fetching bookings, actor=%d", req.ActorID)
	if req.UserID != nil {
		logMsg += fmt.Sprintf(", user=%d", *req.UserID)
	}
	if req.SlotID != nil {
		logMsg += fmt.Sprintf(", slot=%d", *req.SlotID)
	}
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if err := s.checkAdmin(ctx, req.ActorID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAllBookings: invalid filter from actor=%d: %v", req.ActorID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAllBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование, администратор - любое.
// Повторная отмена уже отмененного бронирования не является ошибкой
func (s *Service) Cancel(ctx context.Context, bookingID int64, actorID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, actorID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwnerOrAdmin(ctx, booking.UserID, actorID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", actorID, bookingID)
		return err
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrAlreadyCancelled) {
			// Отмена идемпотентна: слот уже свободен, состояние не меняется
			s.logger.Info("Cancel: booking id=%d already cancelled, treating as success", bookingID)
			return nil
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// checkOwnerOrAdmin проверяет, что actor является владельцем ресурса
// или администратором
func (s *Service) checkOwnerOrAdmin(ctx context.Context, ownerID int64, actorID int64) error {
	if ownerID == actorID {
		return nil
	}

	return s.checkAdmin(ctx, actorID)
}

// checkAdmin проверяет, что пользователь является администратором
func (s *Service) checkAdmin(ctx context.Context, actorID int64) error {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("checkAdmin: user id=%d not found", actorID)
			return ErrAccessDenied
		}
		s.logger.Error("checkAdmin: failed to get user id=%d: %v", actorID, err)
		return fmt.Errorf("%w: checkAdmin - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsAdmin {
		s.logger.Warn("checkAdmin: user=%d is not an administrator", actorID)
		return ErrAccessDenied
	}

	return nil
}
