package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/parkhub/parkhub-booking/internal/domain"
	"github.com/parkhub/parkhub-booking/pkg/dbmetrics"
	"github.com/parkhub/parkhub-booking/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"slot_id",
	"vehicle_number",
	"start_time",
	"end_time",
	"duration_hours",
	"hourly_rate",
	"total_price",
	"status",
	"cancelled",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Это единственный путь создания бронирования; проверка доступности слота
// выполняется usecase'ом в той же сериализуемой транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"slot_id",
			"vehicle_number",
			"start_time",
			"end_time",
			"duration_hours",
			"hourly_rate",
			"total_price",
			"status",
			"cancelled",
		).
		Values(
			booking.UserID,
			booking.SlotID,
			booking.VehicleNumber,
			booking.StartTime,
			booking.EndTime,
			booking.DurationHours,
			booking.HourlyRate,
			booking.TotalPrice,
			booking.Status,
			booking.Cancelled,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetOverlapping получает все неотмененные бронирования слота, пересекающиеся
// с полуоткрытым интервалом [start, end). Это единственный источник истины
// для проверки конфликтов: пересечение есть только при start_time < end И
// end_time > start, граничащие интервалы не конфликтуют.
//
// Внутри транзакции добавляет FOR UPDATE — строки блокируются до конца
// транзакции, что сериализует конкурирующие попытки забронировать один слот.
func (r *Repository) GetOverlapping(ctx context.Context, slotID int64, start, end time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Eq{"cancelled": false}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListActiveForLevelAt получает все неотмененные бронирования, занимающие
// слоты уровня в момент at. Используется для отрисовки сетки занятости;
// читается без блокировок (снимок для отображения, не для принятия решений).
func (r *Repository) ListActiveForLevelAt(ctx context.Context, levelID int64, at time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cols := make([]string, len(bookingColumns))
	for i, c := range bookingColumns {
		cols[i] = "b." + c
	}

	query, args, err := psqlbuilder.Select(cols...).
		From("bookings b").
		Join("parking_slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{"s.level_id": levelID}).
		Where(squirrel.Eq{"b.cancelled": false}).
		Where(squirrel.LtOrEq{"b.start_time": at}).
		Where(squirrel.Gt{"b.end_time": at}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForLevelAt - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForLevelAt - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountActiveForLocationAt подсчитывает занятые слоты локации в момент at
func (r *Repository) CountActiveForLocationAt(ctx context.Context, locationID int64, at time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT b.slot_id)").
		From("bookings b").
		Join("parking_slots s ON s.id = b.slot_id").
		Join("parking_levels l ON l.id = s.level_id").
		Join("parking_lots pl ON pl.id = l.lot_id").
		Where(squirrel.Eq{"pl.location_id": locationID}).
		Where(squirrel.Eq{"b.cancelled": false}).
		Where(squirrel.LtOrEq{"b.start_time": at}).
		Where(squirrel.Gt{"b.end_time": at}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveForLocationAt - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveForLocationAt - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveForLevelAt подсчитывает занятые слоты уровня в момент at
func (r *Repository) CountActiveForLevelAt(ctx context.Context, levelID int64, at time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT b.slot_id)").
		From("bookings b").
		Join("parking_slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{"s.level_id": levelID}).
		Where(squirrel.Eq{"b.cancelled": false}).
		Where(squirrel.LtOrEq{"b.start_time": at}).
		Where(squirrel.Gt{"b.end_time": at}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveForLevelAt - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveForLevelAt - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetWithFilter получает бронирования с гибкой фильтрацией (административная выборка)
// Поддерживает фильтрацию по пользователю, слоту, статусу и периоду start_time
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(
		psqlbuilder.Select(bookingColumns...).
			From("bookings").
			OrderBy("created_at DESC"),
		filter,
	)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// applyFilter накладывает условия административной выборки на запрос.
// Период по start_time полуоткрытый: From включительно, To исключительно
func applyFilter(b squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.UserID != nil {
		b = b.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.SlotID != nil {
		b = b.Where(squirrel.Eq{"slot_id": *filter.SlotID})
	}
	if filter.From != nil {
		b = b.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		b = b.Where(squirrel.Lt{"start_time": *filter.To})
	}
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		b = b.Where(squirrel.Eq{"cancelled": false})
	}
	if filter.Limit > 0 {
		b = b.Limit(filter.Limit)
	}
	return b
}

// Cancel отменяет бронирование: cancelled и status обновляются одним UPDATE,
// оба поля меняются атомарно или не меняются вовсе. Guard "cancelled = false"
// делает отмену терминальной и идемпотентной: повторная отмена затрагивает
// 0 строк и возвращает ErrAlreadyCancelled, который вызывающий слой
// трактует как успех.
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("cancelled", true).
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"cancelled": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyCancelled
	}

	return nil
}

// scanBooking сканирует одну строку в бронирование
func (r *Repository) scanBooking(row *sql.Row, op string) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SlotID,
		&booking.VehicleNumber,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationHours,
		&booking.HourlyRate,
		&booking.TotalPrice,
		&booking.Status,
		&booking.Cancelled,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.SlotID,
			&booking.VehicleNumber,
			&booking.StartTime,
			&booking.EndTime,
			&booking.DurationHours,
			&booking.HourlyRate,
			&booking.TotalPrice,
			&booking.Status,
			&booking.Cancelled,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
