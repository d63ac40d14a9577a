package history

import (
	"context"
	"fmt"

	"github.com/parkhub/parkhub-booking/internal/domain"
	"github.com/parkhub/parkhub-booking/pkg/dbmetrics"
	"github.com/parkhub/parkhub-booking/pkg/psqlbuilder"
)

// Repository репозиторий для журнала событий бронирования
// Журнал append-only, читается офлайн-аналитикой; API чтения не предоставляем
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала событий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет событие создания бронирования в журнал
// Вызывается в той же транзакции, что и создание бронирования
func (r *Repository) Append(ctx context.Context, event *domain.BookingEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_history").
		Columns(
			"event_time",
			"slot_number",
			"user_id",
			"occupied",
			"cancelled",
			"duration_hours",
			"lead_time_hours",
			"hour",
			"day_of_week",
		).
		Values(
			event.Timestamp,
			event.SlotNumber,
			event.UserID,
			event.Occupied,
			event.Cancelled,
			event.DurationHours,
			event.LeadTimeHours,
			event.Hour,
			event.DayOfWeek,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	_, err = executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
