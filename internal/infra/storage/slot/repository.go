package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/parkhub/parkhub-booking/internal/domain"
	"github.com/parkhub/parkhub-booking/pkg/dbmetrics"
	"github.com/parkhub/parkhub-booking/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"level_id",
	"slot_number",
	"row_num",
	"col_num",
	"created_at",
}

// Repository репозиторий для работы с парковочными слотами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("parking_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlot(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// ListByLevel получает все слоты уровня, отсортированные для отрисовки сетки
func (r *Repository) ListByLevel(ctx context.Context, levelID int64) ([]*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("parking_slots").
		Where(squirrel.Eq{"level_id": levelID}).
		OrderBy("row_num ASC, col_num ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByLevel - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLevel - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// CountByLevel подсчитывает количество слотов уровня
func (r *Repository) CountByLevel(ctx context.Context, levelID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("parking_slots").
		Where(squirrel.Eq{"level_id": levelID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByLevel - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByLevel - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountByLocation подсчитывает количество слотов во всех лотах локации
func (r *Repository) CountByLocation(ctx context.Context, locationID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(s.id)").
		From("parking_slots s").
		Join("parking_levels l ON l.id = s.level_id").
		Join("parking_lots pl ON pl.id = l.lot_id").
		Where(squirrel.Eq{"pl.location_id": locationID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByLocation - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByLocation - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// scanSlot сканирует одну строку в слот
func (r *Repository) scanSlot(row *sql.Row, op string) (*domain.ParkingSlot, error) {
	var slot domain.ParkingSlot
	var createdAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.LevelID,
		&slot.SlotNumber,
		&slot.Row,
		&slot.Column,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, op, err)
	}

	slot.CreatedAt = createdAt.Time

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.ParkingSlot, error) {
	slots := make([]*domain.ParkingSlot, 0)

	for rows.Next() {
		var slot domain.ParkingSlot
		var createdAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.LevelID,
			&slot.SlotNumber,
			&slot.Row,
			&slot.Column,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
