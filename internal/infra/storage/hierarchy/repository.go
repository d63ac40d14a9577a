package hierarchy

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

// Repository репозиторий иерархии локация -> паркинг -> уровень
// Владение однонаправленное: родитель владеет детьми по id, обратных
// указателей нет — движку бронирования иерархия не нужна
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория иерархии
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListLocations получает все локации
func (r *Repository) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"address",
		"description",
		"icon",
		"created_at",
	).
		From("locations").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		var loc domain.Location
		var createdAt sql.NullTime

		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Address, &loc.Description, &loc.Icon, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListLocations - scan row: %v", ErrScanRow, err)
		}

		loc.CreatedAt = createdAt.Time
		locations = append(locations, &loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLocations - rows error: %v", ErrScanRow, err)
	}

	return locations, nil
}

// GetLocationByID получает локацию по ID
func (r *Repository) GetLocationByID(ctx context.Context, id int64) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"address",
		"description",
		"icon",
		"created_at",
	).
		From("locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLocationByID - build select query: %v", ErrBuildQuery, err)
	}

	var loc domain.Location
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&loc.ID, &loc.Name, &loc.Address, &loc.Description, &loc.Icon, &createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLocationByID - scan location: %v", ErrScanRow, err)
	}

	loc.CreatedAt = createdAt.Time

	return &loc, nil
}

// ListLotsByLocation получает все паркинги локации
func (r *Repository) ListLotsByLocation(ctx context.Context, locationID int64) ([]*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"location_id",
		"configuration_id",
		"name",
		"description",
		"total_levels",
		"created_at",
	).
		From("parking_lots").
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListLotsByLocation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLotsByLocation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lots := make([]*domain.ParkingLot, 0)
	for rows.Next() {
		var lot domain.ParkingLot
		var createdAt sql.NullTime

		if err := rows.Scan(&lot.ID, &lot.LocationID, &lot.ConfigurationID, &lot.Name,
			&lot.Description, &lot.TotalLevels, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListLotsByLocation - scan row: %v", ErrScanRow, err)
		}

		lot.CreatedAt = createdAt.Time
		lots = append(lots, &lot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLotsByLocation - rows error: %v", ErrScanRow, err)
	}

	return lots, nil
}

// GetLotByID получает паркинг по ID
func (r *Repository) GetLotByID(ctx context.Context, id int64) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"location_id",
		"configuration_id",
		"name",
		"description",
		"total_levels",
		"created_at",
	).
		From("parking_lots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLotByID - build select query: %v", ErrBuildQuery, err)
	}

	var lot domain.ParkingLot
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&lot.ID, &lot.LocationID, &lot.ConfigurationID, &lot.Name,
		&lot.Description, &lot.TotalLevels, &createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLotByID - scan lot: %v", ErrScanRow, err)
	}

	lot.CreatedAt = createdAt.Time

	return &lot, nil
}

// ListLevelsByLot получает уровни паркинга в порядке level_order
func (r *Repository) ListLevelsByLot(ctx context.Context, lotID int64) ([]*domain.ParkingLevel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"lot_id",
		"level_name",
		"level_order",
		"rows_count",
		"columns_count",
		"capacity",
		"created_at",
	).
		From("parking_levels").
		Where(squirrel.Eq{"lot_id": lotID}).
		OrderBy("level_order ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListLevelsByLot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLevelsByLot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	levels := make([]*domain.ParkingLevel, 0)
	for rows.Next() {
		var level domain.ParkingLevel
		var createdAt sql.NullTime

		if err := rows.Scan(&level.ID, &level.LotID, &level.LevelName, &level.LevelOrder,
			&level.Rows, &level.Columns, &level.Capacity, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListLevelsByLot - scan row: %v", ErrScanRow, err)
		}

		level.CreatedAt = createdAt.Time
		levels = append(levels, &level)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLevelsByLot - rows error: %v", ErrScanRow, err)
	}

	return levels, nil
}

// GetLevelByID получает уровень по ID
func (r *Repository) GetLevelByID(ctx context.Context, id int64) (*domain.ParkingLevel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"lot_id",
		"level_name",
		"level_order",
		"rows_count",
		"columns_count",
		"capacity",
		"created_at",
	).
		From("parking_levels").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLevelByID - build select query: %v", ErrBuildQuery, err)
	}

	var level domain.ParkingLevel
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&level.ID, &level.LotID, &level.LevelName, &level.LevelOrder,
		&level.Rows, &level.Columns, &level.Capacity, &createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLevelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLevelByID - scan level: %v", ErrScanRow, err)
	}

	level.CreatedAt = createdAt.Time

	return &level, nil
}
