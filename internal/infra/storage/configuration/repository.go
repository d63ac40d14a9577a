package configuration

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

var configurationColumns = []string{
	"id",
	"name",
	"description",
	"num_levels",
	"rows_per_level",
	"columns_per_level",
	"created_at",
}

// Repository репозиторий шаблонов разметки паркингов ("Compact", "Standard", "Large")
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов разметки
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает шаблон разметки по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configurationColumns...).
		From("parking_configurations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ParkingConfiguration
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.Name,
		&cfg.Description,
		&cfg.NumLevels,
		&cfg.RowsPerLevel,
		&cfg.ColumnsPerLevel,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigurationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan configuration: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time

	return &cfg, nil
}
