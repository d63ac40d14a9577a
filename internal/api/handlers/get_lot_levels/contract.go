package get_lot_levels

import (
	"context"

	"github.com/parkhub/parkhub-booking/internal/service/hierarchy/models"
)

type HierarchyService interface {
	ListLevels(ctx context.Context, lotID int64) (*models.LevelListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
