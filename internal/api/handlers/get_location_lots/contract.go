package get_location_lots

import (
	"context"

	"github.com/parkhub/parkhub-booking/internal/service/hierarchy/models"
)

type HierarchyService interface {
	ListLots(ctx context.Context, locationID int64) (*models.LotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
