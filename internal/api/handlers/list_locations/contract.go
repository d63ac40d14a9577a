package list_locations

import (
	"context"

	"github.com/parkhub/parkhub-booking/internal/service/hierarchy/models"
)

type HierarchyService interface {
	ListLocations(ctx context.Context) (*models.LocationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
