package get_level_grid

import (
	"context"

	getLevelGrid "github.com/parkhub/parkhub-booking/internal/usecase/get_level_grid"
)

type GetLevelGridUseCase interface {
	Execute(ctx context.Context, req *getLevelGrid.Request) (*getLevelGrid.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
