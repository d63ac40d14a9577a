package get_level_grid

import "errors"

var (
	// ErrLevelNotFound возвращается, когда уровень не найден
	ErrLevelNotFound = errors.New("get_level_grid: level not found")

	// ErrInvalidAtTime возвращается при неразбираемом моменте запроса
	ErrInvalidAtTime = errors.New("get_level_grid: invalid at time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_level_grid: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_level_grid: internal error")
)
