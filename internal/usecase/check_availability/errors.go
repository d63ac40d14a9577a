package check_availability

import "errors"

var (
	// ErrSlotNotFound возвращается, когда парковочный слот не найден
	ErrSlotNotFound = errors.New("check_availability: slot not found")

	// ErrInvalidInterval возвращается при неразбираемом или вырожденном интервале
	ErrInvalidInterval = errors.New("check_availability: invalid interval")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
