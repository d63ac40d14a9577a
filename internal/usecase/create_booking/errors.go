package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда парковочный слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrInvalidStartTime возвращается при неразбираемом времени начала
	ErrInvalidStartTime = errors.New("create_booking: invalid start time")

	// ErrPastStartTime возвращается при попытке бронирования в прошлом
	ErrPastStartTime = errors.New("create_booking: start time is in the past")

	// ErrInvalidDuration возвращается при недопустимой длительности
	ErrInvalidDuration = errors.New("create_booking: invalid duration")

	// ErrSlotNotAvailable возвращается, когда слот занят на запрошенный интервал
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
