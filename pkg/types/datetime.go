package types

import (
	"errors"
	"time"
)

// Layout формат даты-времени, используемый веб-слоем ("2025-10-15T14:30")
const Layout = "2006-01-02T15:04"

// ErrInvalidFormat возвращается при некорректном формате даты-времени
var ErrInvalidFormat = errors.New("types: invalid datetime string format, expected YYYY-MM-DDTHH:MM")

// DateTimeString строковое представление даты-времени в формате YYYY-MM-DDTHH:MM
// Используется для передачи времени начала бронирования через HTTP слой
type DateTimeString string

// NewDateTimeString создает DateTimeString из time.Time (с точностью до минуты)
func NewDateTimeString(t time.Time) DateTimeString {
	return DateTimeString(t.Format(Layout))
}

// Parse парсит DateTimeString в time.Time (в локальной зоне сервера)
func (s DateTimeString) Parse() (time.Time, error) {
	t, err := time.ParseInLocation(Layout, string(s), time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidFormat
	}
	return t, nil
}

// Validate проверяет корректность формата
func (s DateTimeString) Validate() error {
	_, err := s.Parse()
	return err
}

// IsZero проверяет, что значение пустое
func (s DateTimeString) IsZero() bool {
	return s == ""
}

// String возвращает строковое представление
func (s DateTimeString) String() string {
	return string(s)
}
