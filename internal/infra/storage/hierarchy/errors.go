package hierarchy

import "errors"

var (
	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("hierarchy.repository: location not found")

	// ErrLotNotFound возвращается, когда паркинг не найден
	ErrLotNotFound = errors.New("hierarchy.repository: parking lot not found")

	// ErrLevelNotFound возвращается, когда уровень не найден
	ErrLevelNotFound = errors.New("hierarchy.repository: parking level not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("hierarchy.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("hierarchy.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("hierarchy.repository: failed to scan row")
)
