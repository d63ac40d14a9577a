package configuration

import "errors"

var (
	// ErrConfigurationNotFound возвращается, когда шаблон разметки не найден
	ErrConfigurationNotFound = errors.New("configuration.repository: configuration not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("configuration.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("configuration.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("configuration.repository: failed to scan row")
)
