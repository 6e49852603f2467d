package schedule

import "errors"

var (
	// ErrConfigNotFound конфигурация расписания не найдена
	ErrConfigNotFound = errors.New("schedule.repository: config not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow ошибка сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
