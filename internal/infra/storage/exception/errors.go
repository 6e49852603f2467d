package exception

import "errors"

var (
	// ErrExceptionNotFound исключение расписания не найдено
	ErrExceptionNotFound = errors.New("exception.repository: exception not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("exception.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("exception.repository: failed to execute query")

	// ErrScanRow ошибка сканирования результата запроса
	ErrScanRow = errors.New("exception.repository: failed to scan row")
)
