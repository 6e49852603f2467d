package deactivate_exception

import "context"

type ScheduleService interface {
	DeactivateException(ctx context.Context, exceptionID, clinicID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
