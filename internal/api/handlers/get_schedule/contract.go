package get_schedule

import (
	"context"

	"github.com/clinicore/CBS-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListConfigs(ctx context.Context, clinicID, specializationID, userID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
