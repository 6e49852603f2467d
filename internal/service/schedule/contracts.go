package schedule

import (
	"context"
	"time"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/internal/integrations/userservice"
)

// ScheduleRepository интерфейс репозитория конфигураций расписания
type ScheduleRepository interface {
	Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	GetCurrentActive(ctx context.Context, clinicID, specializationID int64) (*domain.ScheduleConfig, error)
	ListByClinicAndSpecialization(ctx context.Context, clinicID, specializationID int64) ([]*domain.ScheduleConfig, error)
	BoundValidity(ctx context.Context, id int64, until time.Time) error
	Deactivate(ctx context.Context, id int64) error
}

// ExceptionRepository интерфейс репозитория исключений расписания
type ExceptionRepository interface {
	Create(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error)
	GetByID(ctx context.Context, id int64) (*domain.ScheduleException, error)
	Deactivate(ctx context.Context, id int64) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
