package get_availability

import (
	"context"
	"time"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/internal/integrations/clinicservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByClinicWithFilter получает бронирования клиники с фильтрацией
	GetByClinicWithFilter(ctx context.Context, filter domain.ClinicBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория конфигураций расписания
type ScheduleRepository interface {
	// GetActiveForDate получает действующую конфигурацию пары на дату
	GetActiveForDate(ctx context.Context, clinicID, specializationID int64, date time.Time) (*domain.ScheduleConfig, error)
}

// ExceptionRepository интерфейс репозитория исключений расписания
type ExceptionRepository interface {
	GetActiveByDate(ctx context.Context, clinicID, specializationID int64, date time.Time) ([]*domain.ScheduleException, error)
}

// LegacySlotRepository интерфейс репозитория материализованных слотов старой модели
type LegacySlotRepository interface {
	GetByDate(ctx context.Context, clinicID, specializationID int64, date time.Time) ([]*domain.LegacySlot, error)
}

// ClinicServiceClient интерфейс клиента для ClinicService
type ClinicServiceClient interface {
	GetClinic(ctx context.Context, clinicID int64) (*clinicservice.Clinic, error)
	GetSpecialization(ctx context.Context, clinicID, specializationID int64) (*clinicservice.Specialization, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
