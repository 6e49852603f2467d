package create_booking

import (
	"context"
	"time"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/internal/integrations/clinicservice"
	"github.com/clinicore/CBS-BookingService/internal/integrations/userservice"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// Create создает бронирование; при нарушении уникальности слота возвращает ErrSlotTaken
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// FindActiveSlot ищет активное бронирование, занимающее слот
	FindActiveSlot(ctx context.Context, clinicID, specializationID int64, date time.Time, startTime types.TimeString) (*domain.Booking, error)
}

// ClinicServiceClient интерфейс клиента для ClinicService
type ClinicServiceClient interface {
	GetClinic(ctx context.Context, clinicID int64) (*clinicservice.Clinic, error)
	GetSpecialization(ctx context.Context, clinicID, specializationID int64) (*clinicservice.Specialization, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	// DoSerializable выполняет функцию в сериализуемой транзакции
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
