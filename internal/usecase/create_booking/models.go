package create_booking

import (
	"time"

	"github.com/clinicore/CBS-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	PatientID        int64            // ID пациента (из заголовка авторизации)
	ClinicID         int64            // ID клиники
	SpecializationID int64            // ID специализации
	Date             time.Time        // Дата записи (без времени)
	StartTime        types.TimeString // Время начала приема
	Notes            *string          // Заметки пациента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                 int64
	PatientID          int64
	ClinicID           int64
	SpecializationID   int64
	BookingDate        time.Time
	StartTime          types.TimeString
	Status             string
	ClinicName         string
	SpecializationName string
	PatientName        string
	Notes              *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
