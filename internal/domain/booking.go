package domain

import (
	"time"

	"github.com/clinicore/CBS-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a patient's reservation of one slot
type Booking struct {
	ID               int64
	PatientID        int64
	ClinicID         int64
	SpecializationID int64
	BookingDate      time.Time
	StartTime        types.TimeString
	Practitioner     *string
	Status           BookingStatus

	// Denormalized data for history
	ClinicName         string
	SpecializationName string
	PatientName        string
	Notes              *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// ClinicBookingsFilter фильтр для получения бронирований клиники
type ClinicBookingsFilter struct {
	ClinicID         int64          // Обязательный параметр
	SpecializationID *int64         // Фильтр по специализации (опционально)
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive  bool           // Включать ли отмененные и no-show
}
