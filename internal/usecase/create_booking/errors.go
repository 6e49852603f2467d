package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNotPatient возвращается, когда запись пытается создать не пациент
	ErrNotPatient = errors.New("only patients can create bookings")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrClinicNotFound возвращается, когда клиника не найдена
	ErrClinicNotFound = errors.New("clinic not found")

	// ErrClinicInactive возвращается, когда клиника неактивна
	ErrClinicInactive = errors.New("clinic is inactive")

	// ErrSpecializationNotFound возвращается, когда специализация не найдена
	ErrSpecializationNotFound = errors.New("specialization not found")

	// ErrSpecializationInactive возвращается, когда специализация неактивна
	ErrSpecializationInactive = errors.New("specialization is inactive")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("slot is already taken")

	// ErrPastDate возвращается при попытке записи на прошедшие дату и время
	ErrPastDate = errors.New("booking date is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// SlotConflictError детализированный конфликт слота
// Несет данные бронирования, уже занимающего слот. Раскрывается
// в ErrSlotTaken через errors.Is.
type SlotConflictError struct {
	BookingID int64
	Date      time.Time
	StartTime types.TimeString
	Status    domain.BookingStatus
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot %s %s is already taken by booking id=%d (status=%s)",
		e.Date.Format(domain.DateFormat), e.StartTime, e.BookingID, e.Status)
}

// Unwrap позволяет ловить конфликт через errors.Is(err, ErrSlotTaken)
func (e *SlotConflictError) Unwrap() error {
	return ErrSlotTaken
}
