package domain

import "github.com/clinicore/CBS-BookingService/pkg/types"

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MaxNotesLength         = 500
	MaxReasonLength        = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Сентинельные границы полного дня для исключений расписания
// Пара 00:00-23:59 эквивалентна NULL-границам и означает блокировку всего дня
const (
	FullDayStart = types.TimeString("00:00")
	FullDayEnd   = types.TimeString("23:59")
)

// InactiveStatuses статусы, не занимающие слот
// Используются при фильтрации занятости и в частичном уникальном индексе БД
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// ValidStatuses все допустимые статусы бронирования
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
