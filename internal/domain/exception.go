package domain

import (
	"time"

	"github.com/clinicore/CBS-BookingService/pkg/types"
)

// ExceptionKind вид исключения расписания
type ExceptionKind string

const (
	ExceptionBlackout ExceptionKind = "blackout"
	ExceptionHoliday  ExceptionKind = "holiday"
	ExceptionEvent    ExceptionKind = "event"
	ExceptionCustom   ExceptionKind = "custom"
)

// ScheduleException represents a date-specific override to a ScheduleConfig:
// a full-day or partial block of bookable slots. Rows are immutable once
// created; only deactivation is allowed.
type ScheduleException struct {
	ID               int64
	ClinicID         int64
	SpecializationID int64
	Date             time.Time
	StartTime        *types.TimeString // NULL вместе с EndTime = блокировка всего дня
	EndTime          *types.TimeString
	Kind             ExceptionKind
	Reason           string
	Active           bool
	CreatedAt        time.Time
}

// IsFullDay returns true if the exception blocks the whole day
// Полный день распознается по NULL-границам или по сентинелу 00:00-23:59
func (e *ScheduleException) IsFullDay() bool {
	if e.StartTime == nil && e.EndTime == nil {
		return true
	}
	if e.StartTime != nil && e.EndTime != nil {
		return *e.StartTime == FullDayStart && *e.EndTime == FullDayEnd
	}
	return false
}

// BlocksTime returns true if a slot starting at t is blocked by this exception
// Исключение действует на слот, только если НАЧАЛО слота попадает в [start, end)
func (e *ScheduleException) BlocksTime(t types.TimeString) bool {
	if e.IsFullDay() {
		return true
	}
	if e.StartTime == nil || e.EndTime == nil {
		return false
	}
	return !t.IsBefore(*e.StartTime) && t.IsBefore(*e.EndTime)
}
