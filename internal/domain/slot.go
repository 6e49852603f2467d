package domain

import (
	"time"

	"github.com/clinicore/CBS-BookingService/pkg/types"
)

// Slot represents a bookable time interval derived from a ScheduleConfig
type Slot struct {
	Start types.TimeString
	End   types.TimeString
}

// LegacySlot represents a pre-generated slot row, used only when no
// ScheduleConfig exists for the (clinic, specialization) pair
type LegacySlot struct {
	ID               int64
	ClinicID         int64
	SpecializationID int64
	SlotDate         time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString
	CreatedAt        time.Time
}
