package domain

import (
	"time"

	"github.com/clinicore/CBS-BookingService/pkg/types"
)

// ScheduleConfig represents the recurring weekly availability template
// for a (clinic, specialization) pair. A pair may accumulate several configs
// over time; at most one is effective for any given date.
type ScheduleConfig struct {
	ID                  int64
	ClinicID            int64
	SpecializationID    int64
	Weekdays            []int // 0 = Sunday ... 6 = Saturday
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	LunchStart          *types.TimeString
	LunchEnd            *types.TimeString
	ValidFrom           *time.Time // NULL = не ограничено снизу
	ValidUntil          *time.Time // NULL = не ограничено сверху
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasLunchBreak returns true if a lunch interval is configured
func (c *ScheduleConfig) HasLunchBreak() bool {
	return c.LunchStart != nil && c.LunchEnd != nil
}

// ContainsWeekday returns true if the config covers the given weekday
func (c *ScheduleConfig) ContainsWeekday(d time.Weekday) bool {
	for _, wd := range c.Weekdays {
		if wd == int(d) {
			return true
		}
	}
	return false
}

// CoversDate returns true if the date falls inside the validity window
// Сравнение только по дате, время отбрасывается
func (c *ScheduleConfig) CoversDate(date time.Time) bool {
	d := truncateToDate(date)
	if c.ValidFrom != nil && d.Before(truncateToDate(*c.ValidFrom)) {
		return false
	}
	if c.ValidUntil != nil && d.After(truncateToDate(*c.ValidUntil)) {
		return false
	}
	return true
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
