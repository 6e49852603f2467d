package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinicore/CBS-BookingService/pkg/types"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestScheduleConfig_CoversDate(t *testing.T) {
	tests := []struct {
		name   string
		config ScheduleConfig
		date   time.Time
		want   bool
	}{
		{
			name:   "no bounds covers everything",
			config: ScheduleConfig{},
			date:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "inside window",
			config: ScheduleConfig{ValidFrom: datePtr(2026, 3, 1), ValidUntil: datePtr(2026, 3, 31)},
			date:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "on lower bound",
			config: ScheduleConfig{ValidFrom: datePtr(2026, 3, 1)},
			date:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "on upper bound",
			config: ScheduleConfig{ValidUntil: datePtr(2026, 3, 31)},
			date:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "before lower bound",
			config: ScheduleConfig{ValidFrom: datePtr(2026, 3, 1)},
			date:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			want:   false,
		},
		{
			name:   "after upper bound",
			config: ScheduleConfig{ValidUntil: datePtr(2026, 3, 31)},
			date:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			want:   false,
		},
		{
			name:   "time of day is ignored",
			config: ScheduleConfig{ValidUntil: datePtr(2026, 3, 31)},
			date:   time.Date(2026, 3, 31, 23, 45, 0, 0, time.UTC),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.CoversDate(tt.date))
		})
	}
}

func TestScheduleConfig_ContainsWeekday(t *testing.T) {
	config := ScheduleConfig{Weekdays: []int{1, 2, 3, 4, 5}} // пн-пт

	assert.True(t, config.ContainsWeekday(time.Monday))
	assert.True(t, config.ContainsWeekday(time.Friday))
	assert.False(t, config.ContainsWeekday(time.Saturday))
	assert.False(t, config.ContainsWeekday(time.Sunday))
}

func TestScheduleConfig_HasLunchBreak(t *testing.T) {
	lunchStart := types.TimeString("12:00")
	lunchEnd := types.TimeString("13:00")

	assert.False(t, (&ScheduleConfig{}).HasLunchBreak())
	assert.False(t, (&ScheduleConfig{LunchStart: &lunchStart}).HasLunchBreak())
	assert.True(t, (&ScheduleConfig{LunchStart: &lunchStart, LunchEnd: &lunchEnd}).HasLunchBreak())
}

func TestScheduleException_IsFullDay(t *testing.T) {
	start := types.TimeString("10:00")
	end := types.TimeString("12:00")
	sentinelStart := FullDayStart
	sentinelEnd := FullDayEnd

	tests := []struct {
		name string
		exc  ScheduleException
		want bool
	}{
		{name: "both nil", exc: ScheduleException{}, want: true},
		{name: "sentinel bounds", exc: ScheduleException{StartTime: &sentinelStart, EndTime: &sentinelEnd}, want: true},
		{name: "partial interval", exc: ScheduleException{StartTime: &start, EndTime: &end}, want: false},
		{name: "only start set", exc: ScheduleException{StartTime: &start}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.exc.IsFullDay())
		})
	}
}

func TestScheduleException_BlocksTime(t *testing.T) {
	start := types.TimeString("10:00")
	end := types.TimeString("12:00")
	exc := ScheduleException{StartTime: &start, EndTime: &end}

	// Блокируется только начало слота в [start, end)
	assert.True(t, exc.BlocksTime("10:00"))
	assert.True(t, exc.BlocksTime("11:30"))
	assert.False(t, exc.BlocksTime("12:00"))
	assert.False(t, exc.BlocksTime("09:30"))

	fullDay := ScheduleException{}
	assert.True(t, fullDay.BlocksTime("00:00"))
	assert.True(t, fullDay.BlocksTime("18:00"))
}
