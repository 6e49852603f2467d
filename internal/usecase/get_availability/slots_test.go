package get_availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

func timePtr(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

func slotStarts(slots []domain.Slot) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start.String())
	}
	return starts
}

func TestGenerateTimeGrid(t *testing.T) {
	tests := []struct {
		name       string
		config     domain.ScheduleConfig
		wantStarts []string
		wantErr    bool
	}{
		{
			name: "morning window 30 minute slots",
			config: domain.ScheduleConfig{
				StartTime:           "08:00",
				EndTime:             "12:00",
				SlotDurationMinutes: 30,
			},
			wantStarts: []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			name: "lunch break removes overlapping slots",
			config: domain.ScheduleConfig{
				StartTime:           "08:00",
				EndTime:             "12:00",
				SlotDurationMinutes: 30,
				LunchStart:          timePtr("10:00"),
				LunchEnd:            timePtr("11:00"),
			},
			wantStarts: []string{"08:00", "08:30", "09:00", "09:30", "11:00", "11:30"},
		},
		{
			name: "partial lunch overlap drops slot",
			config: domain.ScheduleConfig{
				StartTime:           "08:00",
				EndTime:             "12:00",
				SlotDurationMinutes: 45,
				LunchStart:          timePtr("10:00"),
				LunchEnd:            timePtr("10:30"),
			},
			// Сетка идет фиксированным шагом от начала окна, без переякоривания
			// после обеда: 09:30-10:15 и 10:15-11:00 пересекаются и выпадают
			wantStarts: []string{"08:00", "08:45", "11:00"},
		},
		{
			name: "slot not fitting into window is dropped",
			config: domain.ScheduleConfig{
				StartTime:           "09:00",
				EndTime:             "10:10",
				SlotDurationMinutes: 30,
			},
			wantStarts: []string{"09:00", "09:30"},
		},
		{
			name: "duration equals window",
			config: domain.ScheduleConfig{
				StartTime:           "09:00",
				EndTime:             "10:00",
				SlotDurationMinutes: 60,
			},
			wantStarts: []string{"09:00"},
		},
		{
			name: "duration larger than window",
			config: domain.ScheduleConfig{
				StartTime:           "09:00",
				EndTime:             "09:30",
				SlotDurationMinutes: 60,
			},
			wantStarts: []string{},
		},
		{
			name: "zero duration is an error",
			config: domain.ScheduleConfig{
				StartTime:           "09:00",
				EndTime:             "10:00",
				SlotDurationMinutes: 0,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := generateTimeGrid(&tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStarts, slotStarts(slots))
		})
	}
}

func TestGenerateTimeGrid_SlotsAreContiguous(t *testing.T) {
	config := domain.ScheduleConfig{
		StartTime:           "08:00",
		EndTime:             "18:00",
		SlotDurationMinutes: 25,
	}

	slots, err := generateTimeGrid(&config)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	// Слоты без обеда стыкуются: конец предыдущего равен началу следующего
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].End, slots[i].Start)
	}

	// Последний слот не выходит за конец окна
	assert.False(t, slots[len(slots)-1].End.IsAfter("18:00"))
}

func TestApplyExceptions(t *testing.T) {
	grid := []domain.Slot{
		{Start: "08:00", End: "08:30"},
		{Start: "08:30", End: "09:00"},
		{Start: "09:00", End: "09:30"},
		{Start: "09:30", End: "10:00"},
	}

	t.Run("no exceptions keeps grid intact", func(t *testing.T) {
		filtered, fullDay := applyExceptions(grid, nil)
		assert.Equal(t, grid, filtered)
		assert.Nil(t, fullDay)
	})

	t.Run("partial exception removes slots starting inside interval", func(t *testing.T) {
		exc := &domain.ScheduleException{
			StartTime: timePtr("08:30"),
			EndTime:   timePtr("09:30"),
		}

		filtered, fullDay := applyExceptions(grid, []*domain.ScheduleException{exc})
		assert.Nil(t, fullDay)
		// 09:30 не блокируется: конец интервала исключен
		assert.Equal(t, []string{"08:00", "09:30"}, slotStarts(filtered))
	})

	t.Run("full day exception with nil bounds empties grid", func(t *testing.T) {
		exc := &domain.ScheduleException{Reason: "Feriado nacional"}

		filtered, fullDay := applyExceptions(grid, []*domain.ScheduleException{exc})
		assert.Empty(t, filtered)
		require.NotNil(t, fullDay)
		assert.Equal(t, "Feriado nacional", fullDay.Reason)
	})

	t.Run("sentinel bounds behave as full day", func(t *testing.T) {
		start := domain.FullDayStart
		end := domain.FullDayEnd
		exc := &domain.ScheduleException{StartTime: &start, EndTime: &end}

		filtered, fullDay := applyExceptions(grid, []*domain.ScheduleException{exc})
		assert.Empty(t, filtered)
		assert.NotNil(t, fullDay)
	})

	t.Run("multiple partial exceptions accumulate", func(t *testing.T) {
		excs := []*domain.ScheduleException{
			{StartTime: timePtr("08:00"), EndTime: timePtr("08:30")},
			{StartTime: timePtr("09:30"), EndTime: timePtr("10:00")},
		}

		filtered, fullDay := applyExceptions(grid, excs)
		assert.Nil(t, fullDay)
		assert.Equal(t, []string{"08:30", "09:00"}, slotStarts(filtered))
	})
}

func TestSplitOccupied(t *testing.T) {
	grid := []domain.Slot{
		{Start: "08:00", End: "08:30"},
		{Start: "08:30", End: "09:00"},
		{Start: "09:00", End: "09:30"},
	}

	t.Run("active booking occupies its slot", func(t *testing.T) {
		bookings := []*domain.Booking{
			{StartTime: "08:30", Status: domain.StatusConfirmed},
		}

		available, occupied := splitOccupied(grid, bookings)
		assert.Equal(t, []string{"08:00", "09:00"}, slotStarts(available))
		assert.Equal(t, []types.TimeString{"08:30"}, occupied)
	})

	t.Run("cancelled and no-show bookings free the slot", func(t *testing.T) {
		bookings := []*domain.Booking{
			{StartTime: "08:00", Status: domain.StatusCancelled},
			{StartTime: "08:30", Status: domain.StatusNoShow},
		}

		available, occupied := splitOccupied(grid, bookings)
		assert.Len(t, available, 3)
		assert.Empty(t, occupied)
	})

	t.Run("duplicate start times collapse to one entry", func(t *testing.T) {
		bookings := []*domain.Booking{
			{StartTime: "09:00", Status: domain.StatusPending},
			{StartTime: "09:00", Status: domain.StatusConfirmed},
		}

		_, occupied := splitOccupied(grid, bookings)
		assert.Equal(t, []types.TimeString{"09:00"}, occupied)
	})

	t.Run("booking outside the grid still reported as occupied", func(t *testing.T) {
		bookings := []*domain.Booking{
			{StartTime: "07:00", Status: domain.StatusConfirmed},
		}

		available, occupied := splitOccupied(grid, bookings)
		assert.Len(t, available, 3)
		assert.Equal(t, []types.TimeString{"07:00"}, occupied)
	})
}
