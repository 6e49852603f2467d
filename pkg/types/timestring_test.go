package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "08:00", want: "08:00"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:05", wantErr: true},
		{name: "with seconds", input: "08:00:00", wantErr: true},
		{name: "out of range hour", input: "24:30", wantErr: true},
		{name: "out of range minute", input: "10:60", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		input TimeString
		want  int
	}{
		{"00:00", 0},
		{"08:30", 510},
		{"12:00", 720},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		t.Run(tt.input.String(), func(t *testing.T) {
			got, err := tt.input.Minutes()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   TimeString
		add     int
		want    TimeString
		wantErr bool
	}{
		{name: "within hour", input: "08:00", add: 30, want: "08:30"},
		{name: "hour rollover", input: "08:45", add: 30, want: "09:15"},
		{name: "to end of day boundary", input: "23:30", add: 30, want: "24:00"},
		{name: "crosses midnight", input: "23:45", add: 30, wantErr: true},
		{name: "negative below zero", input: "00:10", add: -20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.AddMinutes(tt.add)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("08:30"))
	assert.False(t, TimeString("08:30").IsBefore("08:30"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	// Лексикографический порядок совпадает с хронологическим
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     interface{}
		want    TimeString
		wantErr bool
	}{
		{name: "plain HH:MM", src: "08:00", want: "08:00"},
		{name: "postgres time with seconds", src: "08:00:00", want: "08:00"},
		{name: "bytes", src: []byte("14:30:00"), want: "14:30"},
		{name: "time.Time", src: time.Date(2026, 3, 10, 9, 15, 42, 0, time.UTC), want: "09:15"},
		{name: "nil", src: nil, want: ""},
		{name: "invalid string", src: "not-a-time", wantErr: true},
		{name: "unsupported type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts TimeString
			err := ts.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts)
		})
	}
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("08:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:00", v)
}
