package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_IsActive(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCompleted, true},
		{StatusCancelled, false},
		{StatusNoShow, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.want, b.IsActive())
		})
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCompleted, false},
		{StatusCancelled, false},
		{StatusNoShow, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.want, b.CanBeCancelled())
		})
	}
}

func TestPrincipal_OwnsClinic(t *testing.T) {
	clinicID := int64(10)

	tests := []struct {
		name      string
		principal Principal
		clinicID  int64
		want      bool
	}{
		{
			name:      "clinic owns its own clinic",
			principal: Principal{UserID: 1, Role: RoleClinic, ClinicID: &clinicID},
			clinicID:  10,
			want:      true,
		},
		{
			name:      "clinic does not own another clinic",
			principal: Principal{UserID: 1, Role: RoleClinic, ClinicID: &clinicID},
			clinicID:  11,
			want:      false,
		},
		{
			name:      "patient never owns a clinic",
			principal: Principal{UserID: 2, Role: RolePatient},
			clinicID:  10,
			want:      false,
		},
		{
			name:      "clinic without clinic id",
			principal: Principal{UserID: 3, Role: RoleClinic},
			clinicID:  10,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.principal.OwnsClinic(tt.clinicID))
		})
	}
}
