package get_clinic_bookings

import (
	"context"

	"github.com/clinicore/CBS-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetClinicBookings(ctx context.Context, req *models.GetClinicBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
