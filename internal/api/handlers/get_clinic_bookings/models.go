package get_clinic_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/internal/service/bookings/models"
)

// ParseFilters разбирает query параметры фильтрации в запрос сервиса
// Поддерживаются: especializacao_id, data_inicio, data_fim, status, incluir_inativos
func ParseFilters(query url.Values, clinicID, userID int64) (*models.GetClinicBookingsRequest, error) {
	req := &models.GetClinicBookingsRequest{
		UserID:   userID,
		ClinicID: clinicID,
	}

	if raw := query.Get("especializacao_id"); raw != "" {
		specializationID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.SpecializationID = &specializationID
	}

	if raw := query.Get("data_inicio"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("data_fim"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("incluir_inativos"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
