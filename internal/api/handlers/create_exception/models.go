package create_exception

import (
	"time"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/internal/service/schedule/models"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

// CreateExceptionRequest HTTP request model
// Оба времени опущены - блокировка на весь день
type CreateExceptionRequest struct {
	Date      string  `json:"data"` // "2026-03-02"
	StartTime *string `json:"hora_inicio,omitempty"`
	EndTime   *string `json:"hora_fim,omitempty"`
	Kind      string  `json:"tipo"`
	Reason    string  `json:"motivo"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateExceptionRequest) ToServiceRequest(clinicID, specializationID, userID int64) (*models.CreateExceptionRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &models.CreateExceptionRequest{
		UserID:           userID,
		ClinicID:         clinicID,
		SpecializationID: specializationID,
		Date:             date,
		Kind:             r.Kind,
		Reason:           r.Reason,
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}
	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &endTime
	}

	return req, nil
}
