package upsert_schedule

import (
	"time"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/internal/service/schedule/models"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

// UpsertScheduleRequest HTTP request model
type UpsertScheduleRequest struct {
	Weekdays            []int   `json:"dias_semana"`
	StartTime           string  `json:"hora_inicio"`
	EndTime             string  `json:"hora_fim"`
	SlotDurationMinutes int     `json:"duracao_slot_minutos"`
	LunchStart          *string `json:"almoco_inicio,omitempty"`
	LunchEnd            *string `json:"almoco_fim,omitempty"`
	ValidFrom           *string `json:"valido_de,omitempty"` // "2026-03-01"
	ValidUntil          *string `json:"valido_ate,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertScheduleRequest) ToServiceRequest(clinicID, specializationID, userID int64) (*models.UpsertConfigRequest, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	req := &models.UpsertConfigRequest{
		UserID:              userID,
		ClinicID:            clinicID,
		SpecializationID:    specializationID,
		Weekdays:            r.Weekdays,
		StartTime:           startTime,
		EndTime:             endTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
	}

	if r.LunchStart != nil {
		lunchStart, err := types.NewTimeStringFromString(*r.LunchStart)
		if err != nil {
			return nil, err
		}
		req.LunchStart = &lunchStart
	}
	if r.LunchEnd != nil {
		lunchEnd, err := types.NewTimeStringFromString(*r.LunchEnd)
		if err != nil {
			return nil, err
		}
		req.LunchEnd = &lunchEnd
	}

	if r.ValidFrom != nil {
		validFrom, err := time.Parse(domain.DateFormat, *r.ValidFrom)
		if err != nil {
			return nil, err
		}
		req.ValidFrom = &validFrom
	}
	if r.ValidUntil != nil {
		validUntil, err := time.Parse(domain.DateFormat, *r.ValidUntil)
		if err != nil {
			return nil, err
		}
		req.ValidUntil = &validUntil
	}

	return req, nil
}
