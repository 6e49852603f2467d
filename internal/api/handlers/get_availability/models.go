package get_availability

import (
	"time"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	getAvailability "github.com/clinicore/CBS-BookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date             string   `json:"data"`
	ClinicID         int64    `json:"clinica_id"`
	SpecializationID int64    `json:"especializacao_id"`
	Available        []Window `json:"horariosDisponiveis"`
	Occupied         []string `json:"horariosOcupados"`
	TotalAvailable   int      `json:"total_disponiveis"`
	TotalOccupied    int      `json:"total_ocupados"`
	Mode             string   `json:"modo"`
	Message          *string  `json:"mensagem,omitempty"`
}

// Window свободный интервал времени
type Window struct {
	StartTime string `json:"hora_inicio"`
	EndTime   string `json:"hora_fim"`
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(clinicID, specializationID int64, dateStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		ClinicID:         clinicID,
		SpecializationID: specializationID,
		Date:             date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	available := make([]Window, len(resp.Available))
	for i, slot := range resp.Available {
		available[i] = Window{
			StartTime: slot.Start.String(),
			EndTime:   slot.End.String(),
		}
	}

	occupied := make([]string, len(resp.Occupied))
	for i, t := range resp.Occupied {
		occupied[i] = t.String()
	}

	return &AvailabilityResponse{
		Date:             resp.Date.Format(domain.DateFormat),
		ClinicID:         resp.ClinicID,
		SpecializationID: resp.SpecializationID,
		Available:        available,
		Occupied:         occupied,
		TotalAvailable:   len(available),
		TotalOccupied:    len(occupied),
		Mode:             resp.Mode,
		Message:          resp.Message,
	}
}
