package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clinicore/CBS-BookingService/internal/api/handlers"
	getAvailability "github.com/clinicore/CBS-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidClinicID         = "ID da clínica inválido"
	msgInvalidSpecializationID = "ID da especialização inválido"
	msgMissingDate             = "parâmetro data é obrigatório"
	msgInvalidDate             = "formato de data inválido, esperado YYYY-MM-DD"
	msgClinicNotFound          = "clínica não encontrada"
	msgSpecializationNotFound  = "especialização não encontrada"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/clinicas/{clinicaId}/especializacoes/{especializacaoId}/disponibilidade
// Query params: data (обязателен, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	clinicID, err := strconv.ParseInt(vars["clinicaId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clinicas/{id}/especializacoes/{id}/disponibilidade - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	specializationID, err := strconv.ParseInt(vars["especializacaoId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clinicas/{id}/especializacoes/{id}/disponibilidade - Invalid specialization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecializationID)
		return
	}

	dateStr := r.URL.Query().Get("data")
	if dateStr == "" {
		h.logger.Warn("GET /clinicas/{id}/especializacoes/{id}/disponibilidade - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(clinicID, specializationID, dateStr)
	if err != nil {
		h.logger.Warn("GET /clinicas/{id}/especializacoes/{id}/disponibilidade - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrClinicNotFound):
			h.logger.Warn("GET /clinicas/{id}/especializacoes/{id}/disponibilidade - Clinic not found: clinic_id=%d", clinicID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, getAvailability.ErrSpecializationNotFound):
			h.logger.Warn("GET /clinicas/{id}/especializacoes/{id}/disponibilidade - Specialization not found: clinic_id=%d, specialization_id=%d",
				clinicID, specializationID)
			handlers.RespondNotFound(w, msgSpecializationNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /clinicas/{id}/especializacoes/{id}/disponibilidade - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /clinicas/{id}/especializacoes/{id}/disponibilidade - Failed to get availability: clinic_id=%d, specialization_id=%d, error=%v",
				clinicID, specializationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /clinicas/{id}/especializacoes/{id}/disponibilidade - Availability retrieved: clinic_id=%d, specialization_id=%d, mode=%s, available=%d, occupied=%d",
		clinicID, specializationID, result.Mode, len(result.Available), len(result.Occupied))
	handlers.RespondJSON(w, http.StatusOK, response)
}
