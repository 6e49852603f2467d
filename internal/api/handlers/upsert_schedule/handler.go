package upsert_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clinicore/CBS-BookingService/internal/api/handlers"
	"github.com/clinicore/CBS-BookingService/internal/api/middleware"
	"github.com/clinicore/CBS-BookingService/internal/service/schedule"
)

const (
	msgInvalidClinicID         = "ID da clínica inválido"
	msgInvalidSpecializationID = "ID da especialização inválido"
	msgInvalidRequestBody      = "corpo da requisição inválido"
	msgMissingUserID           = "usuário não autenticado"
	msgForbidden               = "acesso negado"
	msgInvalidConfig           = "configuração de horários inválida"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/clinicas/{clinicaId}/especializacoes/{especializacaoId}/horarios
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	clinicID, err := strconv.ParseInt(vars["clinicaId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /clinicas/{id}/especializacoes/{id}/horarios - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	specializationID, err := strconv.ParseInt(vars["especializacaoId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /clinicas/{id}/especializacoes/{id}/horarios - Invalid specialization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecializationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /clinicas/{id}/especializacoes/{id}/horarios - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpsertScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /clinicas/{id}/especializacoes/{id}/horarios - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(clinicID, specializationID, userID)
	if err != nil {
		h.logger.Warn("PUT /clinicas/{id}/especializacoes/{id}/horarios - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfig)
		return
	}

	result, err := h.service.UpsertConfig(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied), errors.Is(err, schedule.ErrUserNotFound):
			h.logger.Warn("PUT /clinicas/{id}/especializacoes/{id}/horarios - Access denied: clinic_id=%d, user_id=%d",
				clinicID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput), errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("PUT /clinicas/{id}/especializacoes/{id}/horarios - Invalid config: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /clinicas/{id}/especializacoes/{id}/horarios - Failed to upsert config: clinic_id=%d, error=%v",
				clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /clinicas/{id}/especializacoes/{id}/horarios - Config upserted: config_id=%d, clinic_id=%d, specialization_id=%d",
		result.ID, clinicID, specializationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
