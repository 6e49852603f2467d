package create_exception

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
	msgInvalidException        = "dados do bloqueio inválidos"
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

// Handle POST /api/v1/clinicas/{clinicaId}/especializacoes/{especializacaoId}/excecoes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	clinicID, err := strconv.ParseInt(vars["clinicaId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /clinicas/{id}/especializacoes/{id}/excecoes - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	specializationID, err := strconv.ParseInt(vars["especializacaoId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /clinicas/{id}/especializacoes/{id}/excecoes - Invalid specialization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecializationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /clinicas/{id}/especializacoes/{id}/excecoes - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clinicas/{id}/especializacoes/{id}/excecoes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(clinicID, specializationID, userID)
	if err != nil {
		h.logger.Warn("POST /clinicas/{id}/especializacoes/{id}/excecoes - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidException)
		return
	}

	result, err := h.service.CreateException(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied), errors.Is(err, schedule.ErrUserNotFound):
			h.logger.Warn("POST /clinicas/{id}/especializacoes/{id}/excecoes - Access denied: clinic_id=%d, user_id=%d",
				clinicID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput), errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("POST /clinicas/{id}/especializacoes/{id}/excecoes - Invalid exception: %v", err)
			handlers.RespondBadRequest(w, msgInvalidException)

		default:
			h.logger.Error("POST /clinicas/{id}/especializacoes/{id}/excecoes - Failed to create exception: clinic_id=%d, error=%v",
				clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clinicas/{id}/especializacoes/{id}/excecoes - Exception created: exception_id=%d, clinic_id=%d, specialization_id=%d",
		result.ID, clinicID, specializationID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
