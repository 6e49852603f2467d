package get_schedule

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
	msgMissingUserID           = "usuário não autenticado"
	msgForbidden               = "acesso negado"
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

// Handle GET /api/v1/clinicas/{clinicaId}/especializacoes/{especializacaoId}/horarios
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	clinicID, err := strconv.ParseInt(vars["clinicaId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clinicas/{id}/especializacoes/{id}/horarios - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	specializationID, err := strconv.ParseInt(vars["especializacaoId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clinicas/{id}/especializacoes/{id}/horarios - Invalid specialization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecializationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clinicas/{id}/especializacoes/{id}/horarios - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListConfigs(r.Context(), clinicID, specializationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied), errors.Is(err, schedule.ErrUserNotFound):
			h.logger.Warn("GET /clinicas/{id}/especializacoes/{id}/horarios - Access denied: clinic_id=%d, user_id=%d",
				clinicID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /clinicas/{id}/especializacoes/{id}/horarios - Failed to list configs: clinic_id=%d, error=%v",
				clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clinicas/{id}/especializacoes/{id}/horarios - Configs retrieved: clinic_id=%d, specialization_id=%d, count=%d",
		clinicID, specializationID, len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
