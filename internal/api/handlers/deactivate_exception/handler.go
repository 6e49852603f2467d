package deactivate_exception

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
	msgInvalidClinicID    = "ID da clínica inválido"
	msgInvalidExceptionID = "ID do bloqueio inválido"
	msgMissingUserID      = "usuário não autenticado"
	msgForbidden          = "acesso negado"
	msgNotFound           = "bloqueio não encontrado"
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

// Handle PATCH /api/v1/clinicas/{clinicaId}/especializacoes/{especializacaoId}/excecoes/{excecaoId}/deactivate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	clinicID, err := strconv.ParseInt(vars["clinicaId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /clinicas/{id}/.../excecoes/{id}/deactivate - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	exceptionID, err := strconv.ParseInt(vars["excecaoId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /clinicas/{id}/.../excecoes/{id}/deactivate - Invalid exception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /clinicas/{id}/.../excecoes/{id}/deactivate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeactivateException(r.Context(), exceptionID, clinicID, userID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrExceptionNotFound):
			h.logger.Warn("PATCH /clinicas/{id}/.../excecoes/{id}/deactivate - Exception not found: exception_id=%d", exceptionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrAccessDenied), errors.Is(err, schedule.ErrUserNotFound):
			h.logger.Warn("PATCH /clinicas/{id}/.../excecoes/{id}/deactivate - Access denied: clinic_id=%d, user_id=%d",
				clinicID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /clinicas/{id}/.../excecoes/{id}/deactivate - Failed to deactivate: exception_id=%d, error=%v",
				exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /clinicas/{id}/.../excecoes/{id}/deactivate - Exception deactivated: exception_id=%d, clinic_id=%d",
		exceptionID, clinicID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
