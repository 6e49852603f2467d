package get_clinic_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clinicore/CBS-BookingService/internal/api/handlers"
	"github.com/clinicore/CBS-BookingService/internal/api/middleware"
	"github.com/clinicore/CBS-BookingService/internal/service/bookings"
)

const (
	msgInvalidClinicID = "ID da clínica inválido"
	msgInvalidFilters  = "parâmetros de filtro inválidos"
	msgMissingUserID   = "usuário não autenticado"
	msgForbidden       = "acesso negado"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clinicas/{clinicaId}/agendamentos
// Query params: especializacao_id, data_inicio, data_fim, status, incluir_inativos
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	clinicID, err := strconv.ParseInt(vars["clinicaId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clinicas/{id}/agendamentos - Invalid clinic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clinicas/{id}/agendamentos - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := ParseFilters(r.URL.Query(), clinicID, userID)
	if err != nil {
		h.logger.Warn("GET /clinicas/{id}/agendamentos - Invalid filters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilters)
		return
	}

	result, err := h.service.GetClinicBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied), errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("GET /clinicas/{id}/agendamentos - Access denied: clinic_id=%d, user_id=%d", clinicID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /clinicas/{id}/agendamentos - Invalid filters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilters)

		default:
			h.logger.Error("GET /clinicas/{id}/agendamentos - Failed to get bookings: clinic_id=%d, error=%v", clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clinicas/{id}/agendamentos - Bookings retrieved: clinic_id=%d, count=%d",
		clinicID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
