package create_booking

import (
	"errors"
	"net/http"

	"github.com/clinicore/CBS-BookingService/internal/api/handlers"
	"github.com/clinicore/CBS-BookingService/internal/api/middleware"
	createBooking "github.com/clinicore/CBS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody     = "corpo da requisição inválido"
	msgInvalidDate            = "formato de data inválido, esperado YYYY-MM-DD"
	msgInvalidTime            = "formato de horário inválido, esperado HH:MM"
	msgMissingUserID          = "usuário não autenticado"
	msgSlotTaken              = "este horário já está ocupado"
	msgNotPatient             = "apenas pacientes podem criar agendamentos"
	msgUserNotFound           = "usuário não encontrado"
	msgClinicNotFound         = "clínica não encontrada"
	msgClinicInactive         = "clínica inativa"
	msgSpecializationNotFound = "especialização não encontrada"
	msgSpecializationInactive = "especialização inativa"
	msgPastDate               = "não é possível agendar para data ou horário no passado"
	msgInvalidInput           = "dados do agendamento inválidos"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/agendamentos
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /agendamentos - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /agendamentos - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(patientID)
	if err != nil {
		h.logger.Warn("POST /agendamentos - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidStartTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /agendamentos - Slot taken: patient_id=%d, clinic_id=%d, date=%s, time=%s",
				patientID, req.ClinicID, req.BookingDate, req.StartTime)
			var conflict *createBooking.SlotConflictError
			errors.As(err, &conflict)
			handlers.RespondJSON(w, http.StatusConflict, FromConflictError(msgSlotTaken, conflict))

		case errors.Is(err, createBooking.ErrNotPatient):
			h.logger.Warn("POST /agendamentos - Not a patient: user_id=%d", patientID)
			handlers.RespondForbidden(w, msgNotPatient)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /agendamentos - User not found: user_id=%d", patientID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrClinicNotFound):
			h.logger.Warn("POST /agendamentos - Clinic not found: clinic_id=%d", req.ClinicID)
			handlers.RespondNotFound(w, msgClinicNotFound)

		case errors.Is(err, createBooking.ErrClinicInactive):
			h.logger.Warn("POST /agendamentos - Clinic inactive: clinic_id=%d", req.ClinicID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgClinicInactive)

		case errors.Is(err, createBooking.ErrSpecializationNotFound):
			h.logger.Warn("POST /agendamentos - Specialization not found: clinic_id=%d, specialization_id=%d",
				req.ClinicID, req.SpecializationID)
			handlers.RespondNotFound(w, msgSpecializationNotFound)

		case errors.Is(err, createBooking.ErrSpecializationInactive):
			h.logger.Warn("POST /agendamentos - Specialization inactive: specialization_id=%d", req.SpecializationID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgSpecializationInactive)

		case errors.Is(err, createBooking.ErrPastDate):
			h.logger.Warn("POST /agendamentos - Past date: patient_id=%d, date=%s, time=%s",
				patientID, req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /agendamentos - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /agendamentos - Failed to create booking: patient_id=%d, clinic_id=%d, error=%v",
				patientID, req.ClinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /agendamentos - Booking created successfully: booking_id=%d, patient_id=%d, clinic_id=%d",
		result.ID, patientID, req.ClinicID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
