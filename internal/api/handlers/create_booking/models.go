package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	createBooking "github.com/clinicore/CBS-BookingService/internal/usecase/create_booking"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

var (
	errInvalidBookingDate = errors.New("invalid booking date")
	errInvalidStartTime   = errors.New("invalid start time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClinicID         int64   `json:"clinica_id"`
	SpecializationID int64   `json:"especializacao_id"`
	BookingDate      string  `json:"data_agendamento"` // "2026-03-02"
	StartTime        string  `json:"hora_agendamento"` // "09:30"
	Notes            *string `json:"observacoes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64   `json:"id"`
	PatientID          int64   `json:"paciente_id"`
	ClinicID           int64   `json:"clinica_id"`
	SpecializationID   int64   `json:"especializacao_id"`
	BookingDate        string  `json:"data_agendamento"`
	StartTime          string  `json:"hora_agendamento"`
	Status             string  `json:"status"`
	ClinicName         string  `json:"nome_clinica"`
	SpecializationName string  `json:"nome_especializacao"`
	PatientName        string  `json:"nome_paciente"`
	Notes              *string `json:"observacoes,omitempty"`
	CreatedAt          string  `json:"criado_em"`
	UpdatedAt          string  `json:"atualizado_em"`
}

// ConflictResponse ответ 409 с данными конфликтующего бронирования
type ConflictResponse struct {
	Code               int    `json:"code"`
	Message            string `json:"message"`
	ConflictingBooking *struct {
		ID          int64  `json:"id"`
		BookingDate string `json:"data_agendamento"`
		StartTime   string `json:"hora_agendamento"`
		Status      string `json:"status"`
	} `json:"agendamento_conflitante,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(patientID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidBookingDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidStartTime, err)
	}

	return &createBooking.Request{
		PatientID:        patientID,
		ClinicID:         r.ClinicID,
		SpecializationID: r.SpecializationID,
		Date:             bookingDate,
		StartTime:        startTime,
		Notes:            r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		PatientID:          resp.PatientID,
		ClinicID:           resp.ClinicID,
		SpecializationID:   resp.SpecializationID,
		BookingDate:        resp.BookingDate.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		Status:             resp.Status,
		ClinicName:         resp.ClinicName,
		SpecializationName: resp.SpecializationName,
		PatientName:        resp.PatientName,
		Notes:              resp.Notes,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}

// FromConflictError строит ответ 409 из детализированного конфликта слота
func FromConflictError(message string, conflict *createBooking.SlotConflictError) *ConflictResponse {
	resp := &ConflictResponse{
		Code:    409,
		Message: message,
	}

	if conflict != nil {
		resp.ConflictingBooking = &struct {
			ID          int64  `json:"id"`
			BookingDate string `json:"data_agendamento"`
			StartTime   string `json:"hora_agendamento"`
			Status      string `json:"status"`
		}{
			ID:          conflict.BookingID,
			BookingDate: conflict.Date.Format(domain.DateFormat),
			StartTime:   conflict.StartTime.String(),
			Status:      string(conflict.Status),
		}
	}

	return resp
}
