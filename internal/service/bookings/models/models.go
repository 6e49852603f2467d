package models

import (
	"errors"
	"time"

	"github.com/clinicore/CBS-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID int64  `json:"-"`
	Reason string `json:"motivo"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"-"`
	Status string `json:"status"`
}

// GetPatientBookingsRequest запрос на получение бронирований пациента
type GetPatientBookingsRequest struct {
	UserID    int64   // ID запрашивающего
	PatientID int64   // ID пациента из пути
	Status    *string // Фильтр по статусу (опционально)
}

// GetClinicBookingsRequest запрос на получение бронирований клиники
type GetClinicBookingsRequest struct {
	UserID           int64      // ID запрашивающего
	ClinicID         int64      // ID клиники из пути
	SpecializationID *int64     // Фильтр по специализации (опционально)
	StartDate        *time.Time // Начало периода (опционально)
	EndDate          *time.Time // Конец периода (опционально)
	Status           *string    // Фильтр по статусу (опционально)
	IncludeInactive  bool       // Включить отмененные и неявки
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetClinicBookingsRequest) ToDomainFilter() (domain.ClinicBookingsFilter, error) {
	filter := domain.ClinicBookingsFilter{
		ClinicID:         r.ClinicID,
		SpecializationID: r.SpecializationID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeInactive:  r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64  `json:"id"`
	PatientID        int64  `json:"paciente_id"`
	ClinicID         int64  `json:"clinica_id"`
	SpecializationID int64  `json:"especializacao_id"`
	BookingDate      string `json:"data_agendamento"` // "2026-03-02"
	StartTime        string `json:"hora_agendamento"` // "09:30"
	Status           string `json:"status"`

	// Денормализованные данные
	ClinicName         string  `json:"nome_clinica"`
	SpecializationName string  `json:"nome_especializacao"`
	PatientName        string  `json:"nome_paciente"`
	Practitioner       *string `json:"profissional,omitempty"`
	Notes              *string `json:"observacoes,omitempty"`

	CancellationReason *string `json:"motivo_cancelamento,omitempty"`
	CancelledAt        *string `json:"cancelado_em,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"agendamentos"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		PatientID:          b.PatientID,
		ClinicID:           b.ClinicID,
		SpecializationID:   b.SpecializationID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		Status:             string(b.Status),
		ClinicName:         b.ClinicName,
		SpecializationName: b.SpecializationName,
		PatientName:        b.PatientName,
		Practitioner:       b.Practitioner,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.ValidStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
