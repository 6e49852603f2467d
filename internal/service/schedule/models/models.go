package models

import (
	"time"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

// Request модели

// UpsertConfigRequest запрос на установку конфигурации расписания пары
type UpsertConfigRequest struct {
	UserID              int64            // ID запрашивающего
	ClinicID            int64            // ID клиники из пути
	SpecializationID    int64            // ID специализации из пути
	Weekdays            []int            // Рабочие дни недели (0=воскресенье .. 6=суббота)
	StartTime           types.TimeString // Начало рабочего окна
	EndTime             types.TimeString // Конец рабочего окна
	SlotDurationMinutes int              // Длительность слота в минутах
	LunchStart          *types.TimeString
	LunchEnd            *types.TimeString
	ValidFrom           *time.Time // Начало действия конфигурации (опционально)
	ValidUntil          *time.Time // Конец действия конфигурации (опционально)
}

// ToDomain конвертирует request в domain модель
func (r *UpsertConfigRequest) ToDomain() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ClinicID:            r.ClinicID,
		SpecializationID:    r.SpecializationID,
		Weekdays:            r.Weekdays,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
		LunchStart:          r.LunchStart,
		LunchEnd:            r.LunchEnd,
		ValidFrom:           r.ValidFrom,
		ValidUntil:          r.ValidUntil,
		Active:              true,
	}
}

// CreateExceptionRequest запрос на регистрацию блокировки времени
type CreateExceptionRequest struct {
	UserID           int64
	ClinicID         int64
	SpecializationID int64
	Date             time.Time
	StartTime        *types.TimeString // Оба времени заданы или оба опущены
	EndTime          *types.TimeString
	Kind             string
	Reason           string
}

// ToDomain конвертирует request в domain модель
func (r *CreateExceptionRequest) ToDomain() *domain.ScheduleException {
	return &domain.ScheduleException{
		ClinicID:         r.ClinicID,
		SpecializationID: r.SpecializationID,
		Date:             r.Date,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Kind:             domain.ExceptionKind(r.Kind),
		Reason:           r.Reason,
		Active:           true,
	}
}

// Response модели

// ConfigResponse ответ с конфигурацией расписания
type ConfigResponse struct {
	ID                  int64   `json:"id"`
	ClinicID            int64   `json:"clinica_id"`
	SpecializationID    int64   `json:"especializacao_id"`
	Weekdays            []int   `json:"dias_semana"`
	StartTime           string  `json:"hora_inicio"`
	EndTime             string  `json:"hora_fim"`
	SlotDurationMinutes int     `json:"duracao_slot_minutos"`
	LunchStart          *string `json:"almoco_inicio,omitempty"`
	LunchEnd            *string `json:"almoco_fim,omitempty"`
	ValidFrom           *string `json:"valido_de,omitempty"` // "2026-03-01"
	ValidUntil          *string `json:"valido_ate,omitempty"`
	Active              bool    `json:"ativo"`

	CreatedAt time.Time `json:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"horarios"`
}

// ExceptionResponse ответ с исключением расписания
type ExceptionResponse struct {
	ID               int64   `json:"id"`
	ClinicID         int64   `json:"clinica_id"`
	SpecializationID int64   `json:"especializacao_id"`
	Date             string  `json:"data"`
	StartTime        *string `json:"hora_inicio,omitempty"`
	EndTime          *string `json:"hora_fim,omitempty"`
	Kind             string  `json:"tipo"`
	Reason           string  `json:"motivo"`
	Active           bool    `json:"ativo"`

	CreatedAt time.Time `json:"criado_em"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		ID:                  c.ID,
		ClinicID:            c.ClinicID,
		SpecializationID:    c.SpecializationID,
		Weekdays:            c.Weekdays,
		StartTime:           c.StartTime.String(),
		EndTime:             c.EndTime.String(),
		SlotDurationMinutes: c.SlotDurationMinutes,
		Active:              c.Active,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}

	if c.LunchStart != nil {
		lunchStart := c.LunchStart.String()
		resp.LunchStart = &lunchStart
	}
	if c.LunchEnd != nil {
		lunchEnd := c.LunchEnd.String()
		resp.LunchEnd = &lunchEnd
	}
	if c.ValidFrom != nil {
		validFrom := c.ValidFrom.Format(domain.DateFormat)
		resp.ValidFrom = &validFrom
	}
	if c.ValidUntil != nil {
		validUntil := c.ValidUntil.Format(domain.DateFormat)
		resp.ValidUntil = &validUntil
	}

	return resp
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.ScheduleConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}

	for _, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs = append(resp.Configs, *configResp)
		}
	}

	return resp
}

// FromDomainException конвертирует domain модель в DTO
func FromDomainException(e *domain.ScheduleException) *ExceptionResponse {
	if e == nil {
		return nil
	}

	resp := &ExceptionResponse{
		ID:               e.ID,
		ClinicID:         e.ClinicID,
		SpecializationID: e.SpecializationID,
		Date:             e.Date.Format(domain.DateFormat),
		Kind:             string(e.Kind),
		Reason:           e.Reason,
		Active:           e.Active,
		CreatedAt:        e.CreatedAt,
	}

	if e.StartTime != nil {
		startTime := e.StartTime.String()
		resp.StartTime = &startTime
	}
	if e.EndTime != nil {
		endTime := e.EndTime.String()
		resp.EndTime = &endTime
	}

	return resp
}
