package get_availability

import (
	"time"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

// Режимы вычисления доступности
const (
	// ModeOptimized расчет по конфигурации расписания
	ModeOptimized = "otimizado"
	// ModeLegacy чтение материализованных слотов старой модели
	ModeLegacy = "legacy"
)

// Request модель запроса доступного времени
type Request struct {
	ClinicID         int64     // ID клиники
	SpecializationID int64     // ID специализации
	Date             time.Time // Дата, на которую запрашивается доступность (без времени)
}

// Response модель ответа с доступным и занятым временем
type Response struct {
	Date             time.Time          // Дата запроса
	ClinicID         int64              // ID клиники
	SpecializationID int64              // ID специализации
	Available        []domain.Slot      // Свободные интервалы
	Occupied         []types.TimeString // Время начала активных бронирований
	Mode             string             // Режим вычисления: otimizado или legacy
	Message          *string            // Пояснение для пустой выдачи (выходной, блокировка)
}
