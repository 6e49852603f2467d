package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	clinicClient "github.com/clinicore/CBS-BookingService/internal/integrations/clinicservice"
	scheduleRepo "github.com/clinicore/CBS-BookingService/internal/infra/storage/schedule"
	"github.com/clinicore/CBS-BookingService/pkg/ptr"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

// Сообщения для пустой выдачи
const (
	msgNoWeekday            = "Não há atendimento configurado para este dia da semana"
	msgFullDayBlock         = "Atendimento indisponível nesta data"
	msgFullDayBlockReasoned = "Atendimento indisponível nesta data: %s"
)

// UseCase use case для получения доступного времени записи
type UseCase struct {
	bookingRepo    BookingRepository
	scheduleRepo   ScheduleRepository
	exceptionRepo  ExceptionRepository
	legacySlotRepo LegacySlotRepository
	clinicClient   ClinicServiceClient
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	exceptionRepo ExceptionRepository,
	legacySlotRepo LegacySlotRepository,
	clinicClient ClinicServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		scheduleRepo:   scheduleRepo,
		exceptionRepo:  exceptionRepo,
		legacySlotRepo: legacySlotRepo,
		clinicClient:   clinicClient,
		logger:         logger,
	}
}

// Execute выполняет use case вычисления доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: clinic=%d, specialization=%d, date=%s",
		req.ClinicID, req.SpecializationID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование клиники
	if _, err := uc.clinicClient.GetClinic(ctx, req.ClinicID); err != nil {
		if errors.Is(err, clinicClient.ErrClinicNotFound) {
			uc.logger.Warn("GetAvailability: clinic id=%d not found", req.ClinicID)
			return nil, ErrClinicNotFound
		}
		uc.logger.Error("GetAvailability: failed to get clinic id=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
	}

	// 3. Проверяем существование специализации в клинике
	if _, err := uc.clinicClient.GetSpecialization(ctx, req.ClinicID, req.SpecializationID); err != nil {
		if errors.Is(err, clinicClient.ErrSpecializationNotFound) {
			uc.logger.Warn("GetAvailability: specialization id=%d not found in clinic id=%d",
				req.SpecializationID, req.ClinicID)
			return nil, ErrSpecializationNotFound
		}
		uc.logger.Error("GetAvailability: failed to get specialization id=%d: %v", req.SpecializationID, err)
		return nil, fmt.Errorf("%w: failed to get specialization: %v", ErrInternal, err)
	}

	// 4. Ищем конфигурацию расписания, действующую на дату
	config, err := uc.scheduleRepo.GetActiveForDate(ctx, req.ClinicID, req.SpecializationID, req.Date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			// Пара еще не мигрировала на конфигурации - читаем материализованные слоты
			return uc.resolveLegacy(ctx, req)
		}
		uc.logger.Error("GetAvailability: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	return uc.resolveOptimized(ctx, req, config)
}

// resolveOptimized вычисляет доступность по конфигурации расписания
func (uc *UseCase) resolveOptimized(ctx context.Context, req *Request, config *domain.ScheduleConfig) (*Response, error) {
	uc.logger.Info("GetAvailability: using config id=%d for clinic=%d, specialization=%d",
		config.ID, req.ClinicID, req.SpecializationID)

	// Конфигурация есть, но день недели не рабочий: пустая выдача с пояснением,
	// к legacy режиму НЕ откатываемся
	if !config.ContainsWeekday(req.Date.Weekday()) {
		uc.logger.Info("GetAvailability: weekday %s is not in config id=%d day set",
			req.Date.Weekday(), config.ID)
		msg := msgNoWeekday
		return &Response{
			Date:             req.Date,
			ClinicID:         req.ClinicID,
			SpecializationID: req.SpecializationID,
			Available:        []domain.Slot{},
			Occupied:         []types.TimeString{},
			Mode:             ModeOptimized,
			Message:          &msg,
		}, nil
	}

	// Генерируем сетку слотов
	grid, err := generateTimeGrid(config)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate time grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time grid: %v", ErrInternal, err)
	}

	// Применяем исключения (блокировки времени) на дату
	exceptions, err := uc.exceptionRepo.GetActiveByDate(ctx, req.ClinicID, req.SpecializationID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get exceptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
	}

	grid, fullDayBlock := applyExceptions(grid, exceptions)

	// Делим сетку на свободное и занятое время
	bookings, err := uc.activeBookingsForDate(ctx, req)
	if err != nil {
		return nil, err
	}

	available, occupied := splitOccupied(grid, bookings)

	var message *string
	if fullDayBlock != nil {
		msg := msgFullDayBlock
		if fullDayBlock.Reason != "" {
			msg = fmt.Sprintf(msgFullDayBlockReasoned, fullDayBlock.Reason)
		}
		message = &msg
	}

	uc.logger.Info("GetAvailability: mode=%s, available=%d, occupied=%d for clinic=%d, specialization=%d, date=%s",
		ModeOptimized, len(available), len(occupied),
		req.ClinicID, req.SpecializationID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:             req.Date,
		ClinicID:         req.ClinicID,
		SpecializationID: req.SpecializationID,
		Available:        available,
		Occupied:         occupied,
		Mode:             ModeOptimized,
		Message:          message,
	}, nil
}

// resolveLegacy вычисляет доступность по материализованным слотам старой модели
func (uc *UseCase) resolveLegacy(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: no schedule config for clinic=%d, specialization=%d, falling back to legacy slots",
		req.ClinicID, req.SpecializationID)

	legacySlots, err := uc.legacySlotRepo.GetByDate(ctx, req.ClinicID, req.SpecializationID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get legacy slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get legacy slots: %v", ErrInternal, err)
	}

	bookings, err := uc.activeBookingsForDate(ctx, req)
	if err != nil {
		return nil, err
	}

	available, occupied := splitOccupied(legacySlotsToGrid(legacySlots), bookings)

	uc.logger.Info("GetAvailability: mode=%s, available=%d, occupied=%d for clinic=%d, specialization=%d, date=%s",
		ModeLegacy, len(available), len(occupied),
		req.ClinicID, req.SpecializationID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:             req.Date,
		ClinicID:         req.ClinicID,
		SpecializationID: req.SpecializationID,
		Available:        available,
		Occupied:         occupied,
		Mode:             ModeLegacy,
	}, nil
}

func (uc *UseCase) activeBookingsForDate(ctx context.Context, req *Request) ([]*domain.Booking, error) {
	filter := domain.ClinicBookingsFilter{
		ClinicID:         req.ClinicID,
		SpecializationID: ptr.Ptr(req.SpecializationID),
		StartDate:        ptr.Ptr(req.Date),
		EndDate:          ptr.Ptr(req.Date),
		IncludeInactive:  false, // Только активные бронирования
	}

	bookings, err := uc.bookingRepo.GetByClinicWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return bookings, nil
}
