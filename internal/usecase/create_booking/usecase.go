package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	bookingRepo "github.com/clinicore/CBS-BookingService/internal/infra/storage/booking"
	clinicClient "github.com/clinicore/CBS-BookingService/internal/integrations/clinicservice"
	userClient "github.com/clinicore/CBS-BookingService/internal/integrations/userservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	clinicClient ClinicServiceClient
	userClient   UserServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	clinicClient ClinicServiceClient,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		clinicClient: clinicClient,
		userClient:   userClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Порядок проверок фиксирован: полнота данных, роль пациента, активность
// клиники, активность специализации, конфликт слота, дата в прошлом.
// Проверка конфликта и вставка выполняются в сериализуемой транзакции,
// частичный уникальный индекс по активным слотам страхует от гонки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: patient=%d, clinic=%d, specialization=%d, date=%s, time=%s",
		req.PatientID, req.ClinicID, req.SpecializationID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что запрашивающий - пациент
	user, err := uc.userClient.GetUser(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.PatientID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	if user.Role != userClient.RolePatient {
		uc.logger.Warn("CreateBooking: user id=%d has role %q, only patients can book", req.PatientID, user.Role)
		return nil, ErrNotPatient
	}

	// 3. Проверяем, что клиника существует и активна
	clinic, err := uc.clinicClient.GetClinic(ctx, req.ClinicID)
	if err != nil {
		if errors.Is(err, clinicClient.ErrClinicNotFound) {
			uc.logger.Warn("CreateBooking: clinic id=%d not found", req.ClinicID)
			return nil, ErrClinicNotFound
		}
		uc.logger.Error("CreateBooking: failed to get clinic id=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
	}

	if !clinic.Active {
		uc.logger.Warn("CreateBooking: clinic id=%d is inactive", req.ClinicID)
		return nil, ErrClinicInactive
	}

	// 4. Проверяем, что специализация существует и активна
	specialization, err := uc.clinicClient.GetSpecialization(ctx, req.ClinicID, req.SpecializationID)
	if err != nil {
		if errors.Is(err, clinicClient.ErrSpecializationNotFound) {
			uc.logger.Warn("CreateBooking: specialization id=%d not found in clinic id=%d",
				req.SpecializationID, req.ClinicID)
			return nil, ErrSpecializationNotFound
		}
		uc.logger.Error("CreateBooking: failed to get specialization id=%d: %v", req.SpecializationID, err)
		return nil, fmt.Errorf("%w: failed to get specialization: %v", ErrInternal, err)
	}

	if !specialization.Active {
		uc.logger.Warn("CreateBooking: specialization id=%d is inactive", req.SpecializationID)
		return nil, ErrSpecializationInactive
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 5-6. Конфликт слота и дата в прошлом проверяются в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5. Проверяем, что слот не занят активным бронированием (FOR UPDATE)
		conflicting, err := uc.bookingRepo.FindActiveSlot(txCtx, req.ClinicID, req.SpecializationID, req.Date, req.StartTime)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}

		if conflicting != nil {
			uc.logger.Warn("CreateBooking: slot %s %s is taken by booking id=%d",
				req.Date.Format(domain.DateFormat), req.StartTime, conflicting.ID)
			return &SlotConflictError{
				BookingID: conflicting.ID,
				Date:      conflicting.BookingDate,
				StartTime: conflicting.StartTime,
				Status:    conflicting.Status,
			}
		}

		// 6. Проверяем, что дата и время не в прошлом
		if err := validateNotPast(req.Date, req.StartTime, now); err != nil {
			uc.logger.Warn("CreateBooking: date %s %s is in the past",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return err
		}

		// Создаем бронирование с денормализацией имен
		booking := &domain.Booking{
			PatientID:          req.PatientID,
			ClinicID:           req.ClinicID,
			SpecializationID:   req.SpecializationID,
			BookingDate:        req.Date,
			StartTime:          req.StartTime,
			Status:             domain.StatusPending,
			ClinicName:         clinic.Name,
			SpecializationName: specialization.Name,
			PatientName:        user.Name,
			Notes:              req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				// Проигрыш гонки: уникальный индекс сработал раньше нашей проверки
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Гонка на индексе: транзакция уже откатилась, детали конфликтующего
		// бронирования добираем отдельным запросом вне транзакции
		if errors.Is(err, ErrSlotTaken) {
			var conflict *SlotConflictError
			if !errors.As(err, &conflict) {
				return nil, uc.describeConflict(ctx, req, err)
			}
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:                 result.ID,
		PatientID:          result.PatientID,
		ClinicID:           result.ClinicID,
		SpecializationID:   result.SpecializationID,
		BookingDate:        result.BookingDate,
		StartTime:          result.StartTime,
		Status:             string(result.Status),
		ClinicName:         result.ClinicName,
		SpecializationName: result.SpecializationName,
		PatientName:        result.PatientName,
		Notes:              result.Notes,
		CreatedAt:          result.CreatedAt,
		UpdatedAt:          result.UpdatedAt,
	}, nil
}

// describeConflict превращает голый ErrSlotTaken в детализированный конфликт
// Если дочитать конфликтующее бронирование не удалось, возвращает исходную ошибку
func (uc *UseCase) describeConflict(ctx context.Context, req *Request, original error) error {
	conflicting, err := uc.bookingRepo.FindActiveSlot(ctx, req.ClinicID, req.SpecializationID, req.Date, req.StartTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to describe slot conflict: %v", err)
		return original
	}

	return &SlotConflictError{
		BookingID: conflicting.ID,
		Date:      conflicting.BookingDate,
		StartTime: conflicting.StartTime,
		Status:    conflicting.Status,
	}
}
