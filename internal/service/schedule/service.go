package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	exceptionRepo "github.com/clinicore/CBS-BookingService/internal/infra/storage/exception"
	scheduleRepo "github.com/clinicore/CBS-BookingService/internal/infra/storage/schedule"
	userClient "github.com/clinicore/CBS-BookingService/internal/integrations/userservice"
	"github.com/clinicore/CBS-BookingService/internal/service/schedule/models"
)

// Service сервис управления расписанием клиники
type Service struct {
	scheduleRepo  ScheduleRepository
	exceptionRepo ExceptionRepository
	userClient    UserServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	exceptionRepo ExceptionRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		exceptionRepo: exceptionRepo,
		userClient:    userClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// UpsertConfig устанавливает конфигурацию расписания пары клиника+специализация
// История не мутируется: прежняя действующая конфигурация ограничивается
// по окну валидности или деактивируется, новая вставляется отдельной строкой.
func (s *Service) UpsertConfig(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpsertConfig: clinic=%d, specialization=%d, user=%d",
		req.ClinicID, req.SpecializationID, req.UserID)

	if err := s.checkClinicAccess(ctx, req.ClinicID, req.UserID); err != nil {
		return nil, err
	}

	if err := validateConfigRequest(req); err != nil {
		s.logger.Warn("UpsertConfig: validation failed: %v", err)
		return nil, err
	}

	config := req.ToDomain()

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.scheduleRepo.GetCurrentActive(txCtx, req.ClinicID, req.SpecializationID)
		if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Error("UpsertConfig: failed to get current config: %v", err)
			return fmt.Errorf("%w: UpsertConfig - failed to get current config: %v", ErrInternal, err)
		}

		if current != nil {
			if err := s.supersede(txCtx, current, config.ValidFrom); err != nil {
				return err
			}
		}

		created, err := s.scheduleRepo.Create(txCtx, config)
		if err != nil {
			s.logger.Error("UpsertConfig: failed to create config: %v", err)
			return fmt.Errorf("%w: UpsertConfig - failed to create config: %v", ErrInternal, err)
		}

		config = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpsertConfig: successfully created config id=%d for clinic=%d, specialization=%d",
		config.ID, req.ClinicID, req.SpecializationID)
	return models.FromDomainConfig(config), nil
}

// supersede выводит прежнюю конфигурацию из действия
// При датированной новой конфигурации прежняя остается действующей для
// исторических дат, иначе деактивируется целиком
func (s *Service) supersede(ctx context.Context, current *domain.ScheduleConfig, newValidFrom *time.Time) error {
	if newValidFrom != nil {
		until := newValidFrom.AddDate(0, 0, -1)
		s.logger.Info("UpsertConfig: bounding config id=%d validity to %s",
			current.ID, until.Format(domain.DateFormat))
		if err := s.scheduleRepo.BoundValidity(ctx, current.ID, until); err != nil {
			s.logger.Error("UpsertConfig: failed to bound config id=%d: %v", current.ID, err)
			return fmt.Errorf("%w: UpsertConfig - failed to bound current config: %v", ErrInternal, err)
		}
		return nil
	}

	s.logger.Info("UpsertConfig: deactivating config id=%d", current.ID)
	if err := s.scheduleRepo.Deactivate(ctx, current.ID); err != nil {
		s.logger.Error("UpsertConfig: failed to deactivate config id=%d: %v", current.ID, err)
		return fmt.Errorf("%w: UpsertConfig - failed to deactivate current config: %v", ErrInternal, err)
	}
	return nil
}

// ListConfigs возвращает все конфигурации пары, включая исторические
func (s *Service) ListConfigs(ctx context.Context, clinicID, specializationID, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("ListConfigs: clinic=%d, specialization=%d, user=%d", clinicID, specializationID, userID)

	if err := s.checkClinicAccess(ctx, clinicID, userID); err != nil {
		return nil, err
	}

	configs, err := s.scheduleRepo.ListByClinicAndSpecialization(ctx, clinicID, specializationID)
	if err != nil {
		s.logger.Error("ListConfigs: repository error for clinic=%d: %v", clinicID, err)
		return nil, fmt.Errorf("%w: ListConfigs - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListConfigs: fetched %d configs for clinic=%d, specialization=%d",
		len(configs), clinicID, specializationID)
	return models.FromDomainConfigList(configs), nil
}

// CreateException регистрирует блокировку времени на дату
func (s *Service) CreateException(ctx context.Context, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("CreateException: clinic=%d, specialization=%d, date=%s, user=%d",
		req.ClinicID, req.SpecializationID, req.Date.Format(domain.DateFormat), req.UserID)

	if err := s.checkClinicAccess(ctx, req.ClinicID, req.UserID); err != nil {
		return nil, err
	}

	if err := validateExceptionRequest(req); err != nil {
		s.logger.Warn("CreateException: validation failed: %v", err)
		return nil, err
	}

	created, err := s.exceptionRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("CreateException: failed to create exception: %v", err)
		return nil, fmt.Errorf("%w: CreateException - failed to create exception: %v", ErrInternal, err)
	}

	s.logger.Info("CreateException: successfully created exception id=%d", created.ID)
	return models.FromDomainException(created), nil
}

// DeactivateException снимает блокировку времени
// Строки исключений неизменяемы, допускается только деактивация
func (s *Service) DeactivateException(ctx context.Context, exceptionID, clinicID, userID int64) error {
	s.logger.Info("DeactivateException: exception=%d, clinic=%d, user=%d", exceptionID, clinicID, userID)

	if err := s.checkClinicAccess(ctx, clinicID, userID); err != nil {
		return err
	}

	exc, err := s.exceptionRepo.GetByID(ctx, exceptionID)
	if err != nil {
		if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeactivateException: exception id=%d not found", exceptionID)
			return ErrExceptionNotFound
		}
		s.logger.Error("DeactivateException: repository error for exception id=%d: %v", exceptionID, err)
		return fmt.Errorf("%w: DeactivateException - repository error: %v", ErrInternal, err)
	}

	// Исключение должно принадлежать клинике из пути
	if exc.ClinicID != clinicID {
		s.logger.Warn("DeactivateException: exception id=%d belongs to clinic=%d, not clinic=%d",
			exceptionID, exc.ClinicID, clinicID)
		return ErrExceptionNotFound
	}

	if err := s.exceptionRepo.Deactivate(ctx, exceptionID); err != nil {
		if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
			return ErrExceptionNotFound
		}
		s.logger.Error("DeactivateException: failed to deactivate exception id=%d: %v", exceptionID, err)
		return fmt.Errorf("%w: DeactivateException - failed to deactivate: %v", ErrInternal, err)
	}

	s.logger.Info("DeactivateException: successfully deactivated exception id=%d", exceptionID)
	return nil
}

// checkClinicAccess проверяет, что пользователь - принципал клиники clinicID
func (s *Service) checkClinicAccess(ctx context.Context, clinicID int64, userID int64) error {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("checkClinicAccess: user id=%d not found", userID)
			return ErrUserNotFound
		}
		s.logger.Error("checkClinicAccess: failed to get user id=%d: %v", userID, err)
		return fmt.Errorf("%w: checkClinicAccess - failed to get user: %v", ErrInternal, err)
	}

	principal := &domain.Principal{
		UserID:   user.ID,
		Name:     user.Name,
		Role:     domain.Role(user.Role),
		ClinicID: user.ClinicID,
	}

	if !principal.OwnsClinic(clinicID) {
		s.logger.Warn("checkClinicAccess: user=%d is not a principal of clinic=%d", userID, clinicID)
		return ErrAccessDenied
	}

	return nil
}
