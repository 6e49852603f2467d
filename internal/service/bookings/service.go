package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	bookingRepo "github.com/clinicore/CBS-BookingService/internal/infra/storage/booking"
	userClient "github.com/clinicore/CBS-BookingService/internal/integrations/userservice"
	"github.com/clinicore/CBS-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	userClient  UserServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		userClient:  userClient,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступно пациенту-владельцу бронирования или клинике, которой оно принадлежит
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	principal, err := s.resolvePrincipal(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := checkBookingAccess(booking, principal); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetPatientBookings получает историю записей пациента
// Пациент видит только собственную историю
func (s *Service) GetPatientBookings(ctx context.Context, req *models.GetPatientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPatientBookings: fetching bookings for patient=%d, requester=%d, status=%v",
		req.PatientID, req.UserID, req.Status)

	if req.UserID != req.PatientID {
		s.logger.Warn("GetPatientBookings: user=%d requested history of patient=%d", req.UserID, req.PatientID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetPatientBookings: invalid status=%s for patient=%d", *req.Status, req.PatientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByPatientID(ctx, req.PatientID, domainStatus)
	if err != nil {
		s.logger.Error("GetPatientBookings: repository error for patient=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: GetPatientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPatientBookings: successfully fetched %d bookings for patient=%d", len(bookings), req.PatientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetClinicBookings получает записи клиники с гибкой фильтрацией
// Поддерживает фильтрацию по специализации, периоду и статусу.
// Доступно только принципалу самой клиники.
func (s *Service) GetClinicBookings(ctx context.Context, req *models.GetClinicBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetClinicBookings: fetching bookings for clinic=%d, user=%d", req.ClinicID, req.UserID)
	if req.SpecializationID != nil {
		logMsg += fmt.Sprintf(", specialization=%d", *req.SpecializationID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if err := s.checkClinicAccess(ctx, req.ClinicID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClinicBookings: invalid filter for clinic=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByClinicWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClinicBookings: repository error for clinic=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: GetClinicBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClinicBookings: successfully fetched %d bookings for clinic=%d", len(bookings), req.ClinicID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Пациент может отменить только собственную запись, клиника - любую свою.
// Отмена возможна только из статусов pending и confirmed.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	principal, err := s.resolvePrincipal(ctx, req.UserID)
	if err != nil {
		return err
	}

	if err := checkBookingAccess(booking, principal); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.Reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только клинике, которой принадлежит запись
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := s.checkClinicAccess(ctx, booking.ClinicID, req.UserID); err != nil {
		return err
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Delete физически удаляет бронирование
// Доступно только клинике, которой принадлежит запись
func (s *Service) Delete(ctx context.Context, bookingID int64, userID int64) error {
	s.logger.Info("Delete: deleting booking id=%d by user=%d", bookingID, userID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.checkClinicAccess(ctx, booking.ClinicID, userID); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// resolvePrincipal получает принципала через UserService
func (s *Service) resolvePrincipal(ctx context.Context, userID int64) (*domain.Principal, error) {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("resolvePrincipal: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("resolvePrincipal: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: resolvePrincipal - failed to get user: %v", ErrInternal, err)
	}

	return &domain.Principal{
		UserID:   user.ID,
		Name:     user.Name,
		Role:     domain.Role(user.Role),
		ClinicID: user.ClinicID,
	}, nil
}

// checkClinicAccess проверяет, что пользователь - принципал клиники clinicID
func (s *Service) checkClinicAccess(ctx context.Context, clinicID int64, userID int64) error {
	principal, err := s.resolvePrincipal(ctx, userID)
	if err != nil {
		return err
	}

	if !principal.OwnsClinic(clinicID) {
		s.logger.Warn("checkClinicAccess: user=%d is not a principal of clinic=%d", userID, clinicID)
		return ErrAccessDenied
	}

	return nil
}

// checkBookingAccess проверяет доступ принципала к бронированию
// Доступ есть у пациента-владельца и у клиники, которой принадлежит запись
func checkBookingAccess(booking *domain.Booking, principal *domain.Principal) error {
	if principal.IsPatient() && booking.PatientID == principal.UserID {
		return nil
	}

	if principal.OwnsClinic(booking.ClinicID) {
		return nil
	}

	return ErrAccessDenied
}
