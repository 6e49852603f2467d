package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	scheduleRepo "github.com/clinicore/CBS-BookingService/internal/infra/storage/schedule"
	"github.com/clinicore/CBS-BookingService/internal/integrations/clinicservice"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

type mockBookingRepo struct {
	bookings []*domain.Booking
	err      error
	filter   *domain.ClinicBookingsFilter
}

func (m *mockBookingRepo) GetByClinicWithFilter(_ context.Context, filter domain.ClinicBookingsFilter) ([]*domain.Booking, error) {
	m.filter = &filter
	return m.bookings, m.err
}

type mockScheduleRepo struct {
	config *domain.ScheduleConfig
	err    error
}

func (m *mockScheduleRepo) GetActiveForDate(_ context.Context, _, _ int64, _ time.Time) (*domain.ScheduleConfig, error) {
	return m.config, m.err
}

type mockExceptionRepo struct {
	exceptions []*domain.ScheduleException
	err        error
}

func (m *mockExceptionRepo) GetActiveByDate(_ context.Context, _, _ int64, _ time.Time) ([]*domain.ScheduleException, error) {
	return m.exceptions, m.err
}

type mockLegacySlotRepo struct {
	slots  []*domain.LegacySlot
	err    error
	called bool
}

func (m *mockLegacySlotRepo) GetByDate(_ context.Context, _, _ int64, _ time.Time) ([]*domain.LegacySlot, error) {
	m.called = true
	return m.slots, m.err
}

type mockClinicClient struct {
	clinic    *clinicservice.Clinic
	clinicErr error
	spec      *clinicservice.Specialization
	specErr   error
}

func (m *mockClinicClient) GetClinic(_ context.Context, _ int64) (*clinicservice.Clinic, error) {
	return m.clinic, m.clinicErr
}

func (m *mockClinicClient) GetSpecialization(_ context.Context, _, _ int64) (*clinicservice.Specialization, error) {
	return m.spec, m.specErr
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// tuesday 2026-03-10
var testDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func validClinicClient() *mockClinicClient {
	return &mockClinicClient{
		clinic: &clinicservice.Clinic{ID: 1, Name: "Clínica Central", Active: true},
		spec:   &clinicservice.Specialization{ID: 2, ClinicID: 1, Name: "Cardiologia", Active: true},
	}
}

func weekdayConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ID:                  100,
		ClinicID:            1,
		SpecializationID:    2,
		Weekdays:            []int{1, 2, 3, 4, 5},
		StartTime:           "08:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 30,
		Active:              true,
	}
}

func TestExecute_OptimizedMode(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		bookings: []*domain.Booking{
			{StartTime: "08:30", Status: domain.StatusConfirmed},
		},
	}
	uc := NewUseCase(
		bookingRepo,
		&mockScheduleRepo{config: weekdayConfig()},
		&mockExceptionRepo{},
		&mockLegacySlotRepo{},
		validClinicClient(),
		noopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ClinicID: 1, SpecializationID: 2, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, ModeOptimized, resp.Mode)
	assert.Nil(t, resp.Message)
	assert.Len(t, resp.Available, 7)
	assert.Equal(t, []types.TimeString{"08:30"}, resp.Occupied)

	// Фильтр бронирований: только активные, дата запроса с обеих сторон
	require.NotNil(t, bookingRepo.filter)
	assert.False(t, bookingRepo.filter.IncludeInactive)
	assert.Equal(t, testDate, *bookingRepo.filter.StartDate)
	assert.Equal(t, testDate, *bookingRepo.filter.EndDate)
}

func TestExecute_WeekdayNotConfigured(t *testing.T) {
	config := weekdayConfig()
	config.Weekdays = []int{1, 3, 5} // вторник (2) не рабочий

	legacyRepo := &mockLegacySlotRepo{}
	uc := NewUseCase(
		&mockBookingRepo{},
		&mockScheduleRepo{config: config},
		&mockExceptionRepo{},
		legacyRepo,
		validClinicClient(),
		noopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ClinicID: 1, SpecializationID: 2, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, ModeOptimized, resp.Mode)
	assert.Empty(t, resp.Available)
	assert.Empty(t, resp.Occupied)
	require.NotNil(t, resp.Message)
	assert.Equal(t, "Não há atendimento configurado para este dia da semana", *resp.Message)

	// Выходной при наличии конфигурации не откатывается к legacy
	assert.False(t, legacyRepo.called)
}

func TestExecute_FullDayException(t *testing.T) {
	uc := NewUseCase(
		&mockBookingRepo{},
		&mockScheduleRepo{config: weekdayConfig()},
		&mockExceptionRepo{exceptions: []*domain.ScheduleException{
			{Kind: domain.ExceptionHoliday, Reason: "Feriado municipal"},
		}},
		&mockLegacySlotRepo{},
		validClinicClient(),
		noopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ClinicID: 1, SpecializationID: 2, Date: testDate})
	require.NoError(t, err)

	assert.Empty(t, resp.Available)
	require.NotNil(t, resp.Message)
	assert.Equal(t, "Atendimento indisponível nesta data: Feriado municipal", *resp.Message)
}

func TestExecute_FullDayExceptionWithoutReason(t *testing.T) {
	uc := NewUseCase(
		&mockBookingRepo{},
		&mockScheduleRepo{config: weekdayConfig()},
		&mockExceptionRepo{exceptions: []*domain.ScheduleException{
			{Kind: domain.ExceptionBlackout},
		}},
		&mockLegacySlotRepo{},
		validClinicClient(),
		noopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ClinicID: 1, SpecializationID: 2, Date: testDate})
	require.NoError(t, err)

	require.NotNil(t, resp.Message)
	assert.Equal(t, "Atendimento indisponível nesta data", *resp.Message)
}

func TestExecute_PartialException(t *testing.T) {
	uc := NewUseCase(
		&mockBookingRepo{},
		&mockScheduleRepo{config: weekdayConfig()},
		&mockExceptionRepo{exceptions: []*domain.ScheduleException{
			{StartTime: timePtr("08:00"), EndTime: timePtr("10:00"), Kind: domain.ExceptionEvent},
		}},
		&mockLegacySlotRepo{},
		validClinicClient(),
		noopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ClinicID: 1, SpecializationID: 2, Date: testDate})
	require.NoError(t, err)

	assert.Nil(t, resp.Message)
	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, slotStarts(resp.Available))
}

func TestExecute_LegacyFallback(t *testing.T) {
	legacyRepo := &mockLegacySlotRepo{
		slots: []*domain.LegacySlot{
			{StartTime: "09:00", EndTime: "09:30"},
			{StartTime: "09:30", EndTime: "10:00"},
			{StartTime: "10:00", EndTime: "10:30"},
		},
	}

	uc := NewUseCase(
		&mockBookingRepo{bookings: []*domain.Booking{
			{StartTime: "09:30", Status: domain.StatusPending},
		}},
		&mockScheduleRepo{err: scheduleRepo.ErrConfigNotFound},
		&mockExceptionRepo{},
		legacyRepo,
		validClinicClient(),
		noopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ClinicID: 1, SpecializationID: 2, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, ModeLegacy, resp.Mode)
	assert.Nil(t, resp.Message)
	assert.True(t, legacyRepo.called)
	assert.Equal(t, []string{"09:00", "10:00"}, slotStarts(resp.Available))
	assert.Equal(t, []types.TimeString{"09:30"}, resp.Occupied)
}

func TestExecute_BookedSlotRoundTrip(t *testing.T) {
	// Свободный слот после бронирования переходит из Available в Occupied
	bookingRepo := &mockBookingRepo{}
	uc := NewUseCase(
		bookingRepo,
		&mockScheduleRepo{config: weekdayConfig()},
		&mockExceptionRepo{},
		&mockLegacySlotRepo{},
		validClinicClient(),
		noopLogger{},
	)
	req := &Request{ClinicID: 1, SpecializationID: 2, Date: testDate}

	before, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Contains(t, slotStarts(before.Available), "09:00")
	assert.Empty(t, before.Occupied)

	bookingRepo.bookings = []*domain.Booking{
		{StartTime: "09:00", Status: domain.StatusPending},
	}

	after, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, slotStarts(after.Available), "09:00")
	assert.Equal(t, []types.TimeString{"09:00"}, after.Occupied)
	assert.Len(t, after.Available, len(before.Available)-1)
}

func TestExecute_Idempotent(t *testing.T) {
	// Повторный запрос при неизменном состоянии дает идентичный ответ
	uc := NewUseCase(
		&mockBookingRepo{bookings: []*domain.Booking{
			{StartTime: "08:30", Status: domain.StatusConfirmed},
		}},
		&mockScheduleRepo{config: weekdayConfig()},
		&mockExceptionRepo{},
		&mockLegacySlotRepo{},
		validClinicClient(),
		noopLogger{},
	)
	req := &Request{ClinicID: 1, SpecializationID: 2, Date: testDate}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_ClinicNotFound(t *testing.T) {
	uc := NewUseCase(
		&mockBookingRepo{},
		&mockScheduleRepo{},
		&mockExceptionRepo{},
		&mockLegacySlotRepo{},
		&mockClinicClient{clinicErr: clinicservice.ErrClinicNotFound},
		noopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{ClinicID: 99, SpecializationID: 2, Date: testDate})
	assert.ErrorIs(t, err, ErrClinicNotFound)
}

func TestExecute_SpecializationNotFound(t *testing.T) {
	client := validClinicClient()
	client.spec = nil
	client.specErr = clinicservice.ErrSpecializationNotFound

	uc := NewUseCase(
		&mockBookingRepo{},
		&mockScheduleRepo{},
		&mockExceptionRepo{},
		&mockLegacySlotRepo{},
		client,
		noopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{ClinicID: 1, SpecializationID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrSpecializationNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(
		&mockBookingRepo{},
		&mockScheduleRepo{},
		&mockExceptionRepo{},
		&mockLegacySlotRepo{},
		validClinicClient(),
		noopLogger{},
	)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero clinic id", req: &Request{SpecializationID: 2, Date: testDate}},
		{name: "zero specialization id", req: &Request{ClinicID: 1, Date: testDate}},
		{name: "zero date", req: &Request{ClinicID: 1, SpecializationID: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
