package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	bookingRepo "github.com/clinicore/CBS-BookingService/internal/infra/storage/booking"
	"github.com/clinicore/CBS-BookingService/internal/integrations/clinicservice"
	"github.com/clinicore/CBS-BookingService/internal/integrations/userservice"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

type mockBookingRepo struct {
	conflicting *domain.Booking
	findErr     error
	created     *domain.Booking
	createErr   error

	createCalled bool
	findCalls    int
}

func (m *mockBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	m.createCalled = true
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.created != nil {
		return m.created, nil
	}
	out := *booking
	out.ID = 555
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	return &out, nil
}

func (m *mockBookingRepo) FindActiveSlot(_ context.Context, _, _ int64, _ time.Time, _ types.TimeString) (*domain.Booking, error) {
	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.conflicting == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return m.conflicting, nil
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

type mockUserClient struct {
	user *userservice.User
	err  error
}

func (m *mockUserClient) GetUser(_ context.Context, _ int64) (*userservice.User, error) {
	return m.user, m.err
}

// passthroughTxManager выполняет функцию без транзакции
type passthroughTxManager struct {
	called bool
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.called = true
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var (
	fixedNow    = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	bookingDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
)

func validRequest() *Request {
	return &Request{
		PatientID:        7,
		ClinicID:         1,
		SpecializationID: 2,
		Date:             bookingDate,
		StartTime:        "09:00",
	}
}

func newTestUseCase(repo *mockBookingRepo, clinic *mockClinicClient, user *mockUserClient, tx *passthroughTxManager) *UseCase {
	uc := NewUseCase(repo, clinic, user, tx, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: fixedNow}
	return uc
}

func validClinicClient() *mockClinicClient {
	return &mockClinicClient{
		clinic: &clinicservice.Clinic{ID: 1, Name: "Clínica Central", Active: true},
		spec:   &clinicservice.Specialization{ID: 2, ClinicID: 1, Name: "Cardiologia", Active: true},
	}
}

func patientClient() *mockUserClient {
	return &mockUserClient{user: &userservice.User{ID: 7, Name: "João Silva", Role: userservice.RolePatient, Active: true}}
}

func TestExecute_Success(t *testing.T) {
	repo := &mockBookingRepo{}
	tx := &passthroughTxManager{}
	uc := newTestUseCase(repo, validClinicClient(), patientClient(), tx)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, tx.called)
	assert.True(t, repo.createCalled)
	assert.Equal(t, int64(555), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	// Денормализованные имена копируются из внешних сервисов
	assert.Equal(t, "Clínica Central", resp.ClinicName)
	assert.Equal(t, "Cardiologia", resp.SpecializationName)
	assert.Equal(t, "João Silva", resp.PatientName)
}

func TestExecute_NotPatient(t *testing.T) {
	clinicID := int64(1)
	userClient := &mockUserClient{user: &userservice.User{ID: 7, Role: userservice.RoleClinic, ClinicID: &clinicID}}
	repo := &mockBookingRepo{}
	uc := newTestUseCase(repo, validClinicClient(), userClient, &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNotPatient)
	assert.False(t, repo.createCalled)
}

func TestExecute_UserNotFound(t *testing.T) {
	uc := newTestUseCase(
		&mockBookingRepo{},
		validClinicClient(),
		&mockUserClient{err: userservice.ErrUserNotFound},
		&passthroughTxManager{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_ClinicInactive(t *testing.T) {
	client := validClinicClient()
	client.clinic.Active = false
	repo := &mockBookingRepo{}
	uc := newTestUseCase(repo, client, patientClient(), &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrClinicInactive)
	assert.False(t, repo.createCalled)
}

func TestExecute_SpecializationInactive(t *testing.T) {
	client := validClinicClient()
	client.spec.Active = false
	uc := newTestUseCase(&mockBookingRepo{}, client, patientClient(), &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSpecializationInactive)
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := &mockBookingRepo{
		conflicting: &domain.Booking{
			ID:          42,
			BookingDate: bookingDate,
			StartTime:   "09:00",
			Status:      domain.StatusConfirmed,
		},
	}
	uc := newTestUseCase(repo, validClinicClient(), patientClient(), &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)

	// Конфликт несет данные занявшего слот бронирования
	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(42), conflict.BookingID)
	assert.Equal(t, domain.StatusConfirmed, conflict.Status)
	assert.False(t, repo.createCalled)
}

func TestExecute_UniqueIndexRace(t *testing.T) {
	// Предварительная проверка молчит, но вставка ловит 23505:
	// детали добираются повторным запросом после отката транзакции
	winner := &domain.Booking{ID: 99, BookingDate: bookingDate, StartTime: "09:00", Status: domain.StatusPending}
	firstCheck := true
	repo := &raceRepo{
		inner:      &mockBookingRepo{createErr: bookingRepo.ErrSlotTaken},
		winner:     winner,
		firstCheck: &firstCheck,
	}
	uc := newTestUseCase(&mockBookingRepo{}, validClinicClient(), patientClient(), &passthroughTxManager{})
	uc.bookingRepo = repo

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(99), conflict.BookingID)
}

// raceRepo имитирует гонку: первая проверка слота пуста, повторная видит победителя
type raceRepo struct {
	inner      *mockBookingRepo
	winner     *domain.Booking
	firstCheck *bool
}

func (r *raceRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return r.inner.Create(ctx, booking)
}

func (r *raceRepo) FindActiveSlot(_ context.Context, _, _ int64, _ time.Time, _ types.TimeString) (*domain.Booking, error) {
	if *r.firstCheck {
		*r.firstCheck = false
		return nil, bookingRepo.ErrBookingNotFound
	}
	return r.winner, nil
}

func TestExecute_PastDate(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		startTime types.TimeString
		wantErr   error
	}{
		{
			name:      "yesterday",
			date:      time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
			startTime: "09:00",
			wantErr:   ErrPastDate,
		},
		{
			name:      "today earlier time",
			date:      time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			startTime: "09:30",
			wantErr:   ErrPastDate,
		},
		{
			name:      "today at current time is allowed",
			date:      time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			startTime: "10:00",
		},
		{
			name:      "today later time is allowed",
			date:      time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			startTime: "14:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&mockBookingRepo{}, validClinicClient(), patientClient(), &passthroughTxManager{})

			req := validRequest()
			req.Date = tt.date
			req.StartTime = tt.startTime

			_, err := uc.Execute(context.Background(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExecute_ConflictCheckedBeforePastDate(t *testing.T) {
	// Слот занят И дата в прошлом: конфликт побеждает
	repo := &mockBookingRepo{
		conflicting: &domain.Booking{ID: 42, BookingDate: bookingDate, StartTime: "09:00", Status: domain.StatusPending},
	}
	uc := newTestUseCase(repo, validClinicClient(), patientClient(), &passthroughTxManager{})

	req := validRequest()
	req.Date = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NotErrorIs(t, err, ErrPastDate)
}

func TestExecute_Validation(t *testing.T) {
	longNotes := make([]byte, domain.MaxNotesLength+1)
	for i := range longNotes {
		longNotes[i] = 'a'
	}
	tooLong := string(longNotes)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero patient id", mutate: func(r *Request) { r.PatientID = 0 }},
		{name: "zero clinic id", mutate: func(r *Request) { r.ClinicID = 0 }},
		{name: "zero specialization id", mutate: func(r *Request) { r.SpecializationID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "9h30" }},
		{name: "notes too long", mutate: func(r *Request) { r.Notes = &tooLong }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepo{}
			uc := newTestUseCase(repo, validClinicClient(), patientClient(), &passthroughTxManager{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.False(t, repo.createCalled)
		})
	}
}

func TestExecute_InternalErrorOnSlotCheck(t *testing.T) {
	repo := &mockBookingRepo{findErr: errors.New("connection reset")}
	uc := newTestUseCase(repo, validClinicClient(), patientClient(), &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
