package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/CBS-BookingService/internal/api/middleware"
	"github.com/clinicore/CBS-BookingService/internal/domain"
	createBooking "github.com/clinicore/CBS-BookingService/internal/usecase/create_booking"
)

type mockUseCase struct {
	resp *createBooking.Response
	err  error
	req  *createBooking.Request
}

func (m *mockUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	m.req = req
	return m.resp, m.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newRouter(h *Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/agendamentos", h.Handle).Methods(http.MethodPost)
	return r
}

const validBody = `{
	"clinica_id": 1,
	"especializacao_id": 2,
	"data_agendamento": "2026-03-10",
	"hora_agendamento": "09:00",
	"observacoes": "Primeira consulta"
}`

func doRequest(t *testing.T, handler http.Handler, body string, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/agendamentos", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	notes := "Primeira consulta"
	uc := &mockUseCase{
		resp: &createBooking.Response{
			ID:                 555,
			PatientID:          7,
			ClinicID:           1,
			SpecializationID:   2,
			BookingDate:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			StartTime:          "09:00",
			Status:             "pending",
			ClinicName:         "Clínica Central",
			SpecializationName: "Cardiologia",
			PatientName:        "João Silva",
			Notes:              &notes,
			CreatedAt:          time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC),
			UpdatedAt:          time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC),
		},
	}
	router := newRouter(NewHandler(uc, noopLogger{}))

	rec := doRequest(t, router, validBody, "7")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(555), resp.ID)
	assert.Equal(t, "2026-03-10", resp.BookingDate)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "Clínica Central", resp.ClinicName)

	// ID пациента берется из заголовка, а не из тела
	require.NotNil(t, uc.req)
	assert.Equal(t, int64(7), uc.req.PatientID)
}

func TestHandle_Unauthorized(t *testing.T) {
	router := newRouter(NewHandler(&mockUseCase{}, noopLogger{}))

	rec := doRequest(t, router, validBody, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_ConflictWithDetails(t *testing.T) {
	conflictErr := &createBooking.SlotConflictError{
		BookingID: 42,
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		Status:    domain.StatusConfirmed,
	}
	router := newRouter(NewHandler(&mockUseCase{err: conflictErr}, noopLogger{}))

	rec := doRequest(t, router, validBody, "7")
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 409, resp.Code)
	assert.Equal(t, "este horário já está ocupado", resp.Message)
	require.NotNil(t, resp.ConflictingBooking)
	assert.Equal(t, int64(42), resp.ConflictingBooking.ID)
	assert.Equal(t, "2026-03-10", resp.ConflictingBooking.BookingDate)
	assert.Equal(t, "confirmed", resp.ConflictingBooking.Status)
}

func TestHandle_ConflictWithoutDetails(t *testing.T) {
	router := newRouter(NewHandler(&mockUseCase{err: createBooking.ErrSlotTaken}, noopLogger{}))

	rec := doRequest(t, router, validBody, "7")
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.ConflictingBooking)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not a patient", err: createBooking.ErrNotPatient, wantStatus: http.StatusForbidden},
		{name: "user not found", err: createBooking.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "clinic not found", err: createBooking.ErrClinicNotFound, wantStatus: http.StatusNotFound},
		{name: "clinic inactive", err: createBooking.ErrClinicInactive, wantStatus: http.StatusUnprocessableEntity},
		{name: "specialization not found", err: createBooking.ErrSpecializationNotFound, wantStatus: http.StatusNotFound},
		{name: "specialization inactive", err: createBooking.ErrSpecializationInactive, wantStatus: http.StatusUnprocessableEntity},
		{name: "past date", err: createBooking.ErrPastDate, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(NewHandler(&mockUseCase{err: tt.err}, noopLogger{}))

			rec := doRequest(t, router, validBody, "7")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_MalformedBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "broken json",
			body:    `{"clinica_id": `,
			wantMsg: msgInvalidRequestBody,
		},
		{
			name:    "bad date",
			body:    `{"clinica_id":1,"especializacao_id":2,"data_agendamento":"10/03/2026","hora_agendamento":"09:00"}`,
			wantMsg: msgInvalidDate,
		},
		{
			name:    "bad date with bad time",
			body:    `{"clinica_id":1,"especializacao_id":2,"data_agendamento":"10/03/2026","hora_agendamento":"9h"}`,
			wantMsg: msgInvalidDate,
		},
		{
			name:    "bad time",
			body:    `{"clinica_id":1,"especializacao_id":2,"data_agendamento":"2026-03-10","hora_agendamento":"9h"}`,
			wantMsg: msgInvalidTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(NewHandler(&mockUseCase{}, noopLogger{}))

			rec := doRequest(t, router, tt.body, "7")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
		})
	}
}
