package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	getAvailability "github.com/clinicore/CBS-BookingService/internal/usecase/get_availability"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

type mockUseCase struct {
	resp *getAvailability.Response
	err  error
	req  *getAvailability.Request
}

func (m *mockUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	m.req = req
	return m.resp, m.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/clinicas/{clinicaId}/especializacoes/{especializacaoId}/disponibilidade", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandle_Success(t *testing.T) {
	uc := &mockUseCase{
		resp: &getAvailability.Response{
			Date:             time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			ClinicID:         1,
			SpecializationID: 2,
			Available: []domain.Slot{
				{Start: "08:00", End: "08:30"},
				{Start: "09:00", End: "09:30"},
			},
			Occupied: []types.TimeString{"08:30"},
			Mode:     getAvailability.ModeOptimized,
		},
	}
	router := newRouter(NewHandler(uc, noopLogger{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clinicas/1/especializacoes/2/disponibilidade?data=2026-03-10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "2026-03-10", resp.Date)
	assert.Equal(t, "otimizado", resp.Mode)
	assert.Equal(t, 2, resp.TotalAvailable)
	assert.Equal(t, 1, resp.TotalOccupied)
	assert.Equal(t, Window{StartTime: "08:00", EndTime: "08:30"}, resp.Available[0])
	assert.Equal(t, []string{"08:30"}, resp.Occupied)
	assert.Nil(t, resp.Message)

	// Параметры пути и query дошли до use case
	require.NotNil(t, uc.req)
	assert.Equal(t, int64(1), uc.req.ClinicID)
	assert.Equal(t, int64(2), uc.req.SpecializationID)
}

func TestHandle_MessagePassedThrough(t *testing.T) {
	msg := "Atendimento indisponível nesta data"
	uc := &mockUseCase{
		resp: &getAvailability.Response{
			Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			Available: []domain.Slot{},
			Occupied:  []types.TimeString{},
			Mode:      getAvailability.ModeOptimized,
			Message:   &msg,
		},
	}
	router := newRouter(NewHandler(uc, noopLogger{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clinicas/1/especializacoes/2/disponibilidade?data=2026-03-10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Message)
	assert.Equal(t, msg, *resp.Message)
	assert.Empty(t, resp.Available)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "non-numeric clinic id", url: "/api/v1/clinicas/abc/especializacoes/2/disponibilidade?data=2026-03-10"},
		{name: "non-numeric specialization id", url: "/api/v1/clinicas/1/especializacoes/abc/disponibilidade?data=2026-03-10"},
		{name: "missing date", url: "/api/v1/clinicas/1/especializacoes/2/disponibilidade"},
		{name: "malformed date", url: "/api/v1/clinicas/1/especializacoes/2/disponibilidade?data=10-03-2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(NewHandler(&mockUseCase{}, noopLogger{}))

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_NotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "clinic not found", err: getAvailability.ErrClinicNotFound},
		{name: "specialization not found", err: getAvailability.ErrSpecializationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(NewHandler(&mockUseCase{err: tt.err}, noopLogger{}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/clinicas/1/especializacoes/2/disponibilidade?data=2026-03-10", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	router := newRouter(NewHandler(&mockUseCase{err: getAvailability.ErrInternal}, noopLogger{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clinicas/1/especializacoes/2/disponibilidade?data=2026-03-10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
