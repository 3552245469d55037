package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-BarberService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
)

type fakeUseCase struct {
	err     error
	lastReq *createAppointment.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	now := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	return &createAppointment.Response{
		ID:        10,
		ClientID:  req.ClientID,
		BarberID:  req.BarberID,
		Date:      time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		Time:      req.Time,
		Status:    "pendente",
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func post(uc *fakeUseCase, userID string, body string) *httptest.ResponseRecorder {
	h := middleware.Auth(http.HandlerFunc(NewHandler(uc, logger.NewNop()).Handle))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}

	rec := post(uc, "100", `{"barberId": 1, "date": "2025-03-11", "time": "9:30", "notes": "degradê"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(100), uc.lastReq.ClientID)
	assert.Equal(t, "09:30", uc.lastReq.Time.String())

	var body AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pendente", body.Status)
	assert.Equal(t, "2025-03-11", body.Date)
	assert.Equal(t, "09:30", body.Time)
}

func TestHandle_Errors(t *testing.T) {
	valid := `{"barberId": 1, "date": "2025-03-11", "time": "09:30"}`

	tests := []struct {
		name   string
		userID string
		body   string
		err    error
		status int
	}{
		{"no user", "", valid, nil, http.StatusUnauthorized},
		{"broken json", "100", `{"barberId":`, nil, http.StatusBadRequest},
		{"bad time", "100", `{"barberId": 1, "date": "2025-03-11", "time": "25:00"}`, nil, http.StatusBadRequest},
		{"slot taken", "100", valid, createAppointment.ErrSlotNotAvailable, http.StatusConflict},
		{"barber missing", "100", valid, createAppointment.ErrBarberNotFound, http.StatusNotFound},
		{"day off", "100", valid, createAppointment.ErrBarberDayOff, http.StatusBadRequest},
		{"off grid", "100", valid, createAppointment.ErrInvalidTimeSlot, http.StatusBadRequest},
		{"past date", "100", valid, createAppointment.ErrInvalidDate, http.StatusBadRequest},
		{"internal", "100", valid, createAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&fakeUseCase{err: tt.err}, tt.userID, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
