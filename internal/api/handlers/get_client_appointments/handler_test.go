package get_client_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) GetClientAppointments(ctx context.Context, clientID int64, userID int64) (*models.AppointmentListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{{ID: 1, ClientID: clientID}}}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"ok", "/api/v1/clients/100/appointments", nil, http.StatusOK},
		{"bad id", "/api/v1/clients/abc/appointments", nil, http.StatusBadRequest},
		{"someone else", "/api/v1/clients/101/appointments", appointments.ErrAccessDenied, http.StatusForbidden},
		{"internal", "/api/v1/clients/100/appointments", appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.NewRouter()
			r.Use(middleware.Auth)
			r.HandleFunc("/api/v1/clients/{clientId}/appointments", NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set(middleware.UserIDHeader, "100")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
