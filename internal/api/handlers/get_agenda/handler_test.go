package get_agenda

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberService/internal/service/agenda/models"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Get(ctx context.Context, barberID int64) (*models.AgendaResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AgendaResponse{BarberID: barberID, WorkStart: "09:00", WorkEnd: "18:00", IsDefault: true}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"ok", "/api/v1/barbers/4/agenda", nil, http.StatusOK},
		{"bad id", "/api/v1/barbers/-1/agenda", nil, http.StatusBadRequest},
		{"store down", "/api/v1/barbers/4/agenda", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.NewRouter()
			r.HandleFunc("/api/v1/barbers/{barberId}/agenda", NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
