package get_agenda

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/agenda/models"
)

type AgendaService interface {
	Get(ctx context.Context, barberID int64) (*models.AgendaResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
