package agenda

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/integrations/userservice"
)

// AgendaRepository интерфейс репозитория расписаний
type AgendaRepository interface {
	GetByBarberID(ctx context.Context, barberID int64) (*domain.AgendaConfig, error)
	Upsert(ctx context.Context, cfg *domain.AgendaConfig) (*domain.AgendaConfig, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetBarber(ctx context.Context, barberID int64) (*userservice.Barber, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
