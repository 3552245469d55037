package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/integrations/userservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	FindAppointments(ctx context.Context, barberID int64, from, to time.Time, excludeStatus domain.AppointmentStatus) ([]*domain.Appointment, error)
}

// AgendaRepository интерфейс репозитория расписания барбера
type AgendaRepository interface {
	GetByBarberID(ctx context.Context, barberID int64) (*domain.AgendaConfig, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetBarber(ctx context.Context, barberID int64) (*userservice.Barber, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
