package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// AppointmentRepository интерфейс хранилища записей
type AppointmentRepository interface {
	// FindAppointments возвращает записи барбера в диапазоне дат [from, to], кроме записей со статусом excludeStatus
	FindAppointments(ctx context.Context, barberID int64, from, to time.Time, excludeStatus domain.AppointmentStatus) ([]*domain.Appointment, error)
}

// AgendaRepository интерфейс репозитория расписания барбера
type AgendaRepository interface {
	GetByBarberID(ctx context.Context, barberID int64) (*domain.AgendaConfig, error)
}

// SlotsObserver приёмник метрик по количеству отданных слотов
type SlotsObserver interface {
	ObserveSlotsReturned(count int)
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
