package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pendente"
	StatusApproved  AppointmentStatus = "aprovado"
	StatusRejected  AppointmentStatus = "rejeitado"
	StatusCompleted AppointmentStatus = "concluido"
)

// IsValid returns true if the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// allowedTransitions таблица допустимых переходов статусов
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusCompleted, StatusRejected},
}

// CanTransitionTo returns true if the status may move to next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment represents a client's request for a barber's time slot
type Appointment struct {
	ID        int64
	ClientID  int64
	BarberID  int64
	ServiceID *int64
	Date      time.Time        // календарный день (00:00 в часовом поясе сервиса)
	Time      types.TimeString // начало слота "HH:MM"
	Status    AppointmentStatus
	Notes     *string

	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the appointment blocks its time slot
func (a *Appointment) OccupiesSlot() bool {
	return a.Status != StatusRejected
}

// IsVisibleTo returns true if the user is the client or the barber of the appointment
func (a *Appointment) IsVisibleTo(userID int64) bool {
	return a.ClientID == userID || a.BarberID == userID
}

// BarberAppointmentsFilter фильтр для получения записей барбера
type BarberAppointmentsFilter struct {
	BarberID  int64              // Обязательный параметр
	StartDate *time.Time         // Начало периода (включительно)
	EndDate   *time.Time         // Конец периода (включительно)
	Status    *AppointmentStatus // Фильтр по статусу
}
