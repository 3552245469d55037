package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
)

// Service сервис для просмотра записей и их одобрения барбером
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		location:        location,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Видна только клиенту и барберу этой записи
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !appointment.IsVisibleTo(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment, s.location), nil
}

// GetBarberAppointments получает записи барбера
// Доступно только самому барберу. Опционально фильтрует по дню и статусу
func (s *Service) GetBarberAppointments(ctx context.Context, req *models.GetBarberAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetBarberAppointments: barber=%d, user=%d", req.BarberID, req.UserID)

	if req.UserID != req.BarberID {
		s.logger.Warn("GetBarberAppointments: access denied for user=%d to barber=%d", req.UserID, req.BarberID)
		return nil, ErrAccessDenied
	}

	filter := domain.BarberAppointmentsFilter{BarberID: req.BarberID}

	if req.Date != nil {
		day, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(*req.Date), s.location)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, *req.Date)
		}
		from, to := domain.DayBounds(day, s.location)
		filter.StartDate = &from
		filter.EndDate = &to
	}

	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	appointments, err := s.appointmentRepo.GetByBarberWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBarberAppointments: repository error for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: GetBarberAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBarberAppointments: fetched %d appointments for barber=%d", len(appointments), req.BarberID)
	return models.FromDomainAppointmentList(appointments, s.location), nil
}

// GetClientAppointments получает историю записей клиента
// Доступно только самому клиенту
func (s *Service) GetClientAppointments(ctx context.Context, clientID int64, userID int64) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: client=%d, user=%d", clientID, userID)

	if clientID != userID {
		s.logger.Warn("GetClientAppointments: access denied for user=%d to client=%d", userID, clientID)
		return nil, ErrAccessDenied
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, clientID)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appointments, s.location), nil
}

// UpdateStatus меняет статус записи: aprovado, rejeitado или concluido
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	status, err := models.ToDomainStatus(strings.TrimSpace(req.Status))
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	switch status {
	case domain.StatusApproved:
		return s.Approve(ctx, id, req.UserID)
	case domain.StatusRejected:
		return s.Reject(ctx, id, req.UserID, req.Reason)
	case domain.StatusCompleted:
		return s.Complete(ctx, id, req.UserID)
	default:
		return nil, fmt.Errorf("%w: cannot set status %q", ErrInvalidTransition, status)
	}
}

// Approve одобряет запись
// Проверяет, что у барбера нет другой одобренной записи на это же время
func (s *Service) Approve(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, id, userID, domain.StatusApproved, nil)
}

// Reject отклоняет запись, слот снова становится свободным
func (s *Service) Reject(ctx context.Context, id int64, userID int64, reason *string) (*models.AppointmentResponse, error) {
	if reason != nil && len([]rune(*reason)) > domain.MaxRejectionReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxRejectionReasonLength)
	}
	return s.transition(ctx, id, userID, domain.StatusRejected, reason)
}

// Complete отмечает одобренную запись выполненной
func (s *Service) Complete(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, id, userID, domain.StatusCompleted, nil)
}

func (s *Service) transition(
	ctx context.Context,
	id int64,
	userID int64,
	next domain.AppointmentStatus,
	reason *string,
) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d -> %s by user=%d", id, next, userID)

	var result *domain.Appointment

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем запись
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		// 2. Статус меняет только барбер записи
		if appointment.BarberID != userID {
			s.logger.Warn("UpdateStatus: access denied for user=%d to appointment id=%d", userID, id)
			return ErrAccessDenied
		}

		// 3. Проверяем переход
		if !appointment.Status.CanTransitionTo(next) {
			s.logger.Warn("UpdateStatus: appointment id=%d cannot move from %s to %s", id, appointment.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, next)
		}

		// 4. Одобрять можно только одну запись на слот
		if next == domain.StatusApproved {
			from, to := domain.DayBounds(appointment.Date, s.location)
			taken, err := s.appointmentRepo.ExistsAtTime(
				txCtx,
				appointment.BarberID,
				from, to,
				appointment.Time,
				[]domain.AppointmentStatus{domain.StatusApproved, domain.StatusCompleted},
				appointment.ID,
			)
			if err != nil {
				s.logger.Error("UpdateStatus: failed to check slot for appointment id=%d: %v", id, err)
				return fmt.Errorf("%w: UpdateStatus - check slot: %v", ErrInternal, err)
			}
			if taken {
				s.logger.Warn("UpdateStatus: slot of appointment id=%d already approved for another client", id)
				return ErrSlotConflict
			}
		}

		// 5. Сохраняем
		if next != domain.StatusRejected {
			reason = nil
		}
		if err := s.appointmentRepo.UpdateStatus(txCtx, id, next, reason); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrSlotConflict
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		appointment.Status = next
		appointment.RejectionReason = reason
		result = appointment
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: appointment id=%d is now %s", id, next)
	return models.FromDomainAppointment(result, s.location), nil
}
