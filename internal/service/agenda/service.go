package agenda

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	agendaRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/agenda"
	"github.com/m04kA/SMC-BarberService/internal/integrations/userservice"
	"github.com/m04kA/SMC-BarberService/internal/service/agenda/models"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Service сервис для работы с расписанием барбера
type Service struct {
	agendaRepo AgendaRepository
	userClient UserServiceClient
	logger     Logger
}

// NewService создает новый экземпляр сервиса расписаний
// userClient может быть nil, тогда существование барбера не проверяется
func NewService(
	agendaRepo AgendaRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		agendaRepo: agendaRepo,
		userClient: userClient,
		logger:     logger,
	}
}

// Get получает расписание барбера
// Публичный метод. Если расписание не сохранено, возвращает значения по умолчанию
func (s *Service) Get(ctx context.Context, barberID int64) (*models.AgendaResponse, error) {
	s.logger.Info("Get: fetching agenda for barber=%d", barberID)

	if barberID <= 0 {
		return nil, fmt.Errorf("%w: barber_id must be positive", ErrInvalidInput)
	}

	cfg, err := s.agendaRepo.GetByBarberID(ctx, barberID)
	if err != nil {
		if errors.Is(err, agendaRepo.ErrAgendaNotFound) {
			s.logger.Info("Get: no agenda stored for barber=%d, using defaults", barberID)
			return models.FromDomainAgenda(domain.DefaultAgendaConfig(barberID), true), nil
		}
		s.logger.Error("Get: repository error for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAgenda(cfg, false), nil
}

// Upsert создает или заменяет расписание барбера
// Доступно только самому барберу
func (s *Service) Upsert(ctx context.Context, barberID int64, req *models.UpsertAgendaRequest) (*models.AgendaResponse, error) {
	s.logger.Info("Upsert: saving agenda for barber=%d by user=%d", barberID, req.UserID)

	// 1. Проверяем права доступа
	if req.UserID != barberID {
		s.logger.Warn("Upsert: access denied for user=%d to barber=%d", req.UserID, barberID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем и собираем расписание
	cfg, err := buildAgenda(barberID, req)
	if err != nil {
		s.logger.Warn("Upsert: validation failed for barber=%d: %v", barberID, err)
		return nil, err
	}

	// 3. Проверяем, что пользователь действительно активный барбер
	if s.userClient != nil {
		if _, err := s.userClient.GetBarber(ctx, barberID); err != nil {
			if errors.Is(err, userservice.ErrBarberNotFound) {
				s.logger.Warn("Upsert: barber id=%d not found", barberID)
				return nil, ErrBarberNotFound
			}
			s.logger.Error("Upsert: failed to get barber id=%d: %v", barberID, err)
			return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
		}
	}

	// 4. Сохраняем
	saved, err := s.agendaRepo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("Upsert: repository error for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved agenda id=%d for barber=%d", saved.ID, barberID)
	return models.FromDomainAgenda(saved, false), nil
}

// buildAgenda валидирует запрос и переводит его в domain модель
func buildAgenda(barberID int64, req *models.UpsertAgendaRequest) (*domain.AgendaConfig, error) {
	workStart, err := types.NewTimeStringFromString(req.WorkStart)
	if err != nil {
		return nil, fmt.Errorf("%w: workStart: %v", ErrInvalidInput, err)
	}
	workEnd, err := types.NewTimeStringFromString(req.WorkEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: workEnd: %v", ErrInvalidInput, err)
	}
	if !workStart.IsBefore(workEnd) {
		return nil, fmt.Errorf("%w: workStart must be before workEnd", ErrInvalidInput)
	}

	cfg := &domain.AgendaConfig{
		BarberID:                barberID,
		WorkStart:               workStart,
		WorkEnd:                 workEnd,
		MinBookingNoticeMinutes: req.MinBookingNoticeMinutes,
		AdvanceBookingDays:      req.AdvanceBookingDays,
	}

	if (req.LunchStart == nil) != (req.LunchEnd == nil) {
		return nil, fmt.Errorf("%w: lunchStart and lunchEnd must be set together", ErrInvalidInput)
	}
	if req.LunchStart != nil {
		lunchStart, err := types.NewTimeStringFromString(*req.LunchStart)
		if err != nil {
			return nil, fmt.Errorf("%w: lunchStart: %v", ErrInvalidInput, err)
		}
		lunchEnd, err := types.NewTimeStringFromString(*req.LunchEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: lunchEnd: %v", ErrInvalidInput, err)
		}
		if !lunchStart.IsBefore(lunchEnd) {
			return nil, fmt.Errorf("%w: lunchStart must be before lunchEnd", ErrInvalidInput)
		}
		if lunchStart.IsBefore(workStart) || lunchEnd.IsAfter(workEnd) {
			return nil, fmt.Errorf("%w: lunch must be inside working hours", ErrInvalidInput)
		}
		cfg.LunchStart = &lunchStart
		cfg.LunchEnd = &lunchEnd
	}

	session, err := types.ParseDurationMinutes(string(req.SessionDuration))
	if err != nil {
		return nil, fmt.Errorf("%w: sessionDuration: %v", ErrInvalidInput, err)
	}
	if session < domain.MinSessionDurationMinutes || session > domain.MaxSessionDurationMinutes {
		return nil, fmt.Errorf("%w: sessionDuration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}
	cfg.SessionDurationMinutes = session

	if req.BreakBetweenSessions != "" {
		pause, err := types.ParseDurationMinutes(string(req.BreakBetweenSessions))
		if err != nil {
			return nil, fmt.Errorf("%w: breakBetweenSessions: %v", ErrInvalidInput, err)
		}
		if pause > domain.MaxBreakBetweenSessions {
			return nil, fmt.Errorf("%w: breakBetweenSessions must be at most %d minutes",
				ErrInvalidInput, domain.MaxBreakBetweenSessions)
		}
		cfg.BreakBetweenSessionsMinutes = pause
	}

	if len(req.WorkingDays) == 0 {
		return nil, fmt.Errorf("%w: workingDays must not be empty", ErrInvalidInput)
	}
	seen := make(map[int]struct{}, len(req.WorkingDays))
	for _, d := range req.WorkingDays {
		if d < int(time.Sunday) || d > int(time.Saturday) {
			return nil, fmt.Errorf("%w: working day %d must be between 0 and 6", ErrInvalidInput, d)
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		cfg.WorkingDays = append(cfg.WorkingDays, time.Weekday(d))
	}

	if req.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || req.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return nil, fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}
	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays || req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return nil, fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return cfg, nil
}
