package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	agendaRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/agenda"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	userClient "github.com/m04kA/SMC-BarberService/internal/integrations/userservice"
	slots "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// UseCase use case для записи клиента к барберу
type UseCase struct {
	appointmentRepo AppointmentRepository
	agendaRepo      AgendaRepository
	userClient      UserServiceClient
	txManager       TransactionManager
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	agendaRepo AgendaRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		agendaRepo:      agendaRepo,
		userClient:      userClient,
		txManager:       txManager,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи
// Проверка слота и вставка выполняются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: client=%d, barber=%d, date=%s, time=%s",
		req.ClientID, req.BarberID, req.Date, req.Time)

	// 2. Парсим дату в часовом поясе сервиса
	day, err := slots.ParseDate(req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	now := uc.timeProvider.Now().In(uc.location)

	// 3. Проверяем барбера в UserService
	if _, err := uc.userClient.GetBarber(ctx, req.BarberID); err != nil {
		if errors.Is(err, userClient.ErrBarberNotFound) {
			uc.logger.Warn("CreateAppointment: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Расписание барбера
		agenda, err := uc.agendaRepo.GetByBarberID(txCtx, req.BarberID)
		if err != nil && !errors.Is(err, agendaRepo.ErrAgendaNotFound) {
			uc.logger.Error("CreateAppointment: failed to get agenda: %v", err)
			return fmt.Errorf("%w: failed to get agenda: %v", ErrInternal, err)
		}
		if agenda == nil {
			agenda = domain.DefaultAgendaConfig(req.BarberID)
		}

		// 4.2. Дата не в прошлом и не дальше advanceBookingDays
		if err := validateDate(day, now, agenda.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
			return err
		}

		// 4.3. Рабочий день
		shift, ok := agenda.ShiftFor(day)
		if !ok {
			uc.logger.Warn("CreateAppointment: barber=%d does not work on %s", req.BarberID, day.Weekday())
			return ErrBarberDayOff
		}

		// 4.4. Время должно совпадать с одним из слотов расписания
		daySlots, err := slots.GenerateSlots(shift, agenda.Lunch(), agenda.SlotConfig())
		if err != nil {
			uc.logger.Error("CreateAppointment: stored agenda of barber=%d is broken: %v", req.BarberID, err)
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}
		if !containsSlot(daySlots, req.Time) {
			uc.logger.Warn("CreateAppointment: %s is not a slot of barber=%d", req.Time, req.BarberID)
			return ErrInvalidTimeSlot
		}

		// 4.5. minBookingNoticeMinutes для сегодняшнего дня
		if err := validateNotice(day, req.Time, now, agenda.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: %v", err)
			return err
		}

		// 4.6. Записи дня с блокировкой (FOR UPDATE)
		from, to := domain.DayBounds(day, uc.location)
		existing, err := uc.appointmentRepo.FindAppointments(txCtx, req.BarberID, from, to, domain.StatusRejected)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		if len(slots.FilterBooked([]types.TimeString{req.Time}, existing)) == 0 {
			uc.logger.Warn("CreateAppointment: slot %s %s of barber=%d is taken", req.Date, req.Time, req.BarberID)
			return ErrSlotNotAvailable
		}

		// 4.7. Создаем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClientID:  req.ClientID,
			BarberID:  req.BarberID,
			ServiceID: req.ServiceID,
			Date:      from,
			Time:      req.Time,
			Status:    domain.StatusPending,
			Notes:     req.Notes,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot %s %s of barber=%d was taken concurrently", req.Date, req.Time, req.BarberID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:        result.ID,
		ClientID:  result.ClientID,
		BarberID:  result.BarberID,
		ServiceID: result.ServiceID,
		Date:      result.Date,
		Time:      result.Time,
		Status:    string(result.Status),
		Notes:     result.Notes,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}

// validateDate проверяет, что дата не в прошлом и укладывается в advanceBookingDays
func validateDate(day time.Time, now time.Time, advanceBookingDays int) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, day.Location())
	if day.Before(today) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	// advanceBookingDays = 0 - без ограничений
	if advanceBookingDays > 0 && day.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет, что до начала сегодняшнего слота осталось не меньше minBookingNoticeMinutes
func validateNotice(day time.Time, at types.TimeString, now time.Time, minBookingNoticeMinutes int) error {
	if day.Year() != now.Year() || day.YearDay() != now.YearDay() {
		return nil
	}

	slotMinutes, err := at.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	minAllowed := now.Hour()*60 + now.Minute() + minBookingNoticeMinutes
	if slotMinutes < minAllowed {
		return fmt.Errorf("%w: slot %s starts earlier than %d minutes from now", ErrTooLateToBook, at, minBookingNoticeMinutes)
	}

	return nil
}
