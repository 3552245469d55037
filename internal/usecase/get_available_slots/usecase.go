package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	agendaRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/agenda"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// UseCase use case для получения доступных слотов барбера
type UseCase struct {
	appointmentRepo AppointmentRepository
	agendaRepo      AgendaRepository
	location        *time.Location
	timeProvider    TimeProvider
	slotsObserver   SlotsObserver
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс, в котором трактуются даты и время записей
func NewUseCase(
	appointmentRepo AppointmentRepository,
	agendaRepo AgendaRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		agendaRepo:      agendaRepo,
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

// WithSlotsObserver включает запись метрики количества слотов
func (uc *UseCase) WithSlotsObserver(o SlotsObserver) *UseCase {
	uc.slotsObserver = o
	return uc
}

// ComputeAvailableSlots возвращает свободные слоты барбера на дату в формате "HH:MM" по возрастанию
// Некорректная дата даёт пустой список без ошибки. Для строгой проверки используйте ParseDate
func (uc *UseCase) ComputeAvailableSlots(
	ctx context.Context,
	shift domain.ShiftWindow,
	lunch *domain.LunchWindow,
	cfg domain.SlotConfig,
	barberID int64,
	date string,
) ([]string, error) {
	day, err := ParseDate(date, uc.location)
	if err != nil {
		uc.logger.Warn("ComputeAvailableSlots: barber=%d: %v, returning empty list", barberID, err)
		return []string{}, nil
	}

	free, err := uc.availableSlots(ctx, barberID, day, shift, lunch, cfg)
	if err != nil {
		return nil, err
	}

	result := make([]string, len(free))
	for i, slot := range free {
		result[i] = slot.String()
	}
	return result, nil
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: barber=%d, date=%s", req.BarberID, req.Date)

	// 2. Парсим дату в часовом поясе сервиса
	day, err := ParseDate(req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)

	// 3. Получаем расписание барбера
	agenda, err := uc.agendaRepo.GetByBarberID(ctx, req.BarberID)
	if err != nil && !errors.Is(err, agendaRepo.ErrAgendaNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get agenda for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get agenda: %v", ErrInternal, err)
	}
	if agenda == nil {
		agenda = domain.DefaultAgendaConfig(req.BarberID)
		uc.logger.Info("GetAvailableSlots: using default agenda for barber=%d", req.BarberID)
	}

	resp := &Response{
		BarberID:        req.BarberID,
		Date:            day,
		DurationMinutes: agenda.SessionDurationMinutes,
		Slots:           []types.TimeString{},
	}

	// 4. Прошедшие дни - пустой список
	if isDateInPast(day, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date)
		return uc.respond(resp), nil
	}

	// 5. Ограничение на запись заранее
	if err := validateAdvanceLimit(day, now, agenda.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: barber=%d: %v", req.BarberID, err)
		return nil, err
	}

	// 6. Выходной день
	shift, ok := agenda.ShiftFor(day)
	if !ok {
		uc.logger.Info("GetAvailableSlots: barber=%d does not work on %s", req.BarberID, day.Weekday())
		return uc.respond(resp), nil
	}

	// 7. Генерация и фильтрация занятых слотов
	free, err := uc.availableSlots(ctx, req.BarberID, day, shift, agenda.Lunch(), agenda.SlotConfig())
	if err != nil {
		if errors.Is(err, ErrInvalidSlotConfig) {
			uc.logger.Error("GetAvailableSlots: stored agenda of barber=%d is broken: %v", req.BarberID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	// 8. Для сегодняшнего дня убираем слоты раньше now + minBookingNotice
	if isSameDay(day, now) {
		free = filterByNotice(free, minutesSinceMidnight(now)+agenda.MinBookingNoticeMinutes)
	}

	resp.Slots = free

	uc.logger.Info("GetAvailableSlots: %d slots for barber=%d, date=%s", len(free), req.BarberID, req.Date)

	return uc.respond(resp), nil
}

// availableSlots генерирует слоты смены и убирает уже занятые записями
func (uc *UseCase) availableSlots(
	ctx context.Context,
	barberID int64,
	day time.Time,
	shift domain.ShiftWindow,
	lunch *domain.LunchWindow,
	cfg domain.SlotConfig,
) ([]types.TimeString, error) {
	candidates, err := GenerateSlots(shift, lunch, cfg)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	from, to := domain.DayBounds(day, uc.location)
	appointments, err := uc.appointmentRepo.FindAppointments(ctx, barberID, from, to, domain.StatusRejected)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	return FilterBooked(candidates, appointments), nil
}

func (uc *UseCase) respond(resp *Response) *Response {
	if uc.slotsObserver != nil {
		uc.slotsObserver.ObserveSlotsReturned(len(resp.Slots))
	}
	return resp
}
