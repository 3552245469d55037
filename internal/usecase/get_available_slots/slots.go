package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// GenerateSlots возвращает все времена начала сессий внутри смены
//
// Слоты идут с шагом sessionDuration + breakBetweenSessions, начиная с shift.Start.
// Слот попадает в результат, только если сессия целиком помещается в смену.
// Если сессия задевает обед (sessionEnd > lunch.Start && start < lunch.End),
// генерация продолжается с lunch.End без добавления слота.
// Границы строгие: сессия, заканчивающаяся ровно в lunch.Start или начинающаяся в lunch.End, допустима.
func GenerateSlots(shift domain.ShiftWindow, lunch *domain.LunchWindow, cfg domain.SlotConfig) ([]types.TimeString, error) {
	if cfg.SessionDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: session duration must be positive, got %d", ErrInvalidSlotConfig, cfg.SessionDurationMinutes)
	}
	if cfg.BreakBetweenSessionsMinutes < 0 {
		return nil, fmt.Errorf("%w: break must not be negative, got %d", ErrInvalidSlotConfig, cfg.BreakBetweenSessionsMinutes)
	}

	start, err := shift.Start.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: shift start: %v", ErrInvalidSlotConfig, err)
	}
	end, err := shift.End.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: shift end: %v", ErrInvalidSlotConfig, err)
	}

	hasLunch := lunch != nil
	var lunchStart, lunchEnd int
	if hasLunch {
		if lunchStart, err = lunch.Start.Minutes(); err != nil {
			return nil, fmt.Errorf("%w: lunch start: %v", ErrInvalidSlotConfig, err)
		}
		if lunchEnd, err = lunch.End.Minutes(); err != nil {
			return nil, fmt.Errorf("%w: lunch end: %v", ErrInvalidSlotConfig, err)
		}
	}

	slots := make([]types.TimeString, 0)
	current := start

	for current+cfg.SessionDurationMinutes <= end {
		sessionEnd := current + cfg.SessionDurationMinutes

		if hasLunch && sessionEnd > lunchStart && current < lunchEnd {
			current = lunchEnd
			continue
		}

		// current < end <= 1439, ошибки быть не может
		slots = append(slots, types.MustFromMinutes(current))
		current += cfg.StepMinutes()
	}

	return slots, nil
}

// FilterBooked убирает слоты, на которые уже есть нерассмотренная или одобренная запись
// Сравнение по точному совпадению времени начала, длительность записи не учитывается
func FilterBooked(candidates []types.TimeString, appointments []*domain.Appointment) []types.TimeString {
	booked := make(map[types.TimeString]struct{}, len(appointments))
	for _, a := range appointments {
		if !a.OccupiesSlot() {
			continue
		}
		booked[a.Time] = struct{}{}
	}

	free := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if _, taken := booked[slot]; taken {
			continue
		}
		free = append(free, slot)
	}

	return free
}

// filterByNotice оставляет слоты, которые начинаются не раньше minAllowed минут от полуночи
func filterByNotice(slots []types.TimeString, minAllowed int) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		m, err := slot.Minutes()
		if err != nil || m < minAllowed {
			continue
		}
		result = append(result, slot)
	}
	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	now = now.In(date.Location())
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.Before(nowOnly)
}

func minutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
