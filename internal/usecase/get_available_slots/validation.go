package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// ParseDate парсит дату YYYY-MM-DD в часовом поясе loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return date, nil
}

// validateAdvanceLimit проверяет, что дата не дальше advanceBookingDays от сегодняшнего дня
func validateAdvanceLimit(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	// advanceBookingDays = 0 - без ограничений
	if advanceBookingDays <= 0 {
		return nil
	}

	now = now.In(requestDate.Location())
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, requestDate.Location()).
		AddDate(0, 0, advanceBookingDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
