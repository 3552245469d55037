package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrInvalidDuration возвращается, когда длительность не число и не строка
	ErrInvalidDuration = errors.New("duration must be a number or a string")
)

// Duration длительность из JSON: 30, "30" или "00:30"
// Хранит исходное значение, разбор делает сервис
type Duration string

// UnmarshalJSON принимает число или строку
func (d *Duration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Duration(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ErrInvalidDuration
	}
	*d = Duration(n.String())
	return nil
}

// Request модели

// UpsertAgendaRequest запрос на сохранение расписания барбера
type UpsertAgendaRequest struct {
	UserID                  int64    `json:"-"`
	WorkStart               string   `json:"workStart"`
	WorkEnd                 string   `json:"workEnd"`
	LunchStart              *string  `json:"lunchStart,omitempty"`
	LunchEnd                *string  `json:"lunchEnd,omitempty"`
	SessionDuration         Duration `json:"sessionDuration"`                // минуты или "HH:MM"
	BreakBetweenSessions    Duration `json:"breakBetweenSessions,omitempty"` // минуты или "HH:MM"
	WorkingDays             []int    `json:"workingDays"`                    // 0 = воскресенье
	MinBookingNoticeMinutes int      `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int      `json:"advanceBookingDays"` // 0 = без ограничений
}

// Response модели

// AgendaResponse ответ с расписанием барбера
type AgendaResponse struct {
	BarberID                    int64      `json:"barberId"`
	WorkStart                   string     `json:"workStart"`
	WorkEnd                     string     `json:"workEnd"`
	LunchStart                  *string    `json:"lunchStart,omitempty"`
	LunchEnd                    *string    `json:"lunchEnd,omitempty"`
	SessionDurationMinutes      int        `json:"sessionDurationMinutes"`
	BreakBetweenSessionsMinutes int        `json:"breakBetweenSessionsMinutes"`
	WorkingDays                 []int      `json:"workingDays"`
	MinBookingNoticeMinutes     int        `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays          int        `json:"advanceBookingDays"`
	IsDefault                   bool       `json:"isDefault"`
	UpdatedAt                   *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainAgenda конвертирует domain модель в DTO
func FromDomainAgenda(c *domain.AgendaConfig, isDefault bool) *AgendaResponse {
	if c == nil {
		return nil
	}

	resp := &AgendaResponse{
		BarberID:                    c.BarberID,
		WorkStart:                   c.WorkStart.String(),
		WorkEnd:                     c.WorkEnd.String(),
		SessionDurationMinutes:      c.SessionDurationMinutes,
		BreakBetweenSessionsMinutes: c.BreakBetweenSessionsMinutes,
		WorkingDays:                 make([]int, 0, len(c.WorkingDays)),
		MinBookingNoticeMinutes:     c.MinBookingNoticeMinutes,
		AdvanceBookingDays:          c.AdvanceBookingDays,
		IsDefault:                   isDefault,
	}

	if lunch := c.Lunch(); lunch != nil {
		start, end := lunch.Start.String(), lunch.End.String()
		resp.LunchStart = &start
		resp.LunchEnd = &end
	}

	for _, d := range c.WorkingDays {
		resp.WorkingDays = append(resp.WorkingDays, int(d))
	}

	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
