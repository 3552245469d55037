package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BarberID int64  // ID барбера
	Date     string // Дата в формате YYYY-MM-DD (в часовом поясе сервиса)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	BarberID        int64
	Date            time.Time          // Начало запрошенного дня
	DurationMinutes int                // Длительность одной сессии
	Slots           []types.TimeString // Свободные времена начала по возрастанию
}
