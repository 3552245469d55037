package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модель запроса на запись к барберу
type Request struct {
	ClientID  int64            // ID клиента (из X-User-ID)
	BarberID  int64            // ID барбера
	ServiceID *int64           // ID услуги (опционально)
	Date      string           // Дата в формате YYYY-MM-DD
	Time      types.TimeString // Время начала слота "HH:MM"
	Notes     *string          // Комментарий клиента
}

// Response модель ответа с созданной записью
type Response struct {
	ID        int64
	ClientID  int64
	BarberID  int64
	ServiceID *int64
	Date      time.Time
	Time      types.TimeString
	Status    string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
