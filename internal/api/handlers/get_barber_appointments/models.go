package get_barber_appointments

import (
	"net/url"

	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров date и status
func ToServiceRequest(userID, barberID int64, query url.Values) *models.GetBarberAppointmentsRequest {
	req := &models.GetBarberAppointmentsRequest{
		UserID:   userID,
		BarberID: barberID,
	}

	if date := query.Get("date"); date != "" {
		req.Date = &date
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	return req
}
