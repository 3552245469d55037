package update_agenda

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/agenda"
	"github.com/m04kA/SMC-BarberService/internal/service/agenda/models"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "расписание может менять только сам барбер"
	msgBarberNotFound     = "барбер не найден"
)

type Handler struct {
	service AgendaService
	logger  Logger
}

func NewHandler(service AgendaService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/barbers/{barberId}/agenda
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /barbers/{id}/agenda - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /barbers/{id}/agenda - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpsertAgendaRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /barbers/{id}/agenda - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Upsert(r.Context(), barberID, &req)
	if err != nil {
		switch {
		case errors.Is(err, agenda.ErrAccessDenied):
			h.logger.Warn("PUT /barbers/{id}/agenda - Access denied: barber_id=%d, user_id=%d", barberID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, agenda.ErrBarberNotFound):
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, agenda.ErrInvalidInput):
			h.logger.Warn("PUT /barbers/{id}/agenda - Invalid agenda: barber_id=%d, %v", barberID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /barbers/{id}/agenda - Failed to save agenda: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /barbers/{id}/agenda - Agenda saved: barber_id=%d", barberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
