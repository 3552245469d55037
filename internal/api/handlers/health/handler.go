package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
)

const (
	pingTimeout = 2 * time.Second

	msgDatabaseUnavailable = "база данных недоступна"
)

// Pinger проверка доступности зависимости (dbmetrics.DB)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

type StatusResponse struct {
	Status string `json:"status"`
}

type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

// Live GET /healthz, процесс жив
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// Ready GET /readyz, сервис готов принимать запросы
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("GET /readyz - Database ping failed: %v", err)
		handlers.RespondServiceUnavailable(w, msgDatabaseUnavailable)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Status: "ready"})
}
