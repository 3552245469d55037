package agenda

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

const tableName = "barber_agenda_config"

// Repository репозиторий расписаний барберов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBarberID получает расписание барбера
func (r *Repository) GetByBarberID(ctx context.Context, barberID int64) (*domain.AgendaConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"work_start",
		"work_end",
		"lunch_start",
		"lunch_end",
		"session_duration_minutes",
		"break_between_sessions_minutes",
		"working_days",
		"min_booking_notice_minutes",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From(tableName).
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarberID - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.AgendaConfig
	var workingDays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.BarberID,
		&cfg.WorkStart,
		&cfg.WorkEnd,
		&cfg.LunchStart,
		&cfg.LunchEnd,
		&cfg.SessionDurationMinutes,
		&cfg.BreakBetweenSessionsMinutes,
		&workingDays,
		&cfg.MinBookingNoticeMinutes,
		&cfg.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAgendaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarberID - scan agenda: %v", ErrScanRow, err)
	}

	cfg.WorkingDays = toWeekdays(workingDays)
	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Upsert создает или полностью заменяет расписание барбера
func (r *Repository) Upsert(ctx context.Context, cfg *domain.AgendaConfig) (*domain.AgendaConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upsertQuery(cfg).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

func upsertQuery(cfg *domain.AgendaConfig) squirrel.InsertBuilder {
	return psqlbuilder.Insert(tableName).
		Columns(
			"barber_id",
			"work_start",
			"work_end",
			"lunch_start",
			"lunch_end",
			"session_duration_minutes",
			"break_between_sessions_minutes",
			"working_days",
			"min_booking_notice_minutes",
			"advance_booking_days",
		).
		Values(
			cfg.BarberID,
			cfg.WorkStart,
			cfg.WorkEnd,
			cfg.LunchStart,
			cfg.LunchEnd,
			cfg.SessionDurationMinutes,
			cfg.BreakBetweenSessionsMinutes,
			fromWeekdays(cfg.WorkingDays),
			cfg.MinBookingNoticeMinutes,
			cfg.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (barber_id) DO UPDATE SET
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			lunch_start = EXCLUDED.lunch_start,
			lunch_end = EXCLUDED.lunch_end,
			session_duration_minutes = EXCLUDED.session_duration_minutes,
			break_between_sessions_minutes = EXCLUDED.break_between_sessions_minutes,
			working_days = EXCLUDED.working_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`)
}

func toWeekdays(days pq.Int64Array) []time.Weekday {
	result := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		result = append(result, time.Weekday(d))
	}
	return result
}

func fromWeekdays(days []time.Weekday) pq.Int64Array {
	result := make(pq.Int64Array, 0, len(days))
	for _, d := range days {
		result = append(result, int64(d))
	}
	return result
}
