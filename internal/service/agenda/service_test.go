package agenda

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	agendaRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/agenda"
	"github.com/m04kA/SMC-BarberService/internal/integrations/userservice"
	"github.com/m04kA/SMC-BarberService/internal/service/agenda/models"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
)

type fakeAgendaRepo struct {
	stored    map[int64]*domain.AgendaConfig
	getErr    error
	upsertErr error
}

func newFakeAgendaRepo() *fakeAgendaRepo {
	return &fakeAgendaRepo{stored: map[int64]*domain.AgendaConfig{}}
}

func (f *fakeAgendaRepo) GetByBarberID(ctx context.Context, barberID int64) (*domain.AgendaConfig, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cfg, ok := f.stored[barberID]
	if !ok {
		return nil, agendaRepo.ErrAgendaNotFound
	}
	return cfg, nil
}

func (f *fakeAgendaRepo) Upsert(ctx context.Context, cfg *domain.AgendaConfig) (*domain.AgendaConfig, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	saved := *cfg
	saved.ID = 7
	saved.UpdatedAt = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	f.stored[cfg.BarberID] = &saved
	return &saved, nil
}

type fakeUserClient struct {
	err error
}

func (f *fakeUserClient) GetBarber(ctx context.Context, barberID int64) (*userservice.Barber, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &userservice.Barber{ID: barberID, Name: "Carlos"}, nil
}

func validRequest() *models.UpsertAgendaRequest {
	return &models.UpsertAgendaRequest{
		UserID:                  1,
		WorkStart:               "08:00",
		WorkEnd:                 "17:00",
		LunchStart:              ptr.Ptr("12:00"),
		LunchEnd:                ptr.Ptr("13:00"),
		SessionDuration:         "45",
		BreakBetweenSessions:    "00:15",
		WorkingDays:             []int{2, 3, 4, 5, 6, 6},
		MinBookingNoticeMinutes: 60,
		AdvanceBookingDays:      30,
	}
}

func TestGet_Defaults(t *testing.T) {
	svc := NewService(newFakeAgendaRepo(), nil, logger.NewNop())

	resp, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, "09:00", resp.WorkStart)
	assert.Equal(t, "18:00", resp.WorkEnd)
	assert.Equal(t, ptr.Ptr("12:00"), resp.LunchStart)
	assert.Equal(t, 30, resp.SessionDurationMinutes)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, resp.WorkingDays)
	assert.Nil(t, resp.UpdatedAt)
}

func TestGet_Errors(t *testing.T) {
	repo := newFakeAgendaRepo()
	repo.getErr = errors.New("conn refused")
	svc := NewService(repo, nil, logger.NewNop())

	_, err := svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsert(t *testing.T) {
	repo := newFakeAgendaRepo()
	svc := NewService(repo, &fakeUserClient{}, logger.NewNop())

	resp, err := svc.Upsert(context.Background(), 1, validRequest())
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, 45, resp.SessionDurationMinutes)
	assert.Equal(t, 15, resp.BreakBetweenSessionsMinutes)
	assert.Equal(t, []int{2, 3, 4, 5, 6}, resp.WorkingDays)
	require.NotNil(t, resp.UpdatedAt)

	got, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
	assert.Equal(t, "08:00", got.WorkStart)
}

func TestUpsert_WithoutLunch(t *testing.T) {
	req := validRequest()
	req.LunchStart, req.LunchEnd = nil, nil
	req.BreakBetweenSessions = ""

	resp, err := NewService(newFakeAgendaRepo(), nil, logger.NewNop()).Upsert(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Nil(t, resp.LunchStart)
	assert.Equal(t, 0, resp.BreakBetweenSessionsMinutes)
}

func TestUpsert_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *models.UpsertAgendaRequest)
	}{
		{"bad work start", func(r *models.UpsertAgendaRequest) { r.WorkStart = "9h" }},
		{"end before start", func(r *models.UpsertAgendaRequest) { r.WorkEnd = "07:00" }},
		{"only lunch start", func(r *models.UpsertAgendaRequest) { r.LunchEnd = nil }},
		{"lunch reversed", func(r *models.UpsertAgendaRequest) { r.LunchStart, r.LunchEnd = ptr.Ptr("13:00"), ptr.Ptr("12:00") }},
		{"lunch outside shift", func(r *models.UpsertAgendaRequest) { r.LunchEnd = ptr.Ptr("18:00") }},
		{"session garbage", func(r *models.UpsertAgendaRequest) { r.SessionDuration = "half hour" }},
		{"session too short", func(r *models.UpsertAgendaRequest) { r.SessionDuration = "2" }},
		{"session too long", func(r *models.UpsertAgendaRequest) { r.SessionDuration = "09:00" }},
		{"break too long", func(r *models.UpsertAgendaRequest) { r.BreakBetweenSessions = "300" }},
		{"no working days", func(r *models.UpsertAgendaRequest) { r.WorkingDays = nil }},
		{"weekday out of range", func(r *models.UpsertAgendaRequest) { r.WorkingDays = []int{1, 7} }},
		{"negative notice", func(r *models.UpsertAgendaRequest) { r.MinBookingNoticeMinutes = -1 }},
		{"advance too far", func(r *models.UpsertAgendaRequest) { r.AdvanceBookingDays = 400 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAgendaRepo()
			req := validRequest()
			tt.modify(req)

			_, err := NewService(repo, nil, logger.NewNop()).Upsert(context.Background(), 1, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.stored)
		})
	}
}

func TestUpsert_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewService(newFakeAgendaRepo(), nil, logger.NewNop()).Upsert(ctx, 2, validRequest())
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = NewService(newFakeAgendaRepo(), &fakeUserClient{err: userservice.ErrBarberNotFound}, logger.NewNop()).
		Upsert(ctx, 1, validRequest())
	assert.ErrorIs(t, err, ErrBarberNotFound)

	_, err = NewService(newFakeAgendaRepo(), &fakeUserClient{err: userservice.ErrUnavailable}, logger.NewNop()).
		Upsert(ctx, 1, validRequest())
	assert.ErrorIs(t, err, ErrInternal)

	repo := newFakeAgendaRepo()
	repo.upsertErr = errors.New("deadlock")
	_, err = NewService(repo, nil, logger.NewNop()).Upsert(ctx, 1, validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var req models.UpsertAgendaRequest

	require.NoError(t, json.Unmarshal([]byte(`{"sessionDuration": 30, "breakBetweenSessions": "00:10"}`), &req))
	assert.Equal(t, models.Duration("30"), req.SessionDuration)
	assert.Equal(t, models.Duration("00:10"), req.BreakBetweenSessions)

	assert.Error(t, json.Unmarshal([]byte(`{"sessionDuration": true}`), &req))
}
