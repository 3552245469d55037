package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	agendaRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/agenda"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberService/internal/integrations/userservice"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

var brt = time.FixedZone("BRT", -3*60*60)

// понедельник 10.03.2025 08:00
var monday8am = time.Date(2025, 3, 10, 8, 0, 0, 0, brt)

type memoryAppointmentRepo struct {
	items     []*domain.Appointment
	createErr error
	findErr   error
	nextID    int64
}

func (m *memoryAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	a.ID = m.nextID
	a.CreatedAt = monday8am
	a.UpdatedAt = monday8am
	m.items = append(m.items, a)
	return a, nil
}

func (m *memoryAppointmentRepo) FindAppointments(ctx context.Context, barberID int64, from, to time.Time, excludeStatus domain.AppointmentStatus) ([]*domain.Appointment, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.Appointment
	for _, a := range m.items {
		if a.BarberID == barberID && a.Status != excludeStatus && !a.Date.Before(from) && !a.Date.After(to) {
			result = append(result, a)
		}
	}
	return result, nil
}

type fakeAgendaRepo struct {
	agenda *domain.AgendaConfig
}

func (f *fakeAgendaRepo) GetByBarberID(ctx context.Context, barberID int64) (*domain.AgendaConfig, error) {
	if f.agenda == nil {
		return nil, agendaRepo.ErrAgendaNotFound
	}
	return f.agenda, nil
}

type fakeUserClient struct {
	err error
}

func (f *fakeUserClient) GetBarber(ctx context.Context, barberID int64) (*userservice.Barber, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &userservice.Barber{ID: barberID, Name: "Joao"}, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fixture struct {
	repo   *memoryAppointmentRepo
	agenda *fakeAgendaRepo
	users  *fakeUserClient
	tx     *fakeTxManager
	uc     *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		repo:   &memoryAppointmentRepo{},
		agenda: &fakeAgendaRepo{},
		users:  &fakeUserClient{},
		tx:     &fakeTxManager{},
	}
	f.uc = NewUseCase(f.repo, f.agenda, f.users, f.tx, brt, logger.NewNop()).
		WithTimeProvider(fixedTime{t: now})
	return f
}

func validRequest() *Request {
	return &Request{
		ClientID: 100,
		BarberID: 1,
		Date:     "2025-03-11",
		Time:     "10:00",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(monday8am)
	req := validRequest()
	req.Time = "9:30"
	req.ServiceID = ptr.Ptr(int64(4))
	req.Notes = ptr.Ptr("degradê")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, types.TimeString("09:30"), resp.Time)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.True(t, resp.Date.Equal(time.Date(2025, 3, 11, 0, 0, 0, 0, brt)))
	assert.Equal(t, int64(4), *resp.ServiceID)
	assert.Equal(t, 1, f.tx.calls)
}

func TestExecute_SameSlotTwice(t *testing.T) {
	f := newFixture(monday8am)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	other := validRequest()
	other.ClientID = 200
	_, err = f.uc.Execute(context.Background(), other)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_RejectedAppointmentFreesSlot(t *testing.T) {
	f := newFixture(monday8am)
	f.repo.items = append(f.repo.items, &domain.Appointment{
		ID:       50,
		BarberID: 1,
		ClientID: 300,
		Date:     time.Date(2025, 3, 11, 0, 0, 0, 0, brt),
		Time:     "10:00",
		Status:   domain.StatusRejected,
	})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_ConcurrentInsertMapsToSlotNotAvailable(t *testing.T) {
	f := newFixture(monday8am)
	f.repo.createErr = appointmentRepo.ErrSlotTaken

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_Errors(t *testing.T) {
	limited := domain.DefaultAgendaConfig(1)
	limited.AdvanceBookingDays = 3

	noticed := domain.DefaultAgendaConfig(1)
	noticed.MinBookingNoticeMinutes = 120

	tests := []struct {
		name     string
		now      time.Time
		mutate   func(r *Request)
		agenda   *domain.AgendaConfig
		userErr  error
		findErr  error
		expected error
	}{
		{name: "missing client", mutate: func(r *Request) { r.ClientID = 0 }, expected: ErrInvalidInput},
		{name: "client equals barber", mutate: func(r *Request) { r.ClientID = r.BarberID }, expected: ErrInvalidInput},
		{name: "malformed time", mutate: func(r *Request) { r.Time = "10h" }, expected: ErrInvalidInput},
		{name: "malformed date", mutate: func(r *Request) { r.Date = "amanhã" }, expected: ErrInvalidDate},
		{name: "past date", mutate: func(r *Request) { r.Date = "2025-03-07" }, expected: ErrInvalidDate},
		{name: "too far", mutate: func(r *Request) { r.Date = "2025-03-14" }, agenda: limited, expected: ErrDateTooFarInFuture},
		{name: "sunday", mutate: func(r *Request) { r.Date = "2025-03-16" }, expected: ErrBarberDayOff},
		{name: "off grid time", mutate: func(r *Request) { r.Time = "10:15" }, expected: ErrInvalidTimeSlot},
		{name: "lunch time", mutate: func(r *Request) { r.Time = "12:00" }, expected: ErrInvalidTimeSlot},
		{name: "notice window", now: time.Date(2025, 3, 11, 9, 0, 0, 0, brt), agenda: noticed, expected: ErrTooLateToBook},
		{name: "barber not found", userErr: userservice.ErrBarberNotFound, expected: ErrBarberNotFound},
		{name: "user service down", userErr: userservice.ErrUnavailable, expected: ErrInternal},
		{name: "store failure", findErr: errors.New("conn reset"), expected: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			if now.IsZero() {
				now = monday8am
			}
			f := newFixture(now)
			f.agenda.agenda = tt.agenda
			f.users.err = tt.userErr
			f.repo.findErr = tt.findErr

			req := validRequest()
			if tt.mutate != nil {
				tt.mutate(req)
			}

			resp, err := f.uc.Execute(context.Background(), req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.expected)
			assert.Empty(t, f.repo.items)
		})
	}
}

func TestValidateNotice(t *testing.T) {
	day := time.Date(2025, 3, 11, 0, 0, 0, 0, brt)
	now := time.Date(2025, 3, 11, 9, 0, 0, 0, brt)

	assert.NoError(t, validateNotice(day, "11:00", now, 120))
	assert.ErrorIs(t, validateNotice(day, "10:30", now, 120), ErrTooLateToBook)
	assert.NoError(t, validateNotice(day.AddDate(0, 0, 1), "08:00", now, 120))
}
