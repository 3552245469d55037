package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

func ts(values ...string) []types.TimeString {
	out := make([]types.TimeString, len(values))
	for i, v := range values {
		out[i] = types.TimeString(v)
	}
	return out
}

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name  string
		shift domain.ShiftWindow
		lunch *domain.LunchWindow
		cfg   domain.SlotConfig
		want  []types.TimeString
	}{
		{
			name:  "morning shift without lunch, last slot ends at shift end",
			shift: domain.ShiftWindow{Start: "09:00", End: "12:00"},
			cfg:   domain.SlotConfig{SessionDurationMinutes: 30},
			want:  ts("09:00", "09:30", "10:00", "10:30", "11:00", "11:30"),
		},
		{
			name:  "slot ending at lunch start is kept, colliding one jumps to lunch end",
			shift: domain.ShiftWindow{Start: "09:00", End: "14:00"},
			lunch: &domain.LunchWindow{Start: "12:00", End: "13:00"},
			cfg:   domain.SlotConfig{SessionDurationMinutes: 30},
			want:  ts("09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "13:00", "13:30"),
		},
		{
			name:  "lunch covering the whole shift",
			shift: domain.ShiftWindow{Start: "12:00", End: "13:00"},
			lunch: &domain.LunchWindow{Start: "11:00", End: "14:00"},
			cfg:   domain.SlotConfig{SessionDurationMinutes: 30},
			want:  ts(),
		},
		{
			name:  "zero length shift",
			shift: domain.ShiftWindow{Start: "10:00", End: "10:00"},
			cfg:   domain.SlotConfig{SessionDurationMinutes: 30},
			want:  ts(),
		},
		{
			name:  "break between sessions",
			shift: domain.ShiftWindow{Start: "09:00", End: "10:30"},
			cfg:   domain.SlotConfig{SessionDurationMinutes: 30, BreakBetweenSessionsMinutes: 15},
			want:  ts("09:00", "09:45"),
		},
		{
			name:  "session partially overlapping lunch is skipped",
			shift: domain.ShiftWindow{Start: "11:00", End: "14:00"},
			lunch: &domain.LunchWindow{Start: "12:00", End: "13:00"},
			cfg:   domain.SlotConfig{SessionDurationMinutes: 45},
			want:  ts("11:00", "13:00"),
		},
		{
			name:  "lunch outside the shift has no effect",
			shift: domain.ShiftWindow{Start: "14:00", End: "15:00"},
			lunch: &domain.LunchWindow{Start: "12:00", End: "13:00"},
			cfg:   domain.SlotConfig{SessionDurationMinutes: 30},
			want:  ts("14:00", "14:30"),
		},
		{
			name:  "session longer than shift",
			shift: domain.ShiftWindow{Start: "09:00", End: "09:20"},
			cfg:   domain.SlotConfig{SessionDurationMinutes: 30},
			want:  ts(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateSlots(tt.shift, tt.lunch, tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSlots_Invariants(t *testing.T) {
	shift := domain.ShiftWindow{Start: "08:00", End: "19:00"}
	lunch := &domain.LunchWindow{Start: "12:10", End: "13:20"}
	cfg := domain.SlotConfig{SessionDurationMinutes: 40, BreakBetweenSessionsMinutes: 5}

	slots, err := GenerateSlots(shift, lunch, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	lunchStart, _ := lunch.Start.Minutes()
	lunchEnd, _ := lunch.End.Minutes()

	prev := -1
	for _, s := range slots {
		m, err := s.Minutes()
		require.NoError(t, err)

		assert.GreaterOrEqual(t, m, 8*60)
		assert.LessOrEqual(t, m+cfg.SessionDurationMinutes, 19*60)
		assert.False(t, m+cfg.SessionDurationMinutes > lunchStart && m < lunchEnd, "slot %s overlaps lunch", s)

		if prev >= 0 && prev < lunchStart && m < lunchStart {
			assert.Equal(t, cfg.StepMinutes(), m-prev)
		}
		assert.Greater(t, m, prev)
		prev = m
	}
}

func TestGenerateSlots_InvalidConfig(t *testing.T) {
	shift := domain.ShiftWindow{Start: "09:00", End: "12:00"}

	tests := []struct {
		name  string
		shift domain.ShiftWindow
		lunch *domain.LunchWindow
		cfg   domain.SlotConfig
	}{
		{"zero duration", shift, nil, domain.SlotConfig{SessionDurationMinutes: 0}},
		{"negative break", shift, nil, domain.SlotConfig{SessionDurationMinutes: 30, BreakBetweenSessionsMinutes: -5}},
		{"malformed shift start", domain.ShiftWindow{Start: "9h", End: "12:00"}, nil, domain.SlotConfig{SessionDurationMinutes: 30}},
		{"shift end out of range", domain.ShiftWindow{Start: "09:00", End: "25:00"}, nil, domain.SlotConfig{SessionDurationMinutes: 30}},
		{"malformed lunch", shift, &domain.LunchWindow{Start: "noon", End: "13:00"}, domain.SlotConfig{SessionDurationMinutes: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSlots(tt.shift, tt.lunch, tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidSlotConfig)
		})
	}
}

func TestFilterBooked(t *testing.T) {
	candidates := ts("09:00", "09:30", "10:00")

	t.Run("non rejected appointment removes its slot", func(t *testing.T) {
		got := FilterBooked(candidates, []*domain.Appointment{
			{Time: "09:30", Status: domain.StatusPending},
		})
		assert.Equal(t, ts("09:00", "10:00"), got)
	})

	t.Run("rejected appointment keeps the slot", func(t *testing.T) {
		got := FilterBooked(candidates, []*domain.Appointment{
			{Time: "09:00", Status: domain.StatusRejected},
		})
		assert.Equal(t, candidates, got)
	})

	t.Run("exact match only", func(t *testing.T) {
		got := FilterBooked(candidates, []*domain.Appointment{
			{Time: "09:15", Status: domain.StatusApproved},
		})
		assert.Equal(t, candidates, got)
	})

	t.Run("does not modify input", func(t *testing.T) {
		in := ts("09:00", "09:30")
		_ = FilterBooked(in, []*domain.Appointment{{Time: "09:00", Status: domain.StatusApproved}})
		assert.Equal(t, ts("09:00", "09:30"), in)
	})
}

func TestFilterByNotice(t *testing.T) {
	got := filterByNotice(ts("10:00", "10:30", "11:00"), 10*60+30)
	assert.Equal(t, ts("10:30", "11:00"), got)
}
