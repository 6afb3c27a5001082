package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	"github.com/m04kA/SMC-SlotReservationService/pkg/logger"
)

func testSchedules() []*domain.Schedule {
	return []*domain.Schedule{
		{
			ResourceID: "shop",
			Location:   time.UTC,
			Weekly: map[time.Weekday]domain.DayHours{
				time.Tuesday: {Open: "09:00", Close: "17:00"},
			},
			Blackouts:            map[string]struct{}{"2026-12-25": {}, "2026-12-24": {}},
			BlockMinutes:         30,
			SlotIncrementMinutes: 15,
		},
		{
			ResourceID:   "spa",
			Location:     time.UTC,
			Weekly:       map[time.Weekday]domain.DayHours{},
			BlockMinutes: 60,
		},
	}
}

func TestNewService_Validation(t *testing.T) {
	_, err := NewService(testSchedules(), "missing", logger.NewNop())
	assert.ErrorIs(t, err, ErrInvalidInput)

	dup := append(testSchedules(), testSchedules()[0])
	_, err = NewService(dup, "shop", logger.NewNop())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Get(t *testing.T) {
	svc, err := NewService(testSchedules(), "shop", logger.NewNop())
	require.NoError(t, err)

	s, err := svc.Get("")
	require.NoError(t, err)
	assert.Equal(t, "shop", s.ResourceID)

	s, err = svc.Get("spa")
	require.NoError(t, err)
	assert.Equal(t, "spa", s.ResourceID)

	_, err = svc.Get("gym")
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestService_GetSchedule(t *testing.T) {
	svc, err := NewService(testSchedules(), "shop", logger.NewNop())
	require.NoError(t, err)

	resp, err := svc.GetSchedule(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "shop", resp.ResourceID)
	assert.Equal(t, "UTC", resp.Timezone)
	assert.Equal(t, "09:00", resp.Hours["tuesday"].Open)
	assert.NotContains(t, resp.Hours, "monday")
	assert.Equal(t, []string{"2026-12-24", "2026-12-25"}, resp.BlackoutDates)
}
