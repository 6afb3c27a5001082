package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func weekdaySchedule(loc *time.Location) *Schedule {
	hours := DayHours{Open: "09:00", Close: "17:00"}
	return &Schedule{
		ResourceID: "shop",
		Location:   loc,
		Weekly: map[time.Weekday]DayHours{
			time.Monday:    hours,
			time.Tuesday:   hours,
			time.Wednesday: hours,
			time.Thursday:  hours,
			time.Friday:    hours,
		},
		Blackouts:            map[string]struct{}{"2026-12-25": {}},
		BlockMinutes:         30,
		SlotIncrementMinutes: 15,
	}
}

func TestSchedule_HoursFor(t *testing.T) {
	s := weekdaySchedule(time.UTC)

	open, close, ok := s.HoursFor(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)) // вторник
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC), open)
	assert.Equal(t, time.Date(2026, 10, 20, 17, 0, 0, 0, time.UTC), close)
}

func TestSchedule_HoursFor_Closed(t *testing.T) {
	s := weekdaySchedule(time.UTC)

	_, _, ok := s.HoursFor(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)) // воскресенье
	assert.False(t, ok, "weekend")

	_, _, ok = s.HoursFor(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok, "blackout")
}

func TestSchedule_HoursFor_TimeZone(t *testing.T) {
	s := weekdaySchedule(time.FixedZone("UTC+3", 3*60*60))

	open, close, ok := s.HoursFor(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 20, 6, 0, 0, 0, time.UTC), open)
	assert.Equal(t, time.Date(2026, 10, 20, 14, 0, 0, 0, time.UTC), close)
	assert.Equal(t, "09:00", s.LocalTime(open).String())
}

func TestSchedule_HoursFor_CloseAtMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	s := &Schedule{
		ResourceID: "shop",
		Location:   loc,
		Weekly:     map[time.Weekday]DayHours{time.Tuesday: {Open: "18:00", Close: "24:00"}},
	}

	open, close, ok := s.HoursFor(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 20, 15, 0, 0, 0, time.UTC), open)
	assert.Equal(t, time.Date(2026, 10, 20, 21, 0, 0, 0, time.UTC), close)

	// последний слот дня заканчивается в полночь
	assert.True(t, s.Contains(time.Date(2026, 10, 20, 20, 30, 0, 0, time.UTC), close))
	assert.False(t, s.Contains(time.Date(2026, 10, 20, 20, 30, 0, 0, time.UTC), close.Add(30*time.Minute)))
}

func TestSchedule_IsDateInPast(t *testing.T) {
	s := weekdaySchedule(time.UTC)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, s.IsDateInPast(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, s.IsDateInPast(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, s.IsDateInPast(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), now))
}

func TestSchedule_Contains(t *testing.T) {
	s := weekdaySchedule(time.FixedZone("UTC+3", 3*60*60))
	at := func(h, m int) time.Time { return time.Date(2026, 10, 20, h, m, 0, 0, time.UTC) }

	// 09:00-17:00 по UTC+3 = 06:00-14:00 UTC
	assert.True(t, s.Contains(at(6, 0), at(6, 30)))
	assert.True(t, s.Contains(at(13, 30), at(14, 0)))
	assert.False(t, s.Contains(at(5, 45), at(6, 15)), "starts before open")
	assert.False(t, s.Contains(at(13, 45), at(14, 15)), "ends after close")
	assert.False(t, s.Contains(time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC), time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)), "closed day")
}
