package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotReservationService/pkg/types"
)

// DayHours opening hours of a single weekday, [Open, Close) in local wall-clock time
type DayHours struct {
	Open  types.TimeString
	Close types.TimeString
}

// Schedule business-hours model of one bookable resource (shop-wide or per service).
// Immutable after load; changed only by configuration.
type Schedule struct {
	ResourceID           string
	Location             *time.Location
	Weekly               map[time.Weekday]DayHours // нет записи = выходной
	Blackouts            map[string]struct{}       // даты в формате DateFormat
	BlockMinutes         int
	SlotIncrementMinutes int
	MinNoticeMinutes     int
}

// HoursFor returns the open and close instants (UTC) of the given calendar date.
// ok is false when the resource is closed that day.
func (s *Schedule) HoursFor(date time.Time) (open, close time.Time, ok bool) {
	day := s.LocalDate(date)

	if _, blackout := s.Blackouts[day.Format(DateFormat)]; blackout {
		return time.Time{}, time.Time{}, false
	}

	hours, found := s.Weekly[day.Weekday()]
	if !found {
		return time.Time{}, time.Time{}, false
	}

	open, err := hours.Open.On(day, s.location())
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	close, err = hours.Close.On(day, s.location())
	if err != nil || !open.Before(close) {
		return time.Time{}, time.Time{}, false
	}

	return open.UTC(), close.UTC(), true
}

// LocalDate normalizes a calendar date (year, month, day) to midnight in the schedule zone
func (s *Schedule) LocalDate(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location())
}

// DateOf returns the calendar date an instant falls on in the schedule zone
func (s *Schedule) DateOf(t time.Time) time.Time {
	return s.LocalDate(t.In(s.location()))
}

// Today returns the current calendar date in the schedule zone
func (s *Schedule) Today(now time.Time) time.Time {
	return s.DateOf(now)
}

// Contains reports whether [start, end) lies within the business hours of start's date
func (s *Schedule) Contains(start, end time.Time) bool {
	open, close, ok := s.HoursFor(s.DateOf(start))
	if !ok {
		return false
	}
	return !start.Before(open) && !end.After(close)
}

// IsDateInPast reports whether the date is before today in the schedule zone
func (s *Schedule) IsDateInPast(date, now time.Time) bool {
	return s.LocalDate(date).Before(s.Today(now))
}

// EarliestStart is the first instant a slot may start at, given the minimum notice
func (s *Schedule) EarliestStart(now time.Time) time.Time {
	return now.Add(time.Duration(s.MinNoticeMinutes) * time.Minute)
}

// LocalTime formats an instant as HH:MM in the schedule zone
func (s *Schedule) LocalTime(t time.Time) types.TimeString {
	return types.NewTimeString(t.In(s.location()))
}

// LocalOffset formats the zone offset in effect at an instant as ±HH:MM.
// On a fall-back day two slots share a LocalTime and differ only by offset.
func (s *Schedule) LocalOffset(t time.Time) string {
	return t.In(s.location()).Format("-07:00")
}

func (s *Schedule) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
