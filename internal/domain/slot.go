package domain

import "time"

// Slot candidate interval [Start, End) derived from a Schedule. Never persisted.
type Slot struct {
	Time      string // HH:MM начала слота в часовом поясе расписания
	UTCOffset string // смещение зоны на начало слота, например +02:00
	Start     time.Time
	End       time.Time
	Available bool
}

// Overlaps half-open interval intersection: [aStart, aEnd) ∩ [bStart, bEnd) ≠ ∅.
// Adjacent intervals (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
