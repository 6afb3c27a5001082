package domain

import "time"

// HoldStatus represents the lifecycle state of a hold
type HoldStatus string

const (
	HoldStatusActive   HoldStatus = "active"
	HoldStatusReleased HoldStatus = "released"
	HoldStatusExpired  HoldStatus = "expired"
	HoldStatusPromoted HoldStatus = "promoted"
)

// Hold is a time-bounded exclusive claim on [SlotStart, SlotEnd) of a resource
type Hold struct {
	ID         string
	ResourceID string
	CartID     string
	LineItemID string
	SlotStart  time.Time
	SlotEnd    time.Time
	Status     HoldStatus
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActiveAt returns true if the hold still blocks its slot at the given instant.
// Expiry is evaluated here, independent of whether the reaper has run.
func (h *Hold) IsActiveAt(now time.Time) bool {
	return h.Status == HoldStatusActive && now.Before(h.ExpiresAt)
}

// IsExpiredAt returns true if the hold lapsed (by status or by clock) before promotion
func (h *Hold) IsExpiredAt(now time.Time) bool {
	return h.Status == HoldStatusExpired || (h.Status == HoldStatusActive && !now.Before(h.ExpiresAt))
}

// IsTerminal returns true for released, expired and promoted holds
func (h *Hold) IsTerminal() bool {
	return h.Status != HoldStatusActive
}

// Overlaps returns true if the hold interval intersects [start, end)
func (h *Hold) Overlaps(start, end time.Time) bool {
	return Overlaps(h.SlotStart, h.SlotEnd, start, end)
}

// ClosingStatus is the terminal status for a hold being released at now:
// holds that already lapsed are recorded as expired
func (h *Hold) ClosingStatus(now time.Time) HoldStatus {
	if !now.Before(h.ExpiresAt) {
		return HoldStatusExpired
	}
	return HoldStatusReleased
}

// HoldReleaseFilter selects active holds to release. Empty fields match anything,
// but at least one of HoldID / LineItemID must be set.
type HoldReleaseFilter struct {
	HoldID     string
	LineItemID string
	CartID     string
}

// Matches reports whether an active hold is selected by the filter
func (f HoldReleaseFilter) Matches(h *Hold) bool {
	if f.HoldID == "" && f.LineItemID == "" {
		return false
	}
	if f.HoldID != "" && h.ID != f.HoldID {
		return false
	}
	if f.LineItemID != "" && h.LineItemID != f.LineItemID {
		return false
	}
	if f.CartID != "" && h.CartID != f.CartID {
		return false
	}
	return h.Status == HoldStatusActive
}
