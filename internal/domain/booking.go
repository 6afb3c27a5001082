package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	// BookingStatusCancelled выставляется внешней системой, движок только учитывает его
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a confirmed reservation created only by promoting a valid Hold
type Booking struct {
	ID         string
	HoldID     string
	ResourceID string
	CartID     string
	LineItemID string
	OrderID    *string
	SlotStart  time.Time
	SlotEnd    time.Time
	Status     BookingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}

// Overlaps returns true if the booking is active and intersects [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.IsActive() && Overlaps(b.SlotStart, b.SlotEnd, start, end)
}

// NewBookingFromHold builds the booking a hold is promoted into
func NewBookingFromHold(id string, h *Hold, orderID *string, now time.Time) *Booking {
	return &Booking{
		ID:         id,
		HoldID:     h.ID,
		ResourceID: h.ResourceID,
		CartID:     h.CartID,
		LineItemID: h.LineItemID,
		OrderID:    orderID,
		SlotStart:  h.SlotStart,
		SlotEnd:    h.SlotEnd,
		Status:     BookingStatusConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
