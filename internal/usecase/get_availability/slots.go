package get_availability

import (
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// generateSlots строит кандидатов [start, start+block) от открытия с шагом increment,
// пока слот целиком помещается до закрытия
func generateSlots(schedule *domain.Schedule, open, close time.Time, block, increment time.Duration) []domain.Slot {
	slots := make([]domain.Slot, 0)

	for start := open; !start.Add(block).After(close); start = start.Add(increment) {
		slots = append(slots, domain.Slot{
			Time:      schedule.LocalTime(start).String(),
			UTCOffset: schedule.LocalOffset(start),
			Start:     start,
			End:       start.Add(block),
		})
	}

	return slots
}

// markAvailability слот доступен, если начинается не раньше earliest
// и не пересекается ни с активным удержанием, ни с бронированием
func markAvailability(slots []domain.Slot, holds []*domain.Hold, bookings []*domain.Booking, earliest, now time.Time) {
	for i := range slots {
		slot := &slots[i]
		slot.Available = !slot.Start.Before(earliest) &&
			!overlapsHold(slot, holds, now) &&
			!overlapsBooking(slot, bookings)
	}
}

func overlapsHold(slot *domain.Slot, holds []*domain.Hold, now time.Time) bool {
	for _, h := range holds {
		// истечение проверяется здесь же, не полагаясь на reaper
		if h.IsActiveAt(now) && h.Overlaps(slot.Start, slot.End) {
			return true
		}
	}
	return false
}

func overlapsBooking(slot *domain.Slot, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.Overlaps(slot.Start, slot.End) {
			return true
		}
	}
	return false
}
