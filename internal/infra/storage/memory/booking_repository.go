package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	"github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/booking"
)

// BookingRepository бронирования в памяти; ошибки совпадают с пакетом booking
type BookingRepository struct {
	store *Store
}

func NewBookingRepository(store *Store) *BookingRepository {
	return &BookingRepository{store: store}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	err := r.store.write(ctx, func() error {
		for _, existing := range r.store.bookings {
			if existing.HoldID == b.HoldID {
				return fmt.Errorf("%w: hold_id=%s", booking.ErrBookingExists, b.HoldID)
			}
		}
		r.store.bookings[b.ID] = copyBooking(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var found *domain.Booking
	r.store.read(ctx, func() {
		if b, ok := r.store.bookings[id]; ok {
			found = copyBooking(b)
		}
	})
	if found == nil {
		return nil, booking.ErrBookingNotFound
	}
	return found, nil
}

func (r *BookingRepository) GetInRange(ctx context.Context, resourceID string, start, end time.Time) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	r.store.read(ctx, func() {
		for _, b := range r.store.bookings {
			if b.ResourceID == resourceID && b.Overlaps(start, end) {
				bookings = append(bookings, copyBooking(b))
			}
		}
	})
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].SlotStart.Before(bookings[j].SlotStart) })
	return bookings, nil
}
