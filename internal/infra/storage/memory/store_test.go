package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	"github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/hold"
)

var (
	now       = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	slotStart = time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
)

func newHold(id, lineItemID string, start time.Time, ttl time.Duration) *domain.Hold {
	return &domain.Hold{
		ID:         id,
		ResourceID: "shop",
		CartID:     "cart_1",
		LineItemID: lineItemID,
		SlotStart:  start,
		SlotEnd:    start.Add(30 * time.Minute),
		Status:     domain.HoldStatusActive,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestDo_RollsBackOnError(t *testing.T) {
	store := NewStore()
	holds := NewHoldRepository(store)
	ctx := context.Background()

	_, err := holds.Create(ctx, newHold("h1", "li_1", slotStart, 15*time.Minute))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Do(ctx, func(txCtx context.Context) error {
		_, err := holds.Release(txCtx, domain.HoldReleaseFilter{HoldID: "h1"}, now)
		require.NoError(t, err)
		_, err = holds.Create(txCtx, newHold("h2", "li_2", slotStart.Add(time.Hour), 15*time.Minute))
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	h1, err := holds.GetByID(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, domain.HoldStatusActive, h1.Status)

	_, err = holds.GetByID(ctx, "h2")
	assert.ErrorIs(t, err, hold.ErrHoldNotFound)
}

func TestDoReadOnly_RejectsWrites(t *testing.T) {
	store := NewStore()
	holds := NewHoldRepository(store)

	err := store.DoReadOnly(context.Background(), func(txCtx context.Context) error {
		_, err := holds.Create(txCtx, newHold("h1", "li_1", slotStart, time.Minute))
		return err
	})
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestHoldRepository_LockResourceRequiresTransaction(t *testing.T) {
	store := NewStore()
	holds := NewHoldRepository(store)

	assert.ErrorIs(t, holds.LockResource(context.Background(), "shop"), hold.ErrTransaction)

	err := store.Do(context.Background(), func(txCtx context.Context) error {
		return holds.LockResource(txCtx, "shop")
	})
	assert.NoError(t, err)
}

func TestHoldRepository_GetActiveInRange(t *testing.T) {
	ctx := context.Background()
	holds := NewHoldRepository(NewStore())

	_, err := holds.Create(ctx, newHold("h1", "li_1", slotStart, 15*time.Minute))
	require.NoError(t, err)
	_, err = holds.Create(ctx, newHold("h2", "li_2", slotStart.Add(time.Hour), -time.Minute)) // уже истек
	require.NoError(t, err)

	got, err := holds.GetActiveInRange(ctx, "shop", slotStart.Add(-time.Hour), slotStart.Add(3*time.Hour), now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "h1", got[0].ID)

	got, err = holds.GetActiveInRange(ctx, "other", slotStart, slotStart.Add(time.Hour), now)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHoldRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	holds := NewHoldRepository(NewStore())

	_, err := holds.Create(ctx, newHold("h1", "li_1", slotStart, 15*time.Minute))
	require.NoError(t, err)

	h, err := holds.GetByID(ctx, "h1")
	require.NoError(t, err)
	h.Status = domain.HoldStatusPromoted

	again, err := holds.GetByID(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, domain.HoldStatusActive, again.Status)
}

func TestHoldRepository_OneActiveHoldPerLineItem(t *testing.T) {
	ctx := context.Background()
	holds := NewHoldRepository(NewStore())

	_, err := holds.Create(ctx, newHold("h1", "li_1", slotStart, 15*time.Minute))
	require.NoError(t, err)

	other := newHold("h2", "li_1", slotStart.Add(time.Hour), 15*time.Minute)
	other.ResourceID = "other"
	_, err = holds.Create(ctx, other)
	assert.ErrorIs(t, err, hold.ErrHoldExists)

	_, err = holds.Release(ctx, domain.HoldReleaseFilter{HoldID: "h1"}, now)
	require.NoError(t, err)
	_, err = holds.Create(ctx, other)
	assert.NoError(t, err)
}

func TestHoldRepository_Release(t *testing.T) {
	ctx := context.Background()
	holds := NewHoldRepository(NewStore())

	_, err := holds.Create(ctx, newHold("h1", "li_1", slotStart, 15*time.Minute))
	require.NoError(t, err)
	_, err = holds.Create(ctx, newHold("h2", "li_2", slotStart.Add(time.Hour), -time.Minute))
	require.NoError(t, err)

	n, err := holds.Release(ctx, domain.HoldReleaseFilter{HoldID: "h1", CartID: "cart_other"}, now)
	require.NoError(t, err)
	assert.Zero(t, n, "other cart")

	n, err = holds.Release(ctx, domain.HoldReleaseFilter{HoldID: "h1", CartID: "cart_1"}, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = holds.Release(ctx, domain.HoldReleaseFilter{LineItemID: "li_2"}, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	h1, _ := holds.GetByID(ctx, "h1")
	h2, _ := holds.GetByID(ctx, "h2")
	assert.Equal(t, domain.HoldStatusReleased, h1.Status)
	assert.Equal(t, domain.HoldStatusExpired, h2.Status)

	n, err = holds.Release(ctx, domain.HoldReleaseFilter{HoldID: "h1"}, now)
	require.NoError(t, err)
	assert.Zero(t, n, "idempotent")
}

func TestHoldRepository_MarkPromoted(t *testing.T) {
	ctx := context.Background()
	holds := NewHoldRepository(NewStore())

	_, err := holds.Create(ctx, newHold("h1", "li_1", slotStart, 15*time.Minute))
	require.NoError(t, err)

	require.NoError(t, holds.MarkPromoted(ctx, "h1", now))
	assert.ErrorIs(t, holds.MarkPromoted(ctx, "h1", now), hold.ErrHoldNotActive)
	assert.ErrorIs(t, holds.MarkPromoted(ctx, "missing", now), hold.ErrHoldNotActive)
}

func TestHoldRepository_ExpireStale(t *testing.T) {
	ctx := context.Background()
	holds := NewHoldRepository(NewStore())

	for i, id := range []string{"h1", "h2", "h3"} {
		_, err := holds.Create(ctx, newHold(id, id, slotStart.Add(time.Duration(i)*time.Hour), -time.Duration(i+1)*time.Minute))
		require.NoError(t, err)
	}
	_, err := holds.Create(ctx, newHold("fresh", "fresh", slotStart.Add(5*time.Hour), time.Minute))
	require.NoError(t, err)

	n, err := holds.ExpireStale(ctx, now, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// самые старые истекают первыми
	h3, _ := holds.GetByID(ctx, "h3")
	assert.Equal(t, domain.HoldStatusExpired, h3.Status)

	n, err = holds.ExpireStale(ctx, now, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	fresh, _ := holds.GetByID(ctx, "fresh")
	assert.Equal(t, domain.HoldStatusActive, fresh.Status)
}

func TestBookingRepository(t *testing.T) {
	ctx := context.Background()
	bookings := NewBookingRepository(NewStore())

	h := newHold("h1", "li_1", slotStart, 15*time.Minute)
	orderID := "order_1"
	b := domain.NewBookingFromHold("b1", h, &orderID, now)

	_, err := bookings.Create(ctx, b)
	require.NoError(t, err)

	_, err = bookings.Create(ctx, domain.NewBookingFromHold("b2", h, nil, now))
	assert.ErrorIs(t, err, booking.ErrBookingExists)

	got, err := bookings.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "order_1", *got.OrderID)

	_, err = bookings.GetByID(ctx, "b2")
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)

	inRange, err := bookings.GetInRange(ctx, "shop", slotStart.Add(15*time.Minute), slotStart.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, inRange, 1)

	inRange, err = bookings.GetInRange(ctx, "shop", slotStart.Add(30*time.Minute), slotStart.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, inRange, "adjacent")
}

func TestDo_Concurrent(t *testing.T) {
	store := NewStore()
	holds := NewHoldRepository(store)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	created := make(chan string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			_ = store.Do(ctx, func(txCtx context.Context) error {
				active, err := holds.GetActiveInRange(txCtx, "shop", slotStart, slotStart.Add(30*time.Minute), now)
				if err != nil || len(active) > 0 {
					return err
				}
				if _, err := holds.Create(txCtx, newHold(id, id, slotStart, 15*time.Minute)); err != nil {
					return err
				}
				created <- id
				return nil
			})
		}(i)
	}

	wg.Wait()
	close(created)

	assert.Len(t, created, 1)
}
