package promote_hold

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	"github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotReservationService/pkg/logger"
)

type mockTimeProvider struct {
	now time.Time
}

func (m *mockTimeProvider) Now() time.Time {
	return m.now
}

type outcomeMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *outcomeMetrics) PromotionOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcome]++
}

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *UseCase
	holds    *memory.HoldRepository
	bookings *memory.BookingRepository
	metrics  *outcomeMetrics
}

func setup(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		holds:    memory.NewHoldRepository(store),
		bookings: memory.NewBookingRepository(store),
		metrics:  &outcomeMetrics{outcomes: map[string]int{}},
	}
	f.uc = NewUseCase(f.holds, f.bookings, store, f.metrics, logger.NewNop())
	f.uc.timeProvider = &mockTimeProvider{now: now}
	return f
}

func (f *fixture) addHold(t *testing.T, lineItemID string, start time.Time, expiresAt time.Time) *domain.Hold {
	t.Helper()
	h := &domain.Hold{
		ID:         uuid.NewString(),
		ResourceID: "shop",
		CartID:     "cart_1",
		LineItemID: lineItemID,
		SlotStart:  start,
		SlotEnd:    start.Add(30 * time.Minute),
		Status:     domain.HoldStatusActive,
		ExpiresAt:  expiresAt,
		CreatedAt:  now,
	}
	_, err := f.holds.Create(context.Background(), h)
	require.NoError(t, err)
	return h
}

func slot(h, m int) time.Time {
	return time.Date(2026, 10, 20, h, m, 0, 0, time.UTC)
}

func TestExecute_PromotesExactlyOnce(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	h := f.addHold(t, "li_A", slot(9, 0), now.Add(10*time.Minute))
	orderID := "order_1"

	resp, err := f.uc.Execute(ctx, &Request{HoldID: h.ID, OrderID: &orderID})
	require.NoError(t, err)
	assert.Equal(t, h.ID, resp.HoldID)
	assert.Equal(t, slot(9, 0), resp.SlotStart)

	booking, err := f.bookings.GetByID(ctx, resp.BookingID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, "order_1", *booking.OrderID)
	assert.Equal(t, "li_A", booking.LineItemID)

	stored, err := f.holds.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.HoldStatusPromoted, stored.Status)

	_, err = f.uc.Execute(ctx, &Request{HoldID: h.ID})
	assert.ErrorIs(t, err, ErrHoldNotFound)

	assert.Equal(t, 1, f.metrics.outcomes[outcomePromoted])
	assert.Equal(t, 1, f.metrics.outcomes[outcomeNotFound])
}

func TestExecute_ExpiredByClockWithoutReaper(t *testing.T) {
	f := setup(t)
	h := f.addHold(t, "li_A", slot(9, 0), now) // expires_at == now

	_, err := f.uc.Execute(context.Background(), &Request{HoldID: h.ID})
	assert.ErrorIs(t, err, ErrHoldExpired)

	bookings, err := f.bookings.GetInRange(context.Background(), "shop", slot(0, 0), slot(23, 0))
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestExecute_ExpiredByStatus(t *testing.T) {
	f := setup(t)
	h := f.addHold(t, "li_A", slot(9, 0), now.Add(-time.Minute))
	_, err := f.holds.ExpireStale(context.Background(), now, 10)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{HoldID: h.ID})
	assert.ErrorIs(t, err, ErrHoldExpired)
	assert.Equal(t, 1, f.metrics.outcomes[outcomeExpired])
}

func TestExecute_ReleasedHoldNotFound(t *testing.T) {
	f := setup(t)
	h := f.addHold(t, "li_A", slot(9, 0), now.Add(10*time.Minute))
	_, err := f.holds.Release(context.Background(), domain.HoldReleaseFilter{HoldID: h.ID}, now)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{HoldID: h.ID})
	assert.ErrorIs(t, err, ErrHoldNotFound)
}

func TestExecute_UnknownHold(t *testing.T) {
	f := setup(t)

	_, err := f.uc.Execute(context.Background(), &Request{HoldID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrHoldNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{HoldID: "garbage"})
	assert.ErrorIs(t, err, ErrHoldNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConflictingBookingDetected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// бронирование, созданное в обход удержаний
	outOfBand := domain.NewBookingFromHold(uuid.NewString(), &domain.Hold{
		ID: uuid.NewString(), ResourceID: "shop", SlotStart: slot(9, 15), SlotEnd: slot(9, 45),
	}, nil, now)
	_, err := f.bookings.Create(ctx, outOfBand)
	require.NoError(t, err)

	h := f.addHold(t, "li_A", slot(9, 0), now.Add(10*time.Minute))

	_, err = f.uc.Execute(ctx, &Request{HoldID: h.ID})
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	assert.Equal(t, 1, f.metrics.outcomes[outcomeAlreadyBooked])

	stored, err := f.holds.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.HoldStatusActive, stored.Status, "rolled back")
}

func TestExecute_ConcurrentPromotionsOfSameHold(t *testing.T) {
	f := setup(t)
	h := f.addHold(t, "li_A", slot(9, 0), now.Add(10*time.Minute))

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), &Request{HoldID: h.ID})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrHoldNotFound)
	}
	assert.Equal(t, 1, succeeded)
}
