package create_hold

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/booking"
	holdRepo "github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/hold"
	scheduleService "github.com/m04kA/SMC-SlotReservationService/internal/service/schedule"
	"github.com/m04kA/SMC-SlotReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotReservationService/pkg/logger"
	"github.com/m04kA/SMC-SlotReservationService/pkg/txmanager"
)

// Интеграционные тесты конкурентного удержания; нужна БД с применённой миграцией
type pgFixture struct {
	holds   *holdRepo.Repository
	metrics *countingMetrics
	uc      *UseCase
}

func setupPostgres(t *testing.T) *pgFixture {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec("TRUNCATE bookings, holds")
	require.NoError(t, err)

	hours := domain.DayHours{Open: "09:00", Close: "17:00"}
	weekly := map[time.Weekday]domain.DayHours{time.Tuesday: hours}
	schedules, err := scheduleService.NewService([]*domain.Schedule{
		{ResourceID: "shop", Location: time.UTC, Weekly: weekly, BlockMinutes: 30},
		{ResourceID: "annex", Location: time.UTC, Weekly: weekly, BlockMinutes: 30},
	}, "shop", logger.NewNop())
	require.NoError(t, err)

	wrapped := dbmetrics.Wrap(db, nil)
	f := &pgFixture{
		holds:   holdRepo.NewRepository(wrapped),
		metrics: &countingMetrics{},
	}
	f.uc = NewUseCase(
		f.holds,
		bookingRepo.NewRepository(wrapped),
		schedules,
		txmanager.NewTransactionManager(wrapped),
		logger.NewNop(),
		WithHoldTTL(10*time.Minute),
		WithMetrics(f.metrics),
	)
	f.uc.timeProvider = &mockTimeProvider{now: now}
	return f
}

// race запускает n запросов одновременно и раскладывает результаты
func race(t *testing.T, n int, req func(i int) *Request, uc *UseCase) (succeeded, conflicts int) {
	t.Helper()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := uc.Execute(context.Background(), req(i))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotUnavailable):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()
	return succeeded, conflicts
}

func TestExecute_Postgres_ContendedSlotExactlyOneWins(t *testing.T) {
	f := setupPostgres(t)

	const workers = 12
	succeeded, conflicts := race(t, workers, func(i int) *Request {
		start := at(9, 0).Add(time.Duration(i%3) * 10 * time.Minute)
		return &Request{
			ResourceID: "shop",
			CartID:     "cart_1",
			LineItemID: fmt.Sprintf("li_%d", i),
			SlotStart:  start,
			SlotEnd:    start.Add(30 * time.Minute),
		}
	}, f.uc)

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)

	holds, err := f.holds.GetActiveInRange(context.Background(), "shop", at(0, 0), at(23, 0), now)
	require.NoError(t, err)
	assert.Len(t, holds, 1)
}

func TestExecute_Postgres_DisjointSlotsAllSucceed(t *testing.T) {
	f := setupPostgres(t)

	const workers = 12
	succeeded, conflicts := race(t, workers, func(i int) *Request {
		start := at(9, 0).Add(time.Duration(i) * 30 * time.Minute)
		return &Request{
			ResourceID: "shop",
			CartID:     "cart_1",
			LineItemID: fmt.Sprintf("li_%d", i),
			SlotStart:  start,
			SlotEnd:    start.Add(30 * time.Minute),
		}
	}, f.uc)

	assert.Equal(t, workers, succeeded)
	assert.Zero(t, conflicts)
}

func TestExecute_Postgres_SameLineItemAcrossResources(t *testing.T) {
	f := setupPostgres(t)

	const workers = 8
	succeeded, conflicts := race(t, workers, func(i int) *Request {
		resourceID := "shop"
		if i%2 == 1 {
			resourceID = "annex"
		}
		start := at(9, 0).Add(time.Duration(i) * 30 * time.Minute)
		return &Request{
			ResourceID: resourceID,
			CartID:     "cart_1",
			LineItemID: "li_same",
			SlotStart:  start,
			SlotEnd:    start.Add(30 * time.Minute),
		}
	}, f.uc)

	assert.GreaterOrEqual(t, succeeded, 1)
	assert.Equal(t, workers, succeeded+conflicts)

	var active int
	for _, resourceID := range []string{"shop", "annex"} {
		holds, err := f.holds.GetActiveInRange(context.Background(), resourceID, at(0, 0), at(23, 0), now)
		require.NoError(t, err)
		active += len(holds)
	}
	assert.Equal(t, 1, active)
}
