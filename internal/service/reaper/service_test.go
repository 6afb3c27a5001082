package reaper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	"github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotReservationService/pkg/logger"
)

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type recordingMetrics struct {
	mu      sync.Mutex
	expired int
	sweeps  int
}

func (m *recordingMetrics) HoldsExpired(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expired += n
}

func (m *recordingMetrics) ObserveSweep(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweeps++
}

type failingRepo struct{}

func (failingRepo) ExpireStale(context.Context, time.Time, int) (int, error) {
	return 0, errors.New("connection refused")
}

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func seedHolds(t *testing.T, repo *memory.HoldRepository, expired, active int) {
	t.Helper()
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	create := func(id string, expiresAt time.Time, i int) {
		_, err := repo.Create(context.Background(), &domain.Hold{
			ID:         id,
			ResourceID: "shop",
			CartID:     "cart",
			LineItemID: id,
			SlotStart:  start.Add(time.Duration(i) * time.Hour),
			SlotEnd:    start.Add(time.Duration(i)*time.Hour + 30*time.Minute),
			Status:     domain.HoldStatusActive,
			ExpiresAt:  expiresAt,
		})
		require.NoError(t, err)
	}
	for i := 0; i < expired; i++ {
		create("expired-"+string(rune('a'+i)), now.Add(-time.Duration(i+1)*time.Minute), i)
	}
	for i := 0; i < active; i++ {
		create("active-"+string(rune('a'+i)), now.Add(time.Minute), expired+i)
	}
}

func TestSweep_ExpiresInBatches(t *testing.T) {
	repo := memory.NewHoldRepository(memory.NewStore())
	seedHolds(t, repo, 5, 2)

	metrics := &recordingMetrics{}
	svc := NewService(repo, metrics, logger.NewNop(), time.Second, 2)
	svc.timeProvider = &fixedTime{t: now}

	n, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, metrics.expired)
	assert.Equal(t, 1, metrics.sweeps)

	h, err := repo.GetByID(context.Background(), "active-a")
	require.NoError(t, err)
	assert.Equal(t, domain.HoldStatusActive, h.Status)

	h, err = repo.GetByID(context.Background(), "expired-a")
	require.NoError(t, err)
	assert.Equal(t, domain.HoldStatusExpired, h.Status)

	n, err = svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSweep_ExpiryBoundaryIsInclusive(t *testing.T) {
	repo := memory.NewHoldRepository(memory.NewStore())
	_, err := repo.Create(context.Background(), &domain.Hold{
		ID: "h1", ResourceID: "shop", LineItemID: "li", Status: domain.HoldStatusActive, ExpiresAt: now,
	})
	require.NoError(t, err)

	svc := NewService(repo, nil, logger.NewNop(), 0, 0)
	svc.timeProvider = &fixedTime{t: now}

	n, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSweep_RepositoryError(t *testing.T) {
	svc := NewService(failingRepo{}, nil, logger.NewNop(), time.Second, 10)

	_, err := svc.Sweep(context.Background())
	assert.ErrorIs(t, err, ErrSweep)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	repo := memory.NewHoldRepository(memory.NewStore())
	seedHolds(t, repo, 3, 0)

	svc := NewService(repo, nil, logger.NewNop(), 10*time.Millisecond, 10)
	svc.timeProvider = &fixedTime{t: now}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		h, err := repo.GetByID(context.Background(), "expired-c")
		return err == nil && h.Status == domain.HoldStatusExpired
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancel")
	}
}
