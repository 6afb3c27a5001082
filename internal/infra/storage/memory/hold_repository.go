package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	"github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/hold"
)

// HoldRepository удержания в памяти; ошибки совпадают с пакетом hold
type HoldRepository struct {
	store *Store
}

func NewHoldRepository(store *Store) *HoldRepository {
	return &HoldRepository{store: store}
}

// LockResource внутри транзакции ресурс уже защищен мьютексом хранилища
func (r *HoldRepository) LockResource(ctx context.Context, resourceID string) error {
	if !inTransaction(ctx) {
		return fmt.Errorf("%w: LockResource - called outside of transaction", hold.ErrTransaction)
	}
	return nil
}

func (r *HoldRepository) Create(ctx context.Context, h *domain.Hold) (*domain.Hold, error) {
	err := r.store.write(ctx, func() error {
		if _, exists := r.store.holds[h.ID]; exists {
			return fmt.Errorf("%w: Create - duplicate id %s", hold.ErrExecQuery, h.ID)
		}
		// аналог частичного уникального индекса по line_item_id
		for _, existing := range r.store.holds {
			if existing.Status == domain.HoldStatusActive && existing.LineItemID == h.LineItemID {
				return fmt.Errorf("%w: line_item_id=%s", hold.ErrHoldExists, h.LineItemID)
			}
		}
		r.store.holds[h.ID] = copyHold(h)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *HoldRepository) GetByID(ctx context.Context, id string) (*domain.Hold, error) {
	var found *domain.Hold
	r.store.read(ctx, func() {
		if h, ok := r.store.holds[id]; ok {
			found = copyHold(h)
		}
	})
	if found == nil {
		return nil, hold.ErrHoldNotFound
	}
	return found, nil
}

func (r *HoldRepository) GetActiveInRange(ctx context.Context, resourceID string, start, end, now time.Time) ([]*domain.Hold, error) {
	holds := make([]*domain.Hold, 0)
	r.store.read(ctx, func() {
		for _, h := range r.store.holds {
			if h.ResourceID == resourceID && h.IsActiveAt(now) && h.Overlaps(start, end) {
				holds = append(holds, copyHold(h))
			}
		}
	})
	sort.Slice(holds, func(i, j int) bool { return holds[i].SlotStart.Before(holds[j].SlotStart) })
	return holds, nil
}

func (r *HoldRepository) Release(ctx context.Context, filter domain.HoldReleaseFilter, now time.Time) (int, error) {
	released := 0
	err := r.store.write(ctx, func() error {
		for _, h := range r.store.holds {
			if !filter.Matches(h) {
				continue
			}
			h.Status = h.ClosingStatus(now)
			h.UpdatedAt = now
			released++
		}
		return nil
	})
	return released, err
}

func (r *HoldRepository) MarkPromoted(ctx context.Context, id string, now time.Time) error {
	return r.store.write(ctx, func() error {
		h, ok := r.store.holds[id]
		if !ok || h.Status != domain.HoldStatusActive {
			return hold.ErrHoldNotActive
		}
		h.Status = domain.HoldStatusPromoted
		h.UpdatedAt = now
		return nil
	})
}

func (r *HoldRepository) ExpireStale(ctx context.Context, now time.Time, limit int) (int, error) {
	expired := 0
	err := r.store.write(ctx, func() error {
		stale := make([]*domain.Hold, 0)
		for _, h := range r.store.holds {
			if h.Status == domain.HoldStatusActive && !now.Before(h.ExpiresAt) {
				stale = append(stale, h)
			}
		}
		sort.Slice(stale, func(i, j int) bool { return stale[i].ExpiresAt.Before(stale[j].ExpiresAt) })
		if len(stale) > limit {
			stale = stale[:limit]
		}
		for _, h := range stale {
			h.Status = domain.HoldStatusExpired
			h.UpdatedAt = now
		}
		expired = len(stale)
		return nil
	})
	return expired, err
}
