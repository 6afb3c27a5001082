package release_hold

import (
	"context"
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

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*UseCase, *memory.HoldRepository, *domain.Hold) {
	t.Helper()

	repo := memory.NewHoldRepository(memory.NewStore())
	h := &domain.Hold{
		ID:         uuid.NewString(),
		ResourceID: "shop",
		CartID:     "cart_1",
		LineItemID: "li_A",
		SlotStart:  time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC),
		SlotEnd:    time.Date(2026, 10, 20, 9, 30, 0, 0, time.UTC),
		Status:     domain.HoldStatusActive,
		ExpiresAt:  now.Add(10 * time.Minute),
	}
	_, err := repo.Create(context.Background(), h)
	require.NoError(t, err)

	uc := NewUseCase(repo, nil, logger.NewNop())
	uc.timeProvider = &mockTimeProvider{now: now}
	return uc, repo, h
}

func status(t *testing.T, repo *memory.HoldRepository, id string) domain.HoldStatus {
	t.Helper()
	h, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return h.Status
}

func TestExecute_ByHoldIDIsIdempotent(t *testing.T) {
	uc, repo, h := setup(t)
	ctx := context.Background()
	req := &Request{CartID: "cart_1", HoldID: h.ID}

	resp, err := uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Released)
	assert.Equal(t, domain.HoldStatusReleased, status(t, repo, h.ID))

	resp, err = uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Zero(t, resp.Released)
	assert.Equal(t, domain.HoldStatusReleased, status(t, repo, h.ID))
}

func TestExecute_ByLineItem(t *testing.T) {
	uc, repo, h := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{CartID: "cart_1", LineItemID: "li_A"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Released)
	assert.Equal(t, domain.HoldStatusReleased, status(t, repo, h.ID))
}

func TestExecute_NoOpCases(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "unknown hold", req: &Request{CartID: "cart_1", HoldID: uuid.NewString()}},
		{name: "malformed hold id", req: &Request{CartID: "cart_1", HoldID: "not-a-uuid"}},
		{name: "unknown line item", req: &Request{CartID: "cart_1", LineItemID: "li_Z"}},
		{name: "other cart", req: &Request{CartID: "cart_2", LineItemID: "li_A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, h := setup(t)

			resp, err := uc.Execute(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Zero(t, resp.Released)
			assert.Equal(t, domain.HoldStatusActive, status(t, repo, h.ID))
		})
	}
}

func TestExecute_LapsedHoldRecordedAsExpired(t *testing.T) {
	uc, repo, h := setup(t)
	uc.timeProvider = &mockTimeProvider{now: h.ExpiresAt.Add(time.Minute)}

	_, err := uc.Execute(context.Background(), &Request{CartID: "cart_1", HoldID: h.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.HoldStatusExpired, status(t, repo, h.ID))
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, h := setup(t)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "missing cart", req: &Request{HoldID: h.ID}},
		{name: "no identifier", req: &Request{CartID: "cart_1"}},
		{name: "both identifiers", req: &Request{CartID: "cart_1", HoldID: h.ID, LineItemID: "li_A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
