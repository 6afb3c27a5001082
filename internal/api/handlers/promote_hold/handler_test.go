package promote_hold

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	promoteHold "github.com/m04kA/SMC-SlotReservationService/internal/usecase/promote_hold"
	"github.com/m04kA/SMC-SlotReservationService/pkg/logger"
)

type stubUseCase struct {
	got *promoteHold.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *promoteHold.Request) (*promoteHold.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &promoteHold.Response{BookingID: "booking_1", HoldID: req.HoldID}, nil
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"hold_id":"hold_1","order_id":"order_1"}`)
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/internal/bookings/promote", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got.OrderID)
	assert.Equal(t, "order_1", *uc.got.OrderID)

	var resp PromoteHoldResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "booking_1", resp.BookingID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid", promoteHold.ErrInvalidInput, http.StatusBadRequest, "INVALID_REQUEST"},
		{"not found", promoteHold.ErrHoldNotFound, http.StatusNotFound, "HOLD_NOT_FOUND"},
		{"expired", promoteHold.ErrHoldExpired, http.StatusGone, "HOLD_EXPIRED"},
		{"already booked", promoteHold.ErrSlotAlreadyBooked, http.StatusConflict, "SLOT_ALREADY_BOOKED"},
		{"internal", promoteHold.ErrInternal, http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()
			body := strings.NewReader(`{"hold_id":"hold_1"}`)
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/internal/bookings/promote", body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}
