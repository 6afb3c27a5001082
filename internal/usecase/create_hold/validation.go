package create_hold

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CartID == "" {
		return fmt.Errorf("%w: cart_id is required", ErrInvalidInput)
	}
	if len(req.CartID) > domain.MaxIDLength {
		return fmt.Errorf("%w: cart_id is too long", ErrInvalidInput)
	}

	if req.LineItemID == "" {
		return fmt.Errorf("%w: line_item_id is required", ErrInvalidInput)
	}
	if len(req.LineItemID) > domain.MaxIDLength {
		return fmt.Errorf("%w: line_item_id is too long", ErrInvalidInput)
	}

	if req.SlotStart.IsZero() || req.SlotEnd.IsZero() {
		return fmt.Errorf("%w: slot_start and slot_end are required", ErrInvalidInput)
	}

	if !req.SlotEnd.After(req.SlotStart) {
		return fmt.Errorf("%w: slot_end must be after slot_start", ErrInvalidInput)
	}

	if req.SlotEnd.Sub(req.SlotStart) > domain.MaxHoldDuration {
		return fmt.Errorf("%w: slot must not exceed %s", ErrInvalidInput, domain.MaxHoldDuration)
	}

	return nil
}

// validateSlotTiming проверяет минимальное время до начала и попадание в рабочие часы
func validateSlotTiming(schedule *domain.Schedule, start, end, now time.Time) error {
	if start.Before(schedule.EarliestStart(now)) {
		return fmt.Errorf("%w: slot starts too soon, minimum notice is %d minutes",
			ErrInvalidInput, schedule.MinNoticeMinutes)
	}

	if !schedule.Contains(start, end) {
		return fmt.Errorf("%w: slot is outside business hours", ErrInvalidInput)
	}

	return nil
}
