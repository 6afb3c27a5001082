package release_hold

import (
	"fmt"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CartID == "" {
		return fmt.Errorf("%w: cart_id is required", ErrInvalidInput)
	}

	if req.HoldID == "" && req.LineItemID == "" {
		return fmt.Errorf("%w: hold_id or line_item_id is required", ErrInvalidInput)
	}

	if req.HoldID != "" && req.LineItemID != "" {
		return fmt.Errorf("%w: only one of hold_id and line_item_id may be set", ErrInvalidInput)
	}

	if len(req.CartID) > domain.MaxIDLength || len(req.HoldID) > domain.MaxIDLength || len(req.LineItemID) > domain.MaxIDLength {
		return fmt.Errorf("%w: identifier is too long", ErrInvalidInput)
	}

	return nil
}
