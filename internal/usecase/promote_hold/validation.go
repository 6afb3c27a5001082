package promote_hold

import (
	"fmt"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.HoldID == "" {
		return fmt.Errorf("%w: hold_id is required", ErrInvalidInput)
	}

	if req.OrderID != nil && len(*req.OrderID) > domain.MaxIDLength {
		return fmt.Errorf("%w: order_id is too long", ErrInvalidInput)
	}

	return nil
}
