package get_availability

import (
	"fmt"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.BlockMinutes != nil {
		if err := validateMinutes("block_minutes", *req.BlockMinutes); err != nil {
			return err
		}
	}

	if req.SlotIncrement != nil {
		if err := validateMinutes("slot_increment", *req.SlotIncrement); err != nil {
			return err
		}
	}

	return nil
}

func validateMinutes(name string, minutes int) error {
	if minutes < domain.MinBlockMinutes {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, name)
	}
	if minutes > domain.MaxBlockMinutes {
		return fmt.Errorf("%w: %s must not exceed %d", ErrInvalidInput, name, domain.MaxBlockMinutes)
	}
	return nil
}
