package promote_hold

import promoteHold "github.com/m04kA/SMC-SlotReservationService/internal/usecase/promote_hold"

// PromoteHoldRequest HTTP request model
type PromoteHoldRequest struct {
	HoldID  string  `json:"hold_id"`
	OrderID *string `json:"order_id,omitempty"`
}

// PromoteHoldResponse HTTP response model
type PromoteHoldResponse struct {
	BookingID string `json:"booking_id"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PromoteHoldRequest) ToUseCaseRequest() *promoteHold.Request {
	return &promoteHold.Request{
		HoldID:  r.HoldID,
		OrderID: r.OrderID,
	}
}
