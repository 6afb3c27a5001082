package release_hold

import releaseHold "github.com/m04kA/SMC-SlotReservationService/internal/usecase/release_hold"

// ReleaseHoldRequest HTTP request model
type ReleaseHoldRequest struct {
	CartID     string `json:"cart_id"`
	HoldID     string `json:"hold_id,omitempty"`
	LineItemID string `json:"line_item_id,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReleaseHoldRequest) ToUseCaseRequest() *releaseHold.Request {
	return &releaseHold.Request{
		CartID:     r.CartID,
		HoldID:     r.HoldID,
		LineItemID: r.LineItemID,
	}
}
