package create_hold

import (
	"fmt"
	"time"

	createHold "github.com/m04kA/SMC-SlotReservationService/internal/usecase/create_hold"
)

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	ResourceID string `json:"resource_id,omitempty"`
	CartID     string `json:"cart_id"`
	LineItemID string `json:"line_item_id"`
	SlotStart  string `json:"slot_start"` // RFC 3339
	SlotEnd    string `json:"slot_end"`   // RFC 3339
}

// HoldResponse HTTP response model
type HoldResponse struct {
	Hold Hold `json:"hold"`
}

// Hold модель удержания в ответе
type Hold struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	CartID     string    `json:"cart_id"`
	LineItemID string    `json:"line_item_id"`
	SlotStart  time.Time `json:"slot_start"`
	SlotEnd    time.Time `json:"slot_end"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateHoldRequest) ToUseCaseRequest() (*createHold.Request, error) {
	slotStart, err := time.Parse(time.RFC3339, r.SlotStart)
	if err != nil {
		return nil, fmt.Errorf("invalid slot_start: %v", err)
	}

	slotEnd, err := time.Parse(time.RFC3339, r.SlotEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid slot_end: %v", err)
	}

	return &createHold.Request{
		ResourceID: r.ResourceID,
		CartID:     r.CartID,
		LineItemID: r.LineItemID,
		SlotStart:  slotStart,
		SlotEnd:    slotEnd,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createHold.Response) *HoldResponse {
	return &HoldResponse{
		Hold: Hold{
			ID:         resp.ID,
			ResourceID: resp.ResourceID,
			CartID:     resp.CartID,
			LineItemID: resp.LineItemID,
			SlotStart:  resp.SlotStart.UTC(),
			SlotEnd:    resp.SlotEnd.UTC(),
			ExpiresAt:  resp.ExpiresAt.UTC(),
		},
	}
}
