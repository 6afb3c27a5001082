package models

import (
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// ListByDateRequest запрос бронирований ресурса на дату
type ListByDateRequest struct {
	ResourceID string    // пусто = ресурс по умолчанию
	Date       time.Time // календарная дата, время суток игнорируется
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         string    `json:"id"`
	HoldID     string    `json:"hold_id"`
	ResourceID string    `json:"resource_id"`
	CartID     string    `json:"cart_id"`
	LineItemID string    `json:"line_item_id"`
	OrderID    *string   `json:"order_id,omitempty"`
	SlotStart  time.Time `json:"slot_start"`
	SlotEnd    time.Time `json:"slot_end"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:         b.ID,
		HoldID:     b.HoldID,
		ResourceID: b.ResourceID,
		CartID:     b.CartID,
		LineItemID: b.LineItemID,
		OrderID:    b.OrderID,
		SlotStart:  b.SlotStart.UTC(),
		SlotEnd:    b.SlotEnd.UTC(),
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.UTC(),
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}

	return result
}
