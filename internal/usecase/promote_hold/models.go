package promote_hold

import "time"

// Request модель запроса на подтверждение удержания
type Request struct {
	HoldID  string  // ID удержания
	OrderID *string // ID заказа, оформившего запись (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID string
	HoldID    string
	SlotStart time.Time
	SlotEnd   time.Time
}
