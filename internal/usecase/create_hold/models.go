package create_hold

import "time"

// Request модель запроса на удержание слота
type Request struct {
	ResourceID string    // пусто = ресурс по умолчанию
	CartID     string    // ID корзины
	LineItemID string    // ID позиции корзины
	SlotStart  time.Time // начало интервала (включительно)
	SlotEnd    time.Time // конец интервала (не включительно)
}

// Response модель ответа с созданным удержанием
type Response struct {
	ID         string
	ResourceID string
	CartID     string
	LineItemID string
	SlotStart  time.Time
	SlotEnd    time.Time
	ExpiresAt  time.Time
	CreatedAt  time.Time
}
