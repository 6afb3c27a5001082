package release_hold

// Request модель запроса на снятие удержания.
// Обязателен CartID и ровно один из HoldID / LineItemID.
type Request struct {
	CartID     string
	HoldID     string
	LineItemID string
}

// Response модель ответа
type Response struct {
	Released int // 0 - удержание уже снято, истекло или не существует
}
