package commerce

// CartResponse ответ store API на GET /store/carts/{id}
type CartResponse struct {
	Cart Cart `json:"cart"`
}

// Cart корзина; нужны только позиции
type Cart struct {
	ID    string     `json:"id"`
	Items []LineItem `json:"items"`
}

// LineItem позиция корзины с произвольными метаданными
type LineItem struct {
	ID       string                 `json:"id"`
	Title    string                 `json:"title"`
	Quantity int                    `json:"quantity"`
	Metadata map[string]interface{} `json:"metadata"`
}
