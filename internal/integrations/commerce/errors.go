package commerce

import "errors"

var (
	// ErrCartNotFound возвращается, когда корзина не найдена
	ErrCartNotFound = errors.New("commerce client: cart not found")

	// ErrLineItemNotFound возвращается, когда позиции нет в корзине
	ErrLineItemNotFound = errors.New("commerce client: line item not found in cart")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("commerce client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от платформы
	ErrInvalidResponse = errors.New("commerce client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Платформа недоступна, проверку позиции корзины следует пропустить.
	ErrServiceDegraded = errors.New("commerce platform unavailable: graceful degradation applied")
)
