package hold

import "errors"

var (
	// ErrHoldNotFound возвращается, когда удержание не найдено
	ErrHoldNotFound = errors.New("hold.repository: hold not found")

	// ErrHoldExists возвращается, когда у позиции корзины уже есть активное удержание
	ErrHoldExists = errors.New("hold.repository: active hold for line item already exists")

	// ErrHoldNotActive возвращается при попытке перевести неактивное удержание
	ErrHoldNotActive = errors.New("hold.repository: hold is not active")

	// ErrTransaction возвращается, когда операция требует транзакции
	ErrTransaction = errors.New("hold.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("hold.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("hold.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("hold.repository: failed to scan row")
)
