package create_hold

import "errors"

var (
	// ErrSlotUnavailable возвращается, когда интервал пересекается с активным удержанием или бронированием
	ErrSlotUnavailable = errors.New("create_hold: slot is unavailable")

	// ErrScheduleNotFound возвращается, когда для ресурса нет расписания
	ErrScheduleNotFound = errors.New("create_hold: schedule not found")

	// ErrLineItemNotFound возвращается, когда позиции нет в корзине
	ErrLineItemNotFound = errors.New("create_hold: line item not found in cart")

	// ErrNotAppointment возвращается, когда позиция корзины не является записью на услугу
	ErrNotAppointment = errors.New("create_hold: line item is not an appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_hold: internal error")
)
