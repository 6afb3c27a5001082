package promote_hold

import "errors"

var (
	// ErrHoldNotFound возвращается, когда удержание не существует, снято или уже подтверждено
	ErrHoldNotFound = errors.New("promote_hold: hold not found")

	// ErrHoldExpired возвращается, когда удержание истекло до подтверждения
	ErrHoldExpired = errors.New("promote_hold: hold expired")

	// ErrSlotAlreadyBooked возвращается, когда интервал уже занят бронированием
	ErrSlotAlreadyBooked = errors.New("promote_hold: slot already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("promote_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("promote_hold: internal error")
)

// Значения метки outcome для метрик
const (
	outcomePromoted      = "promoted"
	outcomeNotFound      = "not_found"
	outcomeExpired       = "expired"
	outcomeAlreadyBooked = "already_booked"
	outcomeError         = "error"
)
