package get_availability

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда для ресурса нет расписания
	ErrScheduleNotFound = errors.New("get_availability: schedule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
