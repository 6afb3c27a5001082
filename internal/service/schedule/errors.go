package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда для ресурса нет расписания
	ErrScheduleNotFound = errors.New("schedule: schedule not found")

	// ErrInvalidInput возвращается при некорректной конфигурации реестра
	ErrInvalidInput = errors.New("schedule: invalid input data")
)
