package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetInRange(ctx context.Context, resourceID string, start, end time.Time) ([]*domain.Booking, error)
}

// ScheduleProvider источник расписаний ресурсов
type ScheduleProvider interface {
	Get(resourceID string) (*domain.Schedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
