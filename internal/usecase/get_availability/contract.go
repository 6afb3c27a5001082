package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	GetActiveInRange(ctx context.Context, resourceID string, start, end, now time.Time) ([]*domain.Hold, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetInRange(ctx context.Context, resourceID string, start, end time.Time) ([]*domain.Booking, error)
}

// ScheduleProvider источник расписаний ресурсов
type ScheduleProvider interface {
	Get(resourceID string) (*domain.Schedule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
