package promote_hold

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Hold, error)
	LockResource(ctx context.Context, resourceID string) error
	MarkPromoted(ctx context.Context, id string, now time.Time) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetInRange(ctx context.Context, resourceID string, start, end time.Time) ([]*domain.Booking, error)
}

// Metrics счетчики результатов подтверждения
type Metrics interface {
	PromotionOutcome(outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
