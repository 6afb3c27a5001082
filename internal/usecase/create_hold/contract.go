package create_hold

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	LockResource(ctx context.Context, resourceID string) error
	GetActiveInRange(ctx context.Context, resourceID string, start, end, now time.Time) ([]*domain.Hold, error)
	Release(ctx context.Context, filter domain.HoldReleaseFilter, now time.Time) (int, error)
	Create(ctx context.Context, hold *domain.Hold) (*domain.Hold, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetInRange(ctx context.Context, resourceID string, start, end time.Time) ([]*domain.Booking, error)
}

// ScheduleProvider источник расписаний ресурсов
type ScheduleProvider interface {
	Get(resourceID string) (*domain.Schedule, error)
}

// CommerceClient интерфейс клиента коммерческой платформы
type CommerceClient interface {
	GetLineItemWithGracefulDegradation(ctx context.Context, cartID, lineItemID string) (domain.LineItem, error)
}

// Metrics счетчики удержаний
type Metrics interface {
	HoldCreated()
	HoldConflict()
	HoldsReleased(n int)
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
