package release_hold

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	Release(ctx context.Context, filter domain.HoldReleaseFilter, now time.Time) (int, error)
}

// Metrics счетчики удержаний
type Metrics interface {
	HoldsReleased(n int)
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
