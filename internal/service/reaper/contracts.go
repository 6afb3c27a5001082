package reaper

import (
	"context"
	"time"
)

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	ExpireStale(ctx context.Context, now time.Time, limit int) (int, error)
}

// Metrics счетчики работы фонового процесса
type Metrics interface {
	HoldsExpired(n int)
	ObserveSweep(duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider, возвращающая реальное время
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
