package reaper

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// maxBatchesPerSweep максимум пачек за один проход
const maxBatchesPerSweep = 100

// Service фоновый перевод просроченных удержаний в expired.
// Корректность доступности от него не зависит: просроченное удержание не блокирует слот
// и без смены статуса. Reaper только приводит хранилище в порядок.
type Service struct {
	holdRepo     HoldRepository
	metrics      Metrics
	logger       Logger
	interval     time.Duration
	batchSize    int
	timeProvider TimeProvider
}

// NewService создает reaper; нулевые interval и batchSize заменяются значениями по умолчанию.
// metrics может быть nil.
func NewService(holdRepo HoldRepository, metrics Metrics, logger Logger, interval time.Duration, batchSize int) *Service {
	if interval <= 0 {
		interval = domain.DefaultReaperInterval
	}
	if batchSize <= 0 {
		batchSize = domain.DefaultReaperBatchSize
	}

	return &Service{
		holdRepo:     holdRepo,
		metrics:      metrics,
		logger:       logger,
		interval:     interval,
		batchSize:    batchSize,
		timeProvider: &RealTimeProvider{},
	}
}

// Sweep переводит в expired все просроченные на текущий момент удержания.
// Работает пачками по batchSize до первой неполной пачки.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	start := time.Now()
	now := s.timeProvider.Now()
	total := 0

	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveSweep(time.Since(start))
		}
	}()

	for i := 0; i < maxBatchesPerSweep; i++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		n, err := s.holdRepo.ExpireStale(ctx, now, s.batchSize)
		if err != nil {
			return total, fmt.Errorf("%w: %v", ErrSweep, err)
		}

		total += n
		if s.metrics != nil && n > 0 {
			s.metrics.HoldsExpired(n)
		}

		if n < s.batchSize {
			break
		}
	}

	return total, nil
}

// Run запускает периодическую очистку до отмены ctx
func (s *Service) Run(ctx context.Context) {
	s.logger.Info("Reaper: started, interval=%s, batch=%d", s.interval, s.batchSize)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reaper: stopped")
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				if ctx.Err() != nil {
					s.logger.Info("Reaper: stopped")
					return
				}
				s.logger.Error("Reaper: sweep failed after expiring %d holds: %v", n, err)
				continue
			}
			if n > 0 {
				s.logger.Info("Reaper: expired %d holds", n)
			}
		}
	}
}
