package release_hold

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// UseCase use case снятия удержания. Идемпотентен.
type UseCase struct {
	holdRepo     HoldRepository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(holdRepo HoldRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		holdRepo:     holdRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute снимает активное удержание корзины по hold_id или line_item_id.
// Повторный вызов, несуществующее или чужое удержание - успешный no-op.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReleaseHold: cart=%s, hold=%s, line_item=%s", req.CartID, req.HoldID, req.LineItemID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReleaseHold: validation failed: %v", err)
		return nil, err
	}

	// 2. ID удержаний - UUID; всё остальное заведомо не существует
	if req.HoldID != "" {
		if _, err := uuid.Parse(req.HoldID); err != nil {
			uc.logger.Info("ReleaseHold: hold=%s is not a valid id, nothing to release", req.HoldID)
			return &Response{}, nil
		}
	}

	// 3. Снимаем удержание в пределах корзины
	filter := domain.HoldReleaseFilter{
		HoldID:     req.HoldID,
		LineItemID: req.LineItemID,
		CartID:     req.CartID,
	}

	released, err := uc.holdRepo.Release(ctx, filter, uc.timeProvider.Now().UTC())
	if err != nil {
		uc.logger.Error("ReleaseHold: failed to release: %v", err)
		return nil, fmt.Errorf("%w: failed to release hold: %v", ErrInternal, err)
	}

	if released > 0 && uc.metrics != nil {
		uc.metrics.HoldsReleased(released)
	}

	uc.logger.Info("ReleaseHold: released %d hold(s) for cart=%s", released, req.CartID)
	return &Response{Released: released}, nil
}
