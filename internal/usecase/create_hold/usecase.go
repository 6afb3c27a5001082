package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	holdRepo "github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/hold"
	commerceClient "github.com/m04kA/SMC-SlotReservationService/internal/integrations/commerce"
	scheduleService "github.com/m04kA/SMC-SlotReservationService/internal/service/schedule"
)

// UseCase use case удержания слота за позицией корзины
type UseCase struct {
	holdRepo     HoldRepository
	bookingRepo  BookingRepository
	schedules    ScheduleProvider
	txManager    TransactionManager
	commerce     CommerceClient
	metrics      Metrics
	holdTTL      time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// Option настройка use case
type Option func(*UseCase)

// WithHoldTTL задает время жизни удержания
func WithHoldTTL(ttl time.Duration) Option {
	return func(uc *UseCase) {
		if ttl > 0 {
			uc.holdTTL = ttl
		}
	}
}

// WithCommerceClient включает проверку позиции в корзине
func WithCommerceClient(client CommerceClient) Option {
	return func(uc *UseCase) {
		uc.commerce = client
	}
}

// WithMetrics включает счетчики удержаний
func WithMetrics(metrics Metrics) Option {
	return func(uc *UseCase) {
		uc.metrics = metrics
	}
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	holdRepo HoldRepository,
	bookingRepo BookingRepository,
	schedules ScheduleProvider,
	txManager TransactionManager,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		holdRepo:     holdRepo,
		bookingRepo:  bookingRepo,
		schedules:    schedules,
		txManager:    txManager,
		holdTTL:      domain.DefaultHoldTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Execute выполняет use case создания удержания.
// Проверка пересечений и вставка выполняются атомарно под блокировкой ресурса;
// запросы после блокировки видят все зафиксированные удержания. При конфликте хранилище не изменяется,
// предыдущее удержание позиции остается в силе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: resource=%s, cart=%s, line_item=%s, slot=[%s, %s)",
		req.ResourceID, req.CartID, req.LineItemID,
		req.SlotStart.UTC().Format(time.RFC3339), req.SlotEnd.UTC().Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	slotStart := req.SlotStart.UTC()
	slotEnd := req.SlotEnd.UTC()

	// 2. Получаем расписание ресурса
	schedule, err := uc.schedules.Get(req.ResourceID)
	if err != nil {
		if errors.Is(err, scheduleService.ErrScheduleNotFound) {
			uc.logger.Warn("CreateHold: schedule for resource=%s not found", req.ResourceID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("CreateHold: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 3. Проверяем время слота относительно расписания
	now := uc.timeProvider.Now().UTC()
	if err := validateSlotTiming(schedule, slotStart, slotEnd, now); err != nil {
		uc.logger.Warn("CreateHold: slot timing rejected: %v", err)
		return nil, err
	}

	// 4. Проверяем позицию корзины (если подключена платформа)
	if err := uc.verifyLineItem(ctx, req, slotStart, slotEnd); err != nil {
		return nil, err
	}

	var created *domain.Hold

	// 5. Атомарная проверка и резервирование
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 5.1. Сериализуем все изменения по ресурсу
		if err := uc.holdRepo.LockResource(txCtx, schedule.ResourceID); err != nil {
			return fmt.Errorf("%w: failed to lock resource: %w", ErrInternal, err)
		}

		// 5.2. Активные удержания, пересекающие интервал; своё удержание позиции заменяется и не мешает
		holds, err := uc.holdRepo.GetActiveInRange(txCtx, schedule.ResourceID, slotStart, slotEnd, now)
		if err != nil {
			return fmt.Errorf("%w: failed to get holds: %w", ErrInternal, err)
		}
		for _, h := range holds {
			if h.LineItemID != req.LineItemID {
				uc.logger.Warn("CreateHold: slot conflicts with hold id=%s", h.ID)
				return ErrSlotUnavailable
			}
		}

		// 5.3. Подтвержденные бронирования, пересекающие интервал
		bookings, err := uc.bookingRepo.GetInRange(txCtx, schedule.ResourceID, slotStart, slotEnd)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}
		if len(bookings) > 0 {
			uc.logger.Warn("CreateHold: slot conflicts with booking id=%s", bookings[0].ID)
			return ErrSlotUnavailable
		}

		// 5.4. Снимаем прежнее удержание этой позиции (повторный выбор заменяет, а не добавляет)
		released, err := uc.holdRepo.Release(txCtx, domain.HoldReleaseFilter{LineItemID: req.LineItemID}, now)
		if err != nil {
			return fmt.Errorf("%w: failed to release previous hold: %w", ErrInternal, err)
		}
		if released > 0 {
			uc.logger.Info("CreateHold: replaced %d previous hold(s) of line_item=%s", released, req.LineItemID)
			if uc.metrics != nil {
				uc.metrics.HoldsReleased(released)
			}
		}

		// 5.5. Создаем удержание
		hold := &domain.Hold{
			ID:         uuid.NewString(),
			ResourceID: schedule.ResourceID,
			CartID:     req.CartID,
			LineItemID: req.LineItemID,
			SlotStart:  slotStart,
			SlotEnd:    slotEnd,
			Status:     domain.HoldStatusActive,
			ExpiresAt:  now.Add(uc.holdTTL),
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		created, err = uc.holdRepo.Create(txCtx, hold)
		if err != nil {
			// Параллельный запрос той же позиции на другом ресурсе успел первым
			if errors.Is(err, holdRepo.ErrHoldExists) {
				uc.logger.Warn("CreateHold: line_item=%s already holds another slot", req.LineItemID)
				return ErrSlotUnavailable
			}
			return fmt.Errorf("%w: failed to create hold: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotUnavailable) {
			if uc.metrics != nil {
				uc.metrics.HoldConflict()
			}
			return nil, err
		}
		uc.logger.Error("CreateHold: %v", err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.HoldCreated()
	}

	uc.logger.Info("CreateHold: successfully created hold id=%s, expires_at=%s",
		created.ID, created.ExpiresAt.Format(time.RFC3339))

	return &Response{
		ID:         created.ID,
		ResourceID: created.ResourceID,
		CartID:     created.CartID,
		LineItemID: created.LineItemID,
		SlotStart:  created.SlotStart,
		SlotEnd:    created.SlotEnd,
		ExpiresAt:  created.ExpiresAt,
		CreatedAt:  created.CreatedAt,
	}, nil
}

// verifyLineItem проверяет, что позиция есть в корзине и является записью на услугу.
// Недоступность платформы не блокирует удержание.
func (uc *UseCase) verifyLineItem(ctx context.Context, req *Request, slotStart, slotEnd time.Time) error {
	if uc.commerce == nil {
		return nil
	}

	item, err := uc.commerce.GetLineItemWithGracefulDegradation(ctx, req.CartID, req.LineItemID)
	if err != nil {
		switch {
		case errors.Is(err, commerceClient.ErrServiceDegraded):
			uc.logger.Warn("CreateHold: skipping line item verification for cart=%s: %v", req.CartID, err)
			return nil
		case errors.Is(err, commerceClient.ErrCartNotFound), errors.Is(err, commerceClient.ErrLineItemNotFound):
			uc.logger.Warn("CreateHold: line_item=%s not found in cart=%s", req.LineItemID, req.CartID)
			return ErrLineItemNotFound
		default:
			uc.logger.Error("CreateHold: failed to verify line item: %v", err)
			return fmt.Errorf("%w: failed to verify line item: %v", ErrInternal, err)
		}
	}

	switch li := item.(type) {
	case domain.AppointmentItem:
		if minutes := int(slotEnd.Sub(slotStart) / time.Minute); li.BlockMinutes != minutes {
			uc.logger.Warn("CreateHold: line_item=%s block_minutes=%d differs from requested %d",
				li.ID, li.BlockMinutes, minutes)
		}
		return nil
	case domain.PhysicalItem:
		uc.logger.Warn("CreateHold: line_item=%s is not an appointment", li.ID)
		return ErrNotAppointment
	default:
		return fmt.Errorf("%w: unexpected line item type %T", ErrInternal, item)
	}
}
