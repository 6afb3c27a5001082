package promote_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/booking"
	holdRepo "github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/hold"
)

// UseCase use case подтверждения удержания в бронирование
type UseCase struct {
	holdRepo     HoldRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(
	holdRepo HoldRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		holdRepo:     holdRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute подтверждает удержание. В одной транзакции:
// блокирует удержание, проверяет его состояние, повторно проверяет пересечения
// с бронированиями, создает бронирование и переводит удержание в promoted.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PromoteHold: hold=%s", req.HoldID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PromoteHold: validation failed: %v", err)
		return nil, err
	}

	// 2. Некорректный UUID не может быть ID удержания
	if _, err := uuid.Parse(req.HoldID); err != nil {
		uc.logger.Warn("PromoteHold: hold=%s is not a valid id", req.HoldID)
		uc.observe(outcomeNotFound)
		return nil, ErrHoldNotFound
	}

	now := uc.timeProvider.Now().UTC()
	var created *domain.Booking

	// 3. Атомарное подтверждение
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем удержание с блокировкой строки
		hold, err := uc.holdRepo.GetByID(txCtx, req.HoldID)
		if err != nil {
			if errors.Is(err, holdRepo.ErrHoldNotFound) {
				return ErrHoldNotFound
			}
			return fmt.Errorf("%w: failed to get hold: %w", ErrInternal, err)
		}

		// 3.2. Проверяем состояние
		switch {
		case hold.Status == domain.HoldStatusReleased, hold.Status == domain.HoldStatusPromoted:
			return fmt.Errorf("%w: hold is %s", ErrHoldNotFound, hold.Status)
		case hold.IsExpiredAt(now):
			return fmt.Errorf("%w: expired at %s", ErrHoldExpired, hold.ExpiresAt.Format(time.RFC3339))
		}

		// 3.3. Сериализуемся с созданием удержаний на этом ресурсе
		if err := uc.holdRepo.LockResource(txCtx, hold.ResourceID); err != nil {
			return fmt.Errorf("%w: failed to lock resource: %w", ErrInternal, err)
		}

		// 3.4. Повторная проверка пересечений с бронированиями
		bookings, err := uc.bookingRepo.GetInRange(txCtx, hold.ResourceID, hold.SlotStart, hold.SlotEnd)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}
		if len(bookings) > 0 {
			return fmt.Errorf("%w: conflicts with booking id=%s", ErrSlotAlreadyBooked, bookings[0].ID)
		}

		// 3.5. Создаем бронирование
		booking := domain.NewBookingFromHold(uuid.NewString(), hold, req.OrderID, now)
		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingExists) {
				return fmt.Errorf("%w: already promoted", ErrHoldNotFound)
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 3.6. Закрываем удержание
		if err := uc.holdRepo.MarkPromoted(txCtx, hold.ID, now); err != nil {
			if errors.Is(err, holdRepo.ErrHoldNotActive) {
				return fmt.Errorf("%w: hold is no longer active", ErrHoldNotFound)
			}
			return fmt.Errorf("%w: failed to mark hold promoted: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrHoldNotFound):
			uc.logger.Warn("PromoteHold: hold=%s: %v", req.HoldID, err)
			uc.observe(outcomeNotFound)
			return nil, ErrHoldNotFound
		case errors.Is(err, ErrHoldExpired):
			uc.logger.Warn("PromoteHold: hold=%s: %v", req.HoldID, err)
			uc.observe(outcomeExpired)
			return nil, ErrHoldExpired
		case errors.Is(err, ErrSlotAlreadyBooked):
			// Не должно происходить при корректной работе удержаний
			uc.logger.Error("PromoteHold: hold=%s: %v", req.HoldID, err)
			uc.observe(outcomeAlreadyBooked)
			return nil, ErrSlotAlreadyBooked
		default:
			uc.logger.Error("PromoteHold: hold=%s: %v", req.HoldID, err)
			uc.observe(outcomeError)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: %v", ErrInternal, err)
			}
			return nil, err
		}
	}

	uc.observe(outcomePromoted)
	uc.logger.Info("PromoteHold: successfully promoted hold=%s into booking id=%s", req.HoldID, created.ID)

	return &Response{
		BookingID: created.ID,
		HoldID:    created.HoldID,
		SlotStart: created.SlotStart,
		SlotEnd:   created.SlotEnd,
	}, nil
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.PromotionOutcome(outcome)
	}
}
