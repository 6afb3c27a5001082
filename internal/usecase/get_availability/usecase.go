package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	scheduleService "github.com/m04kA/SMC-SlotReservationService/internal/service/schedule"
)

// UseCase use case расчета доступных слотов на дату
type UseCase struct {
	holdRepo     HoldRepository
	bookingRepo  BookingRepository
	schedules    ScheduleProvider
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	holdRepo HoldRepository,
	bookingRepo BookingRepository,
	schedules ScheduleProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		holdRepo:     holdRepo,
		bookingRepo:  bookingRepo,
		schedules:    schedules,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности.
// Только чтение: удержания и бронирования читаются из одного снимка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: resource=%s, date=%s, block=%v, increment=%v",
		req.ResourceID, req.Date.Format(domain.DateFormat), intOrNil(req.BlockMinutes), intOrNil(req.SlotIncrement))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем расписание ресурса
	schedule, err := uc.schedules.Get(req.ResourceID)
	if err != nil {
		if errors.Is(err, scheduleService.ErrScheduleNotFound) {
			uc.logger.Warn("GetAvailability: schedule for resource=%s not found", req.ResourceID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("GetAvailability: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 3. Определяем длительность и шаг
	blockMinutes := schedule.BlockMinutes
	if req.BlockMinutes != nil {
		blockMinutes = *req.BlockMinutes
	}
	if blockMinutes <= 0 {
		blockMinutes = domain.DefaultBlockMinutes
	}
	// шаг: параметр запроса, затем шаг расписания, затем длительность слота
	increment := blockMinutes
	if schedule.SlotIncrementMinutes > 0 {
		increment = schedule.SlotIncrementMinutes
	}
	if req.SlotIncrement != nil {
		increment = *req.SlotIncrement
	}

	now := uc.timeProvider.Now()
	date := schedule.LocalDate(req.Date)

	response := &Response{
		Date:          date,
		ResourceID:    schedule.ResourceID,
		BlockMinutes:  blockMinutes,
		SlotIncrement: increment,
		Slots:         []domain.Slot{},
	}

	// 4. Прошедшая дата - пустой результат
	if schedule.IsDateInPast(date, now) {
		uc.logger.Info("GetAvailability: date=%s is in the past", date.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Выходной или blackout - пустой результат
	open, close, ok := schedule.HoursFor(date)
	if !ok {
		uc.logger.Info("GetAvailability: resource=%s is closed on %s", schedule.ResourceID, date.Format(domain.DateFormat))
		return response, nil
	}

	// 6. Генерируем кандидатов
	slots := generateSlots(schedule, open, close,
		time.Duration(blockMinutes)*time.Minute, time.Duration(increment)*time.Minute)
	if len(slots) == 0 {
		return response, nil
	}

	// 7. Читаем удержания и бронирования дня в одной read-only транзакции
	var (
		holds    []*domain.Hold
		bookings []*domain.Booking
	)
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		holds, err = uc.holdRepo.GetActiveInRange(txCtx, schedule.ResourceID, open, close, now)
		if err != nil {
			return fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
		}
		bookings, err = uc.bookingRepo.GetInRange(txCtx, schedule.ResourceID, open, close)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("GetAvailability: %v", err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	// 8. Отмечаем доступность
	markAvailability(slots, holds, bookings, schedule.EarliestStart(now), now)
	response.Slots = slots

	uc.logger.Info("GetAvailability: resource=%s, date=%s, %d slots, %d holds, %d bookings",
		schedule.ResourceID, date.Format(domain.DateFormat), len(slots), len(holds), len(bookings))

	return response, nil
}

func intOrNil(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
