package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	bookingRepo "github.com/m04kA/SMC-SlotReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotReservationService/internal/service/bookings/models"
	scheduleService "github.com/m04kA/SMC-SlotReservationService/internal/service/schedule"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	schedules   ScheduleProvider
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	schedules ScheduleProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		schedules:   schedules,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	if id == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if _, err := uuid.Parse(id); err != nil {
		s.logger.Warn("GetByID: invalid booking id=%s", id)
		return nil, fmt.Errorf("%w: booking id must be a UUID", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// ListByDate возвращает подтвержденные бронирования ресурса на календарную дату
// (сутки в часовом поясе расписания ресурса)
func (s *Service) ListByDate(ctx context.Context, req *models.ListByDateRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByDate: fetching bookings for resource=%s, date=%s", req.ResourceID, req.Date.Format("2006-01-02"))

	schedule, err := s.schedules.Get(req.ResourceID)
	if err != nil {
		if errors.Is(err, scheduleService.ErrScheduleNotFound) {
			s.logger.Warn("ListByDate: schedule for resource=%s not found", req.ResourceID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("ListByDate: failed to get schedule for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: ListByDate - schedule error: %v", ErrInternal, err)
	}

	dayStart := schedule.LocalDate(req.Date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := s.bookingRepo.GetInRange(ctx, schedule.ResourceID, dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		s.logger.Error("ListByDate: repository error for resource=%s: %v", schedule.ResourceID, err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: successfully fetched %d bookings for resource=%s", len(bookings), schedule.ResourceID)
	return models.FromDomainBookingList(bookings), nil
}
