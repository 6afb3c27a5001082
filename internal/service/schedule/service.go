package schedule

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	"github.com/m04kA/SMC-SlotReservationService/internal/service/schedule/models"
)

// Service реестр расписаний ресурсов. Неизменяем после создания.
type Service struct {
	schedules         map[string]*domain.Schedule
	defaultResourceID string
	logger            Logger
}

// NewService создает реестр; расписание ресурса по умолчанию обязано присутствовать
func NewService(schedules []*domain.Schedule, defaultResourceID string, logger Logger) (*Service, error) {
	registry := make(map[string]*domain.Schedule, len(schedules))
	for _, s := range schedules {
		if _, dup := registry[s.ResourceID]; dup {
			return nil, fmt.Errorf("%w: duplicate schedule for resource %q", ErrInvalidInput, s.ResourceID)
		}
		registry[s.ResourceID] = s
	}

	if _, ok := registry[defaultResourceID]; !ok {
		return nil, fmt.Errorf("%w: no schedule for default resource %q", ErrInvalidInput, defaultResourceID)
	}

	return &Service{
		schedules:         registry,
		defaultResourceID: defaultResourceID,
		logger:            logger,
	}, nil
}

// ResolveResourceID подставляет ресурс по умолчанию вместо пустого
func (s *Service) ResolveResourceID(resourceID string) string {
	if resourceID == "" {
		return s.defaultResourceID
	}
	return resourceID
}

// Get возвращает расписание ресурса (пустой id = ресурс по умолчанию)
func (s *Service) Get(resourceID string) (*domain.Schedule, error) {
	resourceID = s.ResolveResourceID(resourceID)

	schedule, ok := s.schedules[resourceID]
	if !ok {
		return nil, fmt.Errorf("%w: resource=%s", ErrScheduleNotFound, resourceID)
	}

	return schedule, nil
}

// GetSchedule возвращает расписание в виде DTO для публичного API
func (s *Service) GetSchedule(ctx context.Context, resourceID string) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for resource=%s", s.ResolveResourceID(resourceID))

	schedule, err := s.Get(resourceID)
	if err != nil {
		s.logger.Warn("GetSchedule: %v", err)
		return nil, err
	}

	return models.FromDomainSchedule(schedule), nil
}
