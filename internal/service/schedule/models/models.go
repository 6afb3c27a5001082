package models

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// DayHoursResponse часы работы одного дня недели
type DayHoursResponse struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// ScheduleResponse расписание ресурса
type ScheduleResponse struct {
	ResourceID           string                      `json:"resource_id"`
	Timezone             string                      `json:"timezone"`
	Hours                map[string]DayHoursResponse `json:"hours"` // выходные дни отсутствуют
	BlackoutDates        []string                    `json:"blackout_dates"`
	BlockMinutes         int                         `json:"block_minutes"`
	SlotIncrementMinutes int                         `json:"slot_increment_minutes"`
	MinNoticeMinutes     int                         `json:"min_notice_minutes"`
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	timezone := "UTC"
	if s.Location != nil {
		timezone = s.Location.String()
	}

	hours := make(map[string]DayHoursResponse, len(s.Weekly))
	for day, h := range s.Weekly {
		hours[weekdayNames[day]] = DayHoursResponse{Open: h.Open.String(), Close: h.Close.String()}
	}

	blackouts := make([]string, 0, len(s.Blackouts))
	for date := range s.Blackouts {
		blackouts = append(blackouts, date)
	}
	sort.Strings(blackouts)

	return &ScheduleResponse{
		ResourceID:           s.ResourceID,
		Timezone:             timezone,
		Hours:                hours,
		BlackoutDates:        blackouts,
		BlockMinutes:         s.BlockMinutes,
		SlotIncrementMinutes: s.SlotIncrementMinutes,
		MinNoticeMinutes:     s.MinNoticeMinutes,
	}
}
