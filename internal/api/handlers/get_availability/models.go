package get_availability

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	getAvailability "github.com/m04kA/SMC-SlotReservationService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date          string     `json:"date"`
	ResourceID    string     `json:"resource_id"`
	BlockMinutes  int        `json:"block_minutes"`
	SlotIncrement int        `json:"slot_increment"`
	Slots         []TimeSlot `json:"slots"`
}

// TimeSlot модель временного слота.
// В день перевода часов назад Time повторяется; пара Time и UTCOffset уникальна, как и Start.
type TimeSlot struct {
	Time      string    `json:"time"`
	UTCOffset string    `json:"utc_offset"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]TimeSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = TimeSlot{
			Time:      slot.Time,
			UTCOffset: slot.UTCOffset,
			Start:     slot.Start.UTC(),
			End:       slot.End.UTC(),
			Available: slot.Available,
		}
	}

	return &AvailabilityResponse{
		Date:          resp.Date.Format(domain.DateFormat),
		ResourceID:    resp.ResourceID,
		BlockMinutes:  resp.BlockMinutes,
		SlotIncrement: resp.SlotIncrement,
		Slots:         slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(query url.Values) (*getAvailability.Request, error) {
	dateStr := query.Get("date")
	if dateStr == "" {
		return nil, fmt.Errorf("date is required")
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %v", err)
	}

	blockMinutes, err := parseOptionalInt(query, "block_minutes")
	if err != nil {
		return nil, err
	}

	slotIncrement, err := parseOptionalInt(query, "slot_increment")
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		ResourceID:    query.Get("resource_id"),
		Date:          date,
		BlockMinutes:  blockMinutes,
		SlotIncrement: slotIncrement,
	}, nil
}

func parseOptionalInt(query url.Values, name string) (*int, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %v", name, err)
	}
	return &v, nil
}
