package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/pkg/types"
)

// Ключи метаданных позиции корзины на стороне коммерческой платформы
const (
	MetadataAppointmentDate = "appointment_date"
	MetadataAppointmentTime = "appointment_time"
	MetadataBlockMinutes    = "block_minutes"
	MetadataHoldID          = "hold_id"
)

// ErrInvalidAppointmentMetadata возвращается при частично заполненных или некорректных метаданных записи
var ErrInvalidAppointmentMetadata = errors.New("domain: invalid appointment metadata")

// LineItem is a cart line item: either a PhysicalItem or an AppointmentItem.
// Call sites switch on the concrete type instead of probing metadata.
type LineItem interface {
	LineItemID() string
	isLineItem()
}

// PhysicalItem ordinary goods, no slot attached
type PhysicalItem struct {
	ID string
}

func (i PhysicalItem) LineItemID() string { return i.ID }
func (PhysicalItem) isLineItem()          {}

// AppointmentItem line item carrying a requested appointment
type AppointmentItem struct {
	ID           string
	Date         time.Time
	StartTime    types.TimeString
	BlockMinutes int
	HoldID       string // пусто, пока слот не удержан
}

func (i AppointmentItem) LineItemID() string { return i.ID }
func (AppointmentItem) isLineItem()          {}

// NewLineItem builds the typed variant from untyped commerce metadata.
// An item is an appointment when both appointment_date and appointment_time are present.
func NewLineItem(id string, metadata map[string]interface{}) (LineItem, error) {
	dateRaw, hasDate := metadata[MetadataAppointmentDate]
	timeRaw, hasTime := metadata[MetadataAppointmentTime]
	if !hasDate && !hasTime {
		return PhysicalItem{ID: id}, nil
	}
	if !hasDate || !hasTime {
		return nil, fmt.Errorf("%w: both %s and %s are required", ErrInvalidAppointmentMetadata,
			MetadataAppointmentDate, MetadataAppointmentTime)
	}

	dateStr, _ := dateRaw.(string)
	date, err := time.Parse(DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%v", ErrInvalidAppointmentMetadata, MetadataAppointmentDate, dateRaw)
	}

	timeStr, _ := timeRaw.(string)
	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%v", ErrInvalidAppointmentMetadata, MetadataAppointmentTime, timeRaw)
	}

	item := AppointmentItem{
		ID:           id,
		Date:         date,
		StartTime:    startTime,
		BlockMinutes: DefaultBlockMinutes,
	}

	if raw, ok := metadata[MetadataBlockMinutes]; ok {
		minutes, err := toInt(raw)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("%w: %s=%v", ErrInvalidAppointmentMetadata, MetadataBlockMinutes, raw)
		}
		item.BlockMinutes = minutes
	}

	if holdID, ok := metadata[MetadataHoldID].(string); ok {
		item.HoldID = holdID
	}

	return item, nil
}

// toInt метаданные приходят из JSON, числа декодируются как float64, иногда как строки
func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int(n), nil
	case int:
		return n, nil
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
