package get_bookings

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	"github.com/m04kA/SMC-SlotReservationService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(resourceID, dateStr string) (*models.ListByDateRequest, error) {
	if dateStr == "" {
		return nil, fmt.Errorf("date is required")
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &models.ListByDateRequest{
		ResourceID: resourceID,
		Date:       date,
	}, nil
}
