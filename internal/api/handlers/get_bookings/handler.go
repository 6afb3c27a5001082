package get_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotReservationService/internal/service/bookings"
)

const (
	msgInvalidParams    = "некорректные параметры запроса, ожидается date=YYYY-MM-DD"
	msgScheduleNotFound = "расписание не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /internal/bookings
// Query params: date (required, YYYY-MM-DD), resource_id (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := r.URL.Query().Get("resource_id")

	serviceReq, err := ToServiceRequest(resourceID, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /internal/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListByDate(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, bookings.ErrScheduleNotFound) {
			h.logger.Warn("GET /internal/bookings - Schedule not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, handlers.CodeScheduleNotFound, msgScheduleNotFound)
			return
		}

		h.logger.Error("GET /internal/bookings - Failed to get bookings: resource_id=%s, error=%v", resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /internal/bookings - Bookings retrieved successfully: resource_id=%s, count=%d",
		resourceID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
