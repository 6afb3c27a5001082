package get_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotReservationService/internal/service/schedule"
)

const msgScheduleNotFound = "расписание не найдено"

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /store/bookings/schedule
// Query params: resource_id (опционально)
// Публичный endpoint
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := r.URL.Query().Get("resource_id")

	result, err := h.service.GetSchedule(r.Context(), resourceID)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			h.logger.Warn("GET /store/bookings/schedule - Schedule not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, handlers.CodeScheduleNotFound, msgScheduleNotFound)
			return
		}

		h.logger.Error("GET /store/bookings/schedule - Failed to get schedule: resource_id=%s, error=%v", resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /store/bookings/schedule - Schedule retrieved: resource_id=%s", result.ResourceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
