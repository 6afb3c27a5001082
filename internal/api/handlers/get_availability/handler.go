package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	getAvailability "github.com/m04kA/SMC-SlotReservationService/internal/usecase/get_availability"
)

const (
	msgInvalidParams    = "некорректные параметры запроса, ожидается date=YYYY-MM-DD и целые block_minutes, slot_increment"
	msgInvalidInput     = "некорректная длительность или шаг слота"
	msgScheduleNotFound = "расписание не найдено"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /store/bookings/availability
// Query params: date (required, YYYY-MM-DD), block_minutes, slot_increment, resource_id (опционально)
// Публичный endpoint
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /store/bookings/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /store/bookings/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailability.ErrScheduleNotFound):
			h.logger.Warn("GET /store/bookings/availability - Schedule not found: resource_id=%s", useCaseReq.ResourceID)
			handlers.RespondNotFound(w, handlers.CodeScheduleNotFound, msgScheduleNotFound)

		default:
			h.logger.Error("GET /store/bookings/availability - Failed to get availability: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /store/bookings/availability - Availability retrieved: resource_id=%s, date=%s, slots=%d",
		result.ResourceID, useCaseReq.Date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
