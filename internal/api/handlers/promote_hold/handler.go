package promote_hold

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotReservationService/internal/api/handlers"
	promoteHold "github.com/m04kA/SMC-SlotReservationService/internal/usecase/promote_hold"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "hold_id обязателен"
	msgHoldNotFound       = "удержание не найдено"
	msgHoldExpired        = "удержание истекло, выберите время заново"
	msgSlotAlreadyBooked  = "выбранный временной слот уже забронирован"
)

type Handler struct {
	useCase PromoteHoldUseCase
	logger  Logger
}

func NewHandler(useCase PromoteHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/bookings/promote
// Вызывается при оформлении заказа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PromoteHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/bookings/promote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, promoteHold.ErrInvalidInput):
			h.logger.Warn("POST /internal/bookings/promote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, promoteHold.ErrHoldNotFound):
			h.logger.Warn("POST /internal/bookings/promote - Hold not found: hold_id=%s", req.HoldID)
			handlers.RespondNotFound(w, handlers.CodeHoldNotFound, msgHoldNotFound)

		case errors.Is(err, promoteHold.ErrHoldExpired):
			h.logger.Warn("POST /internal/bookings/promote - Hold expired: hold_id=%s", req.HoldID)
			handlers.RespondGone(w, handlers.CodeHoldExpired, msgHoldExpired)

		case errors.Is(err, promoteHold.ErrSlotAlreadyBooked):
			h.logger.Error("POST /internal/bookings/promote - Slot already booked: hold_id=%s", req.HoldID)
			handlers.RespondConflict(w, handlers.CodeSlotAlreadyBooked, msgSlotAlreadyBooked)

		default:
			h.logger.Error("POST /internal/bookings/promote - Failed to promote hold: hold_id=%s, error=%v", req.HoldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/bookings/promote - Hold promoted: hold_id=%s, booking_id=%s", req.HoldID, result.BookingID)
	handlers.RespondJSON(w, http.StatusCreated, &PromoteHoldResponse{BookingID: result.BookingID})
}
