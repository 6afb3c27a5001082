package create_hold

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotReservationService/internal/api/handlers"
	createHold "github.com/m04kA/SMC-SlotReservationService/internal/usecase/create_hold"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotTime    = "некорректный формат slot_start/slot_end, ожидается RFC 3339"
	msgInvalidInput       = "некорректные параметры удержания"
	msgSlotUnavailable    = "выбранный временной слот недоступен"
	msgScheduleNotFound   = "расписание не найдено"
	msgLineItemNotFound   = "позиция не найдена в корзине"
	msgNotAppointment     = "позиция корзины не является записью"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /store/bookings/hold
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /store/bookings/hold - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /store/bookings/hold - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrSlotUnavailable):
			h.logger.Warn("POST /store/bookings/hold - Slot unavailable: cart_id=%s, line_item_id=%s", req.CartID, req.LineItemID)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotUnavailable)

		case errors.Is(err, createHold.ErrScheduleNotFound):
			h.logger.Warn("POST /store/bookings/hold - Schedule not found: resource_id=%s", req.ResourceID)
			handlers.RespondNotFound(w, handlers.CodeScheduleNotFound, msgScheduleNotFound)

		case errors.Is(err, createHold.ErrLineItemNotFound):
			h.logger.Warn("POST /store/bookings/hold - Line item not found: cart_id=%s, line_item_id=%s", req.CartID, req.LineItemID)
			handlers.RespondBadRequest(w, msgLineItemNotFound)

		case errors.Is(err, createHold.ErrNotAppointment):
			h.logger.Warn("POST /store/bookings/hold - Not an appointment: cart_id=%s, line_item_id=%s", req.CartID, req.LineItemID)
			handlers.RespondBadRequest(w, msgNotAppointment)

		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /store/bookings/hold - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /store/bookings/hold - Failed to create hold: cart_id=%s, line_item_id=%s, error=%v",
				req.CartID, req.LineItemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /store/bookings/hold - Hold created successfully: hold_id=%s, cart_id=%s, line_item_id=%s",
		result.ID, req.CartID, req.LineItemID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
