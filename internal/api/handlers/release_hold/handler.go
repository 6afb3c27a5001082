package release_hold

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotReservationService/internal/api/handlers"
	releaseHold "github.com/m04kA/SMC-SlotReservationService/internal/usecase/release_hold"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "требуется cart_id и ровно один из hold_id, line_item_id"
)

type Handler struct {
	useCase ReleaseHoldUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /store/bookings/hold
// Идемпотентно: повторное снятие и снятие несуществующего удержания тоже 204
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReleaseHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /store/bookings/hold - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		if errors.Is(err, releaseHold.ErrInvalidInput) {
			h.logger.Warn("DELETE /store/bookings/hold - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}

		h.logger.Error("DELETE /store/bookings/hold - Failed to release hold: cart_id=%s, error=%v", req.CartID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /store/bookings/hold - Released: cart_id=%s, released=%d", req.CartID, result.Released)
	handlers.RespondNoContent(w)
}
