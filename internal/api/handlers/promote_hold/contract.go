package promote_hold

import (
	"context"

	promoteHold "github.com/m04kA/SMC-SlotReservationService/internal/usecase/promote_hold"
)

type PromoteHoldUseCase interface {
	Execute(ctx context.Context, req *promoteHold.Request) (*promoteHold.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
