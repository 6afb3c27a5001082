package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-SlotReservationService/internal/api/handlers"
)

// InternalTokenHeader заголовок с токеном внутренних вызовов
const InternalTokenHeader = "X-Internal-Token"

const msgUnauthorized = "неверный или отсутствующий внутренний токен"

// InternalAuth пропускает запрос только с корректным X-Internal-Token.
// Пустой token отключает проверку.
func InternalAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(InternalTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
