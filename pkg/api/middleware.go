package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/remihq/remi/pkg/logger"
)

// RequestID tags every request context so log lines from one request share
// an identifier.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.ContextWithRequestID(r.Context(), uuid.NewString())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
