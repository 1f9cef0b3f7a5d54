package daemon

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"karaoke/internal/services"
)

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware tags each request context with a correlation ID, taking
// the client's X-Request-ID when present.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(services.WithRequestID(r.Context(), id)))
	})
}
