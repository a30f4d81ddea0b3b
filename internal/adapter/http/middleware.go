package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/domain"
)

type ctxKey struct{}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

func LoggingMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := fmt.Sprintf("req-%d", start.UnixNano())
			r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, reqID))
			w.Header().Set("X-Request-ID", reqID)

			logger.Debug("http_request", fmt.Sprintf("%s %s", r.Method, r.URL.Path), reqID, map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			logger.Debug("http_response", "Request completed", reqID, map[string]interface{}{
				"status":      rec.status,
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func RecoveryMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic_recovered", "Panic recovered", requestID(r), nil, fmt.Errorf("%v", err))
					respondJSON(w, http.StatusInternalServerError, envelope{Error: "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type StaffChecker interface {
	LoggedIn(ctx context.Context) (bool, error)
}

// StaffOnly rejects the request unless staff are signed in on this device.
func StaffOnly(staff StaffChecker, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := staff.LoggedIn(r.Context())
			if err != nil {
				respondError(w, r, logger, err)
				return
			}
			if !ok {
				respondError(w, r, logger, fmt.Errorf("staff login required: %w", domain.ErrUnauthorized))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
