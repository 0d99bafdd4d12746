package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stagedoor/greenroom/internal/metrics"
)

type contextKey int

const (
	correlationIDKey contextKey = iota
	identityKey
)

// CorrelationID returns the correlation ID carried by ctx, or "" when the
// request never passed through RequestID.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// isBrowserPath reports whether path belongs to the embedded catalog
// browser, which bypasses auth and the JSON envelope.
func isBrowserPath(path string) bool {
	return strings.HasPrefix(path, "/_ui")
}

// Recovery converts a handler panic into a 500 envelope instead of a
// dropped connection.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("panic recovered",
						"error", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"correlationId", CorrelationID(r.Context()),
					)
					WriteError(w, http.StatusInternalServerError, &Error{
						Status:        "error",
						Message:       "Internal Server Error",
						CorrelationID: CorrelationID(r.Context()),
						Category:      "INTERNAL_ERROR",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID stamps each request with a fresh UUID correlation ID, visible to
// handlers through the context and to callers through the X-Correlation-Id
// header.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			ctx := context.WithValue(r.Context(), correlationIDKey, id)
			w.Header().Set("X-Correlation-Id", id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Auth returns middleware that resolves the caller's role from the Bearer
// token and stores it in the request context. Requests without a token pass
// through as unauthenticated viewers; per-route guards decide what a viewer
// may do. A token that matches neither configured value is rejected
// outright. With no tokens configured at all every caller is an admin,
// which keeps local development friction-free.
func Auth(authToken, adminToken string) func(http.Handler) http.Handler {
	openMode := authToken == "" && adminToken == ""
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isBrowserPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			identity := Identity{Role: RoleViewer}
			switch {
			case openMode:
				identity = Identity{Role: RoleAdmin, Authenticated: true}
			default:
				header := r.Header.Get("Authorization")
				if header != "" {
					token := strings.TrimPrefix(header, "Bearer ")
					switch {
					case adminToken != "" && token == adminToken:
						identity = Identity{Role: RoleAdmin, Authenticated: true}
					case authToken != "" && token == authToken:
						identity = Identity{Role: RoleEditor, Authenticated: true}
					default:
						WriteError(w, http.StatusUnauthorized, &Error{
							Status:        "error",
							Message:       "Authentication credentials are invalid.",
							CorrelationID: CorrelationID(r.Context()),
							Category:      CategoryValidationError,
						})
						return
					}
				}
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// JSONContentType marks every API response as JSON. Browser paths keep the
// content types the file server assigns.
func JSONContentType() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isBrowserPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			next.ServeHTTP(w, r)
		})
	}
}

// statusRecorder remembers the status code the inner handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

// Logging emits one slog line per request with outcome, timing, and the
// correlation ID so a log line can be matched to an error envelope.
func Logging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(sr, r)
			slog.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sr.code,
				"duration", time.Since(start).String(),
				"correlationId", CorrelationID(r.Context()),
			)
		})
	}
}

// Observe returns middleware that counts each served request.
func Observe(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sr := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(sr, r)
			m.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(sr.code)).Inc()
		})
	}
}

// Chain wraps handler in middlewares, first one outermost.
func Chain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
