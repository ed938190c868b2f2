package marketapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/pkg/ctxutil"
)

// Middleware wraps an http.RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain combines multiple middleware into a single Middleware.
// Chain(mw1, mw2)(rt) results in mw1(mw2(rt)), so mw1 sees the request first.
func Chain(mws ...Middleware) Middleware {
	return func(final http.RoundTripper) http.RoundTripper {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

// RequestID stamps every outbound request with X-Request-Id, reusing the
// context's request ID when present, and X-Admin-Session when the context
// carries a session ID.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			id := ctxutil.RequestIDFromCtx(r.Context())
			if id == "" {
				id = uuid.New().String()
			}
			r = r.Clone(ctxutil.WithRequestID(r.Context(), id))
			r.Header.Set("X-Request-Id", id)
			if sid, ok := ctxutil.SessionIDFromCtx(r.Context()); ok {
				r.Header.Set("X-Admin-Session", sid.String())
			}
			return next.RoundTrip(r)
		})
	}
}

// BearerToken adds an Authorization header. An empty token is a no-op.
func BearerToken(token string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if token == "" {
			return next
		}
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			r = r.Clone(r.Context())
			r.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(r)
		})
	}
}

// Logger logs each outbound request with method, path, status, duration,
// and request_id.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", r.Header.Get("X-Request-Id")),
			}

			level := slog.LevelDebug
			switch {
			case err != nil:
				level = slog.LevelWarn
				attrs = append(attrs, slog.String("error", err.Error()))
			case resp.StatusCode >= 500:
				level = slog.LevelError
				attrs = append(attrs, slog.Int("status", resp.StatusCode))
			default:
				attrs = append(attrs, slog.Int("status", resp.StatusCode))
			}
			logger.LogAttrs(r.Context(), level, "http.outbound", attrs...)

			return resp, err
		})
	}
}
