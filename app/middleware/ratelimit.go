package appMiddleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/tahoefourseasons/itinerary-api/app/observability/metrics"
	"github.com/tahoefourseasons/itinerary-api/internal/api"
	"github.com/tahoefourseasons/itinerary-api/internal/limiter"
)

// RateLimit denies clients that exceed the per-address window before any
// request processing happens. RealIP must run earlier in the chain so
// r.RemoteAddr already reflects X-Forwarded-For. Limiter backend errors fail
// open: availability of the endpoint wins over limiter precision.
func RateLimit(l limiter.Limiter, logger *slog.Logger, m *metrics.AppMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientKey := clientAddress(r)

			allowed, err := l.Admit(r.Context(), clientKey)
			if err != nil {
				logger.WarnContext(r.Context(), "Rate limiter unavailable, admitting request",
					slog.String("client", clientKey),
					slog.Any("error", err))
				allowed = true
			}

			if !allowed {
				if m != nil {
					m.RateLimitDeniedTotal.Add(r.Context(), 1)
				}
				logger.InfoContext(r.Context(), "Rate limit exceeded", slog.String("client", clientKey))
				api.ErrorResponse(w, r, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RealIP rewrites RemoteAddr without a port.
		return r.RemoteAddr
	}
	return host
}
