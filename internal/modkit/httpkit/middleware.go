package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"marketbrowse/internal/platform/net/middleware"
)

// StackOptions tunes the shared API middleware stack
type StackOptions struct {
	CORSOrigins []string      // empty allows any origin
	Timeout     time.Duration // per request deadline, 0 means 30s
	Slow        time.Duration // access log warn threshold, 0 means 500ms
	MaxInFlight int           // concurrent request cap, 0 disables
}

// CommonStack returns the middleware every API route runs behind, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Slow <= 0 {
		o.Slow = 500 * time.Millisecond
	}
	stack := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.Correlate,
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
	}
	if o.MaxInFlight > 0 {
		stack = append(stack, middleware.Throttle(o.MaxInFlight))
	}
	return append(stack, middleware.Timeout(o.Timeout))
}

// Auth rejects requests without a resolvable wallet
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler { return middleware.Auth(p) }

// OptionalAuth runs Auth only when the request carries an Authorization header
// anonymous requests pass through without a wallet in context
func OptionalAuth(p middleware.AuthPort) func(http.Handler) http.Handler {
	auth := Auth(p)
	return func(next http.Handler) http.Handler {
		authed := auth(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			authed.ServeHTTP(w, r)
		})
	}
}
