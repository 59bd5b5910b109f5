package middleware

import (
	"net/http"
	"time"

	"github.com/cask-games/marquee/pkg/log"
)

// NewLoggingMiddleware logs completed requests at debug level.
func NewLoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug("%s %s completed in %s", r.Method, r.URL.Path, time.Since(start))
		})
	}
}
