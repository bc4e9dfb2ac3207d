package middleware

import (
	"log"
	"net/http"
	"time"
)

// LoggingMiddleware logs every request with timing and client address.
type LoggingMiddleware struct {
	logger *log.Logger
}

// NewLoggingMiddleware creates a new logging middleware.
func NewLoggingMiddleware(logger *log.Logger) *LoggingMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &LoggingMiddleware{logger: logger}
}

// LogRequests logs method, path, status and duration for each request.
func (lm *LoggingMiddleware) LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		lm.logger.Printf("[%s] %s %d %v - IP: %s",
			r.Method,
			r.RequestURI,
			wrapped.status,
			time.Since(start),
			ClientIP(r),
		)

		if wrapped.status == http.StatusTooManyRequests {
			lm.logger.Printf("SECURITY: Rate limit exceeded for IP: %s", ClientIP(r))
		}
	})
}

// statusWriter captures the status code written by the handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}
