package http

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"bilancio/internal/log"
)

// requestLogger logs one line when a request starts and one when it
// completes, tagged with the chi request id.
func requestLogger(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := chimw.GetReqID(r.Context())
			ip := clientIP(r)

			l.InfoContext(r.Context(), "Request started",
				log.FieldComponent, log.ComponentHTTP,
				log.FieldRequestID, reqID,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path,
				log.FieldQuery, r.URL.RawQuery,
				log.FieldClientIP, ip,
				"user_agent", r.Header.Get("User-Agent"))

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			level := slog.LevelInfo
			if ww.Status() >= 500 {
				level = slog.LevelError
			} else if ww.Status() >= 400 {
				level = slog.LevelWarn
			}

			l.Log(r.Context(), level, "Request completed",
				log.FieldComponent, log.ComponentHTTP,
				log.FieldRequestID, reqID,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path,
				log.FieldStatusCode, ww.Status(),
				log.FieldDuration, duration.Milliseconds(),
				log.FieldClientIP, ip,
				log.FieldSuccess, ww.Status() < 400)
		})
	}
}

// recoverer turns panics into 500 responses instead of dropping the
// connection.
func recoverer(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.ErrorContext(r.Context(), "Handler panic",
						log.FieldRequestID, chimw.GetReqID(r.Context()),
						log.FieldError, rec,
						"stack", string(debug.Stack()))
					internalError(w, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// securityHeaders applies a baseline header set for a JSON-only API.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// rateLimit rejects mutating requests once a client exceeds its
// per-minute budget. Reads are never limited.
func rateLimit(rl *rateLimiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodDelete:
				ip := clientIP(r)
				if !rl.allow(ip) {
					slog.WarnContext(r.Context(), "Rate limit exceeded",
						log.FieldClientIP, ip,
						log.FieldMethod, r.Method,
						log.FieldPath, r.URL.Path)
					w.Header().Set("Retry-After", "60")
					writeErr(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the caller address, preferring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
