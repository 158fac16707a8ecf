package middleware

import (
	"log/slog"
	"mime"
	"net/http"
	"strings"
)

// ValidateJSONContentType rejects POST/PUT/PATCH bodies that are not JSON
func ValidateJSONContentType(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			// Bodiless requests are validated by the handler
			if r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}

			contentType := r.Header.Get("Content-Type")
			mediaType, _, err := mime.ParseMediaType(contentType)
			if err != nil || mediaType != "application/json" {
				log.Warn("invalid content type",
					slog.String("path", r.URL.Path),
					slog.String("content_type", contentType),
					slog.String("method", r.Method),
				)
				writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SanitizeInputs rejects path traversal patterns and markup in query parameters
func SanitizeInputs(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for key, values := range r.URL.Query() {
				for _, val := range values {
					if strings.ContainsAny(val, "<>\"'") {
						log.Warn("suspicious input detected",
							slog.String("path", r.URL.Path),
							slog.String("param", key),
						)
						writeJSONError(w, http.StatusBadRequest, "Invalid input: dangerous characters detected")
						return
					}
				}
			}

			if strings.Contains(r.URL.Path, "..") || strings.Contains(r.URL.Path, "//") {
				log.Warn("suspicious path pattern detected", slog.String("path", r.URL.Path))
				writeJSONError(w, http.StatusBadRequest, "Invalid path")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
