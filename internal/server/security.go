package server

import (
	"net/http"
	"strings"
)

// SecurityConfig holds the settings applied by SecurityMiddleware.
type SecurityConfig struct {
	// EnableCORS enables the Access-Control-* response headers.
	EnableCORS bool
	// AllowedOrigins lists the origins allowed by CORS. "*" allows any.
	AllowedOrigins []string
	// AllowedMethods lists the methods advertised to CORS preflights.
	AllowedMethods []string
	// MaxBodyBytes bounds every request body.
	MaxBodyBytes int64
}

// DefaultMaxBodyBytes is the request body limit of DefaultSecurityConfig.
const DefaultMaxBodyBytes = 1 << 20

// DefaultSecurityConfig returns the configuration used by NewServer.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		MaxBodyBytes:   DefaultMaxBodyBytes,
	}
}

// SecurityMiddleware sets the hardening headers, answers CORS preflights
// and caps the request body before calling next.
//
// Parameters:
//   - config: The security settings.
//   - next: The wrapped handler.
//
// Returns:
//   - http.HandlerFunc: The wrapping handler.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Cache-Control", "no-store")

		if config.EnableCORS {
			if origin, ok := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if config.MaxBodyBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, config.MaxBodyBytes)
		}
		next(w, r)
	}
}

func allowedOrigin(allowed []string, origin string) (string, bool) {
	for _, a := range allowed {
		if a == "*" {
			return "*", true
		}
		if origin != "" && a == origin {
			return origin, true
		}
	}
	return "", false
}
