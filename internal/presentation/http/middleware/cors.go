package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/internal/config"
)

var (
	// headers a register client sends
	requiredRequestHeaders = []string{"Authorization", "Content-Type", IdempotencyKeyHeader, RequestIDHeader}
	// headers a register client reads back
	exposedResponseHeaders = []string{ReplayedHeader, RequestIDHeader}

	defaultCORSMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	defaultCORSOrigins = []string{"http://localhost:3000"}
)

// CORSMiddleware lets browser registers call the API. Configured headers are
// extended with the ones the register endpoints depend on.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = defaultCORSMethods
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     methods,
		AllowHeaders:     mergeHeaders(cfg.AllowedHeaders, requiredRequestHeaders),
		ExposeHeaders:    exposedResponseHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// mergeHeaders appends every required header missing from configured,
// comparing case-insensitively
func mergeHeaders(configured, required []string) []string {
	out := make([]string, 0, len(configured)+len(required))
	seen := make(map[string]bool, cap(out))
	for _, h := range append(append([]string{}, configured...), required...) {
		key := http.CanonicalHeaderKey(h)
		if h == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
