package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS builds the cross-origin policy from a comma separated origin list.
// A lone "*" (or an empty list) opens the API to any origin; credential
// sharing is only enabled when explicit origins are configured, since the
// CORS rules forbid combining credentials with a wildcard origin.
func CORS(origins string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}

	trimmed := strings.TrimSpace(origins)
	if trimmed == "" || trimmed == "*" {
		cfg.AllowAllOrigins = true
		return cors.New(cfg)
	}

	cfg.AllowCredentials = true
	for _, origin := range strings.Split(trimmed, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}
	return cors.New(cfg)
}
