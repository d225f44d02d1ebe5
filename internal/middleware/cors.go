package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"

	"masjid-admin/internal/config"
)

// consoleMethods are the only methods any console route answers.
var consoleMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodOptions: true,
}

func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	origins := cfg.Server.CorsAllowedOrigins

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: consoleOnly(cfg.Server.CorsAllowedMethods),
		AllowedHeaders: cfg.Server.CorsAllowedHeaders,
		// Receipt and export downloads name their file here
		ExposedHeaders: []string{"Content-Disposition"},
		// Cookies (the CSRF one included) only go to origins listed by name
		AllowCredentials: !anyOrigin(origins),
		MaxAge:           300, // 5 minutes
	})

	return c.Handler
}

func consoleOnly(methods []string) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if consoleMethods[m] {
			out = append(out, m)
		}
	}
	return out
}

func anyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
