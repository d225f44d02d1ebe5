package middleware

import (
	"mime"
	"net/http"
	"net/url"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog/log"

	"masjid-admin/internal/config"
)

const CSRFFieldName = "csrf_token"

// NewCSRF protects browser form posts. JSON requests are exempt: browsers
// cannot send them cross-site without a CORS preflight.
func NewCSRF(cfg *config.Config, authKey []byte) func(http.Handler) http.Handler {
	protect := csrf.Protect(authKey,
		csrf.Secure(cfg.CSRF.Secure),
		csrf.Path("/"),
		csrf.FieldName(CSRFFieldName),
		csrf.TrustedOrigins(trustedOrigins(cfg.Server.CorsAllowedOrigins)),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.CSRF.Secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			if isJSONBody(r) {
				r = csrf.UnsafeSkipCheck(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}

// trustedOrigins converts CORS origins to the bare hosts csrf compares against.
func trustedOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			continue
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}
	return out
}

func isJSONBody(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	log.Warn().Err(csrf.FailureReason(r)).Str("path", r.URL.Path).Msg("CSRF check failed")
	http.Error(w, "Forbidden - the form expired, reload the page and try again", http.StatusForbidden)
}
