package server

import (
	"net/http"

	"github.com/nugen/evgb/internal/auth"
)

// AuthMiddleware requires a valid API key. With no keys configured it is a
// no-op, so a local daemon accepts writes without credentials.
func AuthMiddleware(authenticator *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if authenticator.Empty() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey, err := auth.ExtractAPIKey(r)
			if err != nil {
				writeError(w, r, &APIError{Status: http.StatusUnauthorized, Type: ErrTypeUnauthorized, Message: err.Error()})
				return
			}
			name, err := authenticator.ValidateAPIKey(apiKey)
			if err != nil {
				writeError(w, r, &APIError{Status: http.StatusUnauthorized, Type: ErrTypeUnauthorized, Message: err.Error()})
				return
			}
			AddLogField(r.Context(), "api_key", name)
			next.ServeHTTP(w, r)
		})
	}
}
