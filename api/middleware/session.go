package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront-pricing/api/responses"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
)

// SessionHeader carries the anonymous shopper session chosen by the storefront client.
const SessionHeader = "X-Session-Id"

const maxSessionIDLength = 128

// ShopperSession reads the session header into the context. Requests without one are
// served as anonymous; a malformed header is rejected.
func ShopperSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
			if sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(sessionID) > maxSessionIDLength || strings.ContainsAny(sessionID, ": \t") {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid session id").
					WithDetails(map[string]any{"header": SessionHeader}))
				return
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that carry no shopper session.
func RequireSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session id is required").
					WithDetails(map[string]any{"header": SessionHeader}))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
