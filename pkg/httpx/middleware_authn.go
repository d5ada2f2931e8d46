package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/researchdesk/pkg/jwtx"
	"github.com/aussiebroadwan/researchdesk/pkg/slogx"
)

// AuthnMiddleware requires a valid "Authorization: Bearer" token and stores
// its claims in the request context.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			scheme, raw, ok := strings.Cut(authz, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				writeBearerError(w, "Not authorized, no token", "missing bearer token")
				return
			}

			claims, err := v.Verify(strings.TrimSpace(raw))
			if err != nil {
				log.Info("bearer token rejected", "error", err)
				writeBearerError(w, "Not authorized, token failed", "token verification failed")
				return
			}

			if err := claims.ValidateExpiry(); err != nil {
				writeBearerError(w, "Not authorized, token failed", "token expired")
				return
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.WithUserID(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeBearerError answers 401 with an RFC 6750 challenge and the usual JSON
// error body.
func writeBearerError(w http.ResponseWriter, message, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", message)
}
