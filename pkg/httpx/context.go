package httpx

import (
	"context"

	"github.com/aussiebroadwan/researchdesk/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyClaims ctxKey = "claims"
)

// ClaimsFromContext returns the verified token claims stored by
// AuthnMiddleware.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// UserIDFromContext returns the authenticated subject, or "" for anonymous
// requests.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CtxKeyUserID).(string)
	return id
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
