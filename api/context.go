package api

import (
	"context"

	"github.com/rpupo63/project-hub-backend/auth"
)

type keyType string

const claimsKey keyType = "claims"

// ctxWithClaims adds session claims to the context
func ctxWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ctxGetClaims retrieves session claims from the context
func ctxGetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
