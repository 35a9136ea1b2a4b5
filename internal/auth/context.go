package auth

import (
	"context"
)

type ctxKey string

const claimsKey ctxKey = "authClaims"

// Claims is the decoded identity attached to a request after authentication.
type Claims struct {
	Subject string
	Role    string
}

func (c Claims) IsAdmin() bool {
	return c.Role == "ADMIN"
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func FromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey).(Claims)
	return c, ok
}

func Subject(ctx context.Context) string {
	c, _ := FromContext(ctx)
	return c.Subject
}
