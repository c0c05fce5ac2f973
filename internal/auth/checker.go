package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid or expired token")

var _ Checker = (*TokenChecker)(nil)
var _ Checker = (*StaticChecker)(nil)

type Checker interface {
	CheckToken(ctx context.Context, token string) (Principal, error)
}

// Principal is the authenticated trainer. Token is forwarded to the backend on their behalf.
type Principal struct {
	UserID string
	Token  string
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
