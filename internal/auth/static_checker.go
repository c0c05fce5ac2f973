package auth

import "context"

// StaticChecker accepts a fixed set of tokens. Used in tests and for local development
// when no identity provider is configured.
type StaticChecker struct {
	Tokens map[string]string // token -> user id
}

func NewStaticChecker() *StaticChecker {
	return &StaticChecker{
		Tokens: map[string]string{},
	}
}

func (c *StaticChecker) CheckToken(_ context.Context, token string) (Principal, error) {
	userID, ok := c.Tokens[token]
	if !ok || token == "" {
		return Principal{}, ErrInvalidToken
	}
	return Principal{UserID: userID, Token: token}, nil
}
