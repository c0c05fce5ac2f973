package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/personalplanner/planner/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 15 * time.Minute
	sessionKeyPrefix = "planner-session||"
)

type identityProvider interface {
	User(ctx context.Context, token string) (*User, error)
}

// TokenChecker validates bearer tokens against the identity provider and keeps
// the token -> user id mapping in redis for ttl, so most requests skip the round trip.
type TokenChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	identity    identityProvider
}

func NewTokenChecker(ttl time.Duration, redisClient *redis.Client, identity identityProvider) *TokenChecker {
	return &TokenChecker{
		ttl:         ttl,
		redisClient: redisClient,
		identity:    identity,
	}
}

func (c *TokenChecker) CheckToken(ctx context.Context, token string) (_ Principal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.checkToken")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if token == "" {
		return Principal{}, ErrInvalidToken
	}

	key := SessionKey(token)
	userID, err := c.redisClient.Get(ctx, key).Result()
	switch {
	case err == nil && userID != "":
		return Principal{UserID: userID, Token: token}, nil
	case err == nil, errors.Is(err, redis.Nil):
		// not cached yet
	default:
		log.Warnf("token cache get: %s", err)
	}

	user, err := c.identity.User(ctx, token)
	if err != nil {
		return Principal{}, err
	}

	if err := c.redisClient.Set(ctx, key, user.ID, c.ttl).Err(); err != nil {
		log.Errorf("token cache set for user %s: %s", user.ID, err)
	}

	return Principal{UserID: user.ID, Token: token}, nil
}

// Forget drops the cached session, the next request with token is validated again.
func (c *TokenChecker) Forget(ctx context.Context, token string) error {
	return c.redisClient.Del(ctx, SessionKey(token)).Err()
}

// SessionKey is the redis key of a cached token; the raw token is never stored.
func SessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return sessionKeyPrefix + hex.EncodeToString(sum[:])
}
