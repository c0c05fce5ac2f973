package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/personalplanner/planner/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

const identityUserPath = "/auth/v1/user"

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// IdentityClient asks the external identity provider who owns an access token.
type IdentityClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewIdentityClient(baseURL, apiKey string, httpClient *http.Client) *IdentityClient {
	return &IdentityClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (c *IdentityClient) User(ctx context.Context, token string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "identity.user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+identityUserPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read identity response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrInvalidToken
	default:
		log.Debugf("identity provider responded [%d]: %s", resp.StatusCode, respBytes)
		return nil, fmt.Errorf("identity provider status: %d", resp.StatusCode)
	}

	user := &User{}
	if err := json.Unmarshal(respBytes, user); err != nil {
		return nil, fmt.Errorf("unmarshal identity user: %w", err)
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}

	return user, nil
}
