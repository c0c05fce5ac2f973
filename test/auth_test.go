package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/personalplanner/planner/internal/auth"

	"github.com/stretchr/testify/require"
)

// identityProvider answers the user lookup for a fixed set of tokens and
// counts how many lookups reached it.
type identityProvider struct {
	server  *httptest.Server
	tokens  map[string]string
	lookups atomic.Int32
}

func newIdentityProvider(tokens map[string]string) *identityProvider {
	p := &identityProvider{tokens: tokens}
	p.server = httptest.NewServer(http.HandlerFunc(p.handleUser))
	return p
}

func (p *identityProvider) handleUser(w http.ResponseWriter, r *http.Request) {
	p.lookups.Add(1)
	if r.URL.Path != "/auth/v1/user" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) <= len(prefix) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	userID, ok := p.tokens[header[len(prefix):]]
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(auth.User{ID: userID, Email: userID + "@personalplanner.app"})
}

func doRequest(ctx context.Context, t *testing.T, method, path, token string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s%s", serverEndpoint, path), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}
