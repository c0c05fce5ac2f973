package backend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/personalplanner/planner/internal/auth"
	"github.com/personalplanner/planner/internal/source"
	"github.com/personalplanner/planner/internal/students"
	"github.com/personalplanner/planner/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	megabyte         = 1024 * 1024
	DefaultCacheSize = 64 * megabyte
	DefaultCacheTTL  = 30 * time.Second
)

var _ source.Source = (*Client)(nil)

type ClientParams struct {
	// BaseURL of the backend, without the /api prefix.
	BaseURL    string
	HTTPClient *http.Client
	CacheSize  int
	CacheTTL   time.Duration
}

// Client reads student records from the product backend REST API, on behalf of the
// trainer found in the request context. Responses are cached per token for a short while.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *freecache.Cache
	cacheTTL   int // seconds, as freecache wants it
}

func NewClient(params ClientParams) *Client {
	if params.CacheSize <= 0 {
		params.CacheSize = DefaultCacheSize
	}
	if params.CacheTTL <= 0 {
		params.CacheTTL = DefaultCacheTTL
	}
	if params.HTTPClient == nil {
		params.HTTPClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimSuffix(params.BaseURL, "/") + "/api",
		httpClient: params.HTTPClient,
		cache:      freecache.NewCache(params.CacheSize),
		cacheTTL:   int(params.CacheTTL.Seconds()),
	}
}

func (c *Client) Student(ctx context.Context, studentID string) (_ *students.Student, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backend.student")
	span.SetAttributes(attribute.String("student_id", studentID))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// the backend only lists the trainer's students
	var all []students.Student
	if err := c.getJSON(ctx, "/students", nil, &all); err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == studentID {
			return &all[i], nil
		}
	}
	return nil, source.ErrStudentNotFound
}

func (c *Client) Workouts(ctx context.Context, studentID string) (_ []students.WorkoutSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backend.workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var workouts []students.WorkoutSummary
	if err := c.getJSON(ctx, "/workouts", studentQuery(studentID), &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (c *Client) Cardio(ctx context.Context, studentID string) (_ []students.CardioSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backend.cardio")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var sessions []students.CardioSession
	if err := c.getJSON(ctx, "/cardio", studentQuery(studentID), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Client) Evolutions(ctx context.Context, studentID string) (_ []students.EvolutionRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backend.evolutions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var records []students.EvolutionRecord
	if err := c.getJSON(ctx, "/evolution", studentQuery(studentID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok || principal.Token == "" {
		return source.ErrNoPrincipal
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	cacheKey := []byte(tokenDigest(principal.Token) + "::" + reqURL)
	if cached, err := c.cache.Get(cacheKey); err == nil {
		if err := json.Unmarshal(cached, dst); err == nil {
			log.Tracef("backend response for %s found in cache", path)
			return nil
		} else {
			log.Errorf("failed to unmarshal cached backend response for %s: %s", path, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+principal.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read backend response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return source.ErrUnauthorized
	default:
		return fmt.Errorf("backend %s responded with status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(respBytes, dst); err != nil {
		return fmt.Errorf("unmarshal backend response for %s: %w", path, err)
	}

	if err := c.cache.Set(cacheKey, respBytes, c.cacheTTL); err != nil {
		log.Errorf("failed to cache backend response for %s: %s", path, err)
	}

	return nil
}

func studentQuery(studentID string) url.Values {
	return url.Values{"student_id": []string{studentID}}
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}
