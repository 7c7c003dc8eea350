// internal/adapters/strapi/client.go
package strapi

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hawaii_tourism/internal/adapters/observability"
	"hawaii_tourism/internal/domain"
)

// ErrGraphQL wraps errors reported in the "errors" array of a response.
var ErrGraphQL = errors.New("strapi: graphql error")

type Client struct {
	url     string
	hc      *http.Client
	token   string
	rl      *rate.Limiter
	retries int
}

// New builds a client for the CMS GraphQL endpoint. retries is the number of
// extra attempts on 429/5xx; zero means a failure is reported immediately.
func New(url, token string, rps, retries int) (*Client, error) {
	if url == "" {
		return nil, fmt.Errorf("GraphQL URL is required")
	}
	if rps <= 0 {
		rps = 10
	}
	if retries < 0 {
		retries = 0
	}
	return &Client{
		url:     url,
		hc:      &http.Client{Timeout: 10 * time.Second},
		token:   token,
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		retries: retries,
	}, nil
}

// ---- Public API ----

func (c *Client) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	var out struct {
		Destinations []map[string]any `json:"destinations"`
	}
	if err := c.query(ctx, "destinations", destinationsQuery, nil, &out); err != nil {
		return nil, err
	}
	return mapAll(out.Destinations, mapDestination), nil
}

func (c *Client) GetDestinationBySlug(ctx context.Context, slug string) (domain.Destination, error) {
	var out struct {
		Destinations []map[string]any `json:"destinations"`
	}
	if err := c.query(ctx, "destination", destinationBySlugQuery, map[string]any{"slug": slug}, &out); err != nil {
		return domain.Destination{}, err
	}
	if len(out.Destinations) == 0 {
		return domain.Destination{}, &domain.NotFoundError{Kind: "destination", Slug: slug}
	}
	return mapDestination(out.Destinations[0]), nil
}

func (c *Client) ListActivities(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error) {
	vars := map[string]any{}
	if cat := f.CategoryValue(); cat != "" {
		vars["filters"] = map[string]any{"category": map[string]any{"eq": cat}}
	}
	var out struct {
		Activities []map[string]any `json:"activities"`
	}
	if err := c.query(ctx, "activities", activitiesQuery, vars, &out); err != nil {
		return nil, err
	}
	// location is a JSON field upstream, so the destination predicate runs here.
	return domain.Filter(mapAll(out.Activities, mapActivity), f.Match), nil
}

func (c *Client) GetActivityBySlug(ctx context.Context, slug string) (domain.Activity, error) {
	vars := map[string]any{"filters": map[string]any{"slug": map[string]any{"eq": slug}}}
	var out struct {
		Activities []map[string]any `json:"activities"`
	}
	if err := c.query(ctx, "activity", activitiesQuery, vars, &out); err != nil {
		return domain.Activity{}, err
	}
	if len(out.Activities) == 0 {
		return domain.Activity{}, &domain.NotFoundError{Kind: "activity", Slug: slug}
	}
	return mapActivity(out.Activities[0]), nil
}

func (c *Client) ListEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	vars := map[string]any{}
	if cat := f.CategoryValue(); cat != "" {
		vars["filters"] = map[string]any{"category": map[string]any{"eq": cat}}
	}
	var out struct {
		Events []map[string]any `json:"events"`
	}
	if err := c.query(ctx, "events", eventsQuery, vars, &out); err != nil {
		return nil, err
	}
	return mapAll(out.Events, mapEvent), nil
}

func (c *Client) GetEventBySlug(ctx context.Context, slug string) (domain.Event, error) {
	vars := map[string]any{"filters": map[string]any{"slug": map[string]any{"eq": slug}}}
	var out struct {
		Events []map[string]any `json:"events"`
	}
	if err := c.query(ctx, "event", eventsQuery, vars, &out); err != nil {
		return domain.Event{}, err
	}
	if len(out.Events) == 0 {
		return domain.Event{}, &domain.NotFoundError{Kind: "event", Slug: slug}
	}
	return mapEvent(out.Events[0]), nil
}

// ---- Internals ----

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// query posts one GraphQL operation and decodes its data block into out.
func (c *Client) query(ctx context.Context, op, q string, vars map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: q, Variables: vars})
	if err != nil {
		return err
	}
	raw, err := c.post(ctx, op, body)
	if err != nil {
		return err
	}

	var env gqlResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("strapi: decode %s response: %w", op, err)
	}
	if len(env.Errors) > 0 {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("%w: %s: %s", ErrGraphQL, op, strings.Join(msgs, "; "))
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("strapi: %s response has no data", op)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("strapi: decode %s data: %w", op, err)
	}
	return nil
}

// post sends the request body with client-side rate limiting and returns the
// raw response body. 429 and transient 5xx are retried up to c.retries times,
// honoring Retry-After when provided.
func (c *Client) post(ctx context.Context, op string, body []byte) ([]byte, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for i := 0; i <= c.retries; i++ {
		last := i == c.retries

		// build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hawaii-tourism/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("strapi", op, 0, time.Since(start))
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if !last && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr
		}
		observability.ObserveExternal("strapi", op, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			b, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			return b, err

		case http.StatusNotFound:
			resp.Body.Close()
			return nil, fmt.Errorf("strapi: endpoint %w", domain.ErrNotFound)

		case http.StatusUnauthorized:
			resp.Body.Close()
			return nil, fmt.Errorf("strapi: %w", domain.ErrUnauthorized)

		case http.StatusForbidden:
			resp.Body.Close()
			return nil, fmt.Errorf("strapi: %w", domain.ErrForbidden)

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("strapi: remote %d", resp.StatusCode)
			if !last && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr

		default:
			// GraphQL validation errors come back as 400 with an errors array
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, fmt.Errorf("strapi: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return nil, lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
