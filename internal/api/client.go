package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "vigia/0.1"
)

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Path, e.Code)
}

// Client talks to the vehicle detection backend. All calls take a
// context; the HTTP client enforces an overall request timeout on top.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient builds a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: defaultTimeout},
	}
}

// BaseURL returns the backend address the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Path: path, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// Stats fetches GET /vehicle-stats.
func (c *Client) Stats(ctx context.Context) (StatsResponse, error) {
	var out StatsResponse
	err := c.do(ctx, http.MethodGet, "/vehicle-stats", &out)
	return out, err
}

// Objects fetches GET /detected-objects.
func (c *Client) Objects(ctx context.Context) (ObjectsResponse, error) {
	var out ObjectsResponse
	err := c.do(ctx, http.MethodGet, "/detected-objects", &out)
	return out, err
}

// Health fetches GET /health.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", &out)
	return out, err
}

// Count fetches GET /vehicle-detection.
func (c *Client) Count(ctx context.Context) (CountResponse, error) {
	var out CountResponse
	err := c.do(ctx, http.MethodGet, "/vehicle-detection", &out)
	return out, err
}

// Classes fetches GET /classes.
func (c *Client) Classes(ctx context.Context) (ClassesResponse, error) {
	var out ClassesResponse
	err := c.do(ctx, http.MethodGet, "/classes", &out)
	return out, err
}

// StartDetection posts /start-detection. Success false means detection
// was already running.
func (c *Client) StartDetection(ctx context.Context) (CommandResponse, error) {
	var out CommandResponse
	err := c.do(ctx, http.MethodPost, "/start-detection", &out)
	return out, err
}

// StopDetection posts /stop-detection.
func (c *Client) StopDetection(ctx context.Context) (CommandResponse, error) {
	var out CommandResponse
	err := c.do(ctx, http.MethodPost, "/stop-detection", &out)
	return out, err
}

// ResetCount posts /reset-count.
func (c *Client) ResetCount(ctx context.Context) (CommandResponse, error) {
	var out CommandResponse
	err := c.do(ctx, http.MethodPost, "/reset-count", &out)
	return out, err
}

// Cycle bundles the two payloads a dashboard refresh needs.
type Cycle struct {
	Stats   StatsResponse
	Objects ObjectsResponse
}

// FetchCycle fetches /vehicle-stats and /detected-objects concurrently.
// The cycle fails as a whole if either request fails; a partial result
// is never returned.
func (c *Client) FetchCycle(ctx context.Context) (Cycle, error) {
	type statsResult struct {
		stats StatsResponse
		err   error
	}
	type objectsResult struct {
		objects ObjectsResponse
		err     error
	}

	statsCh := make(chan statsResult, 1)
	objectsCh := make(chan objectsResult, 1)

	go func() {
		s, err := c.Stats(ctx)
		statsCh <- statsResult{s, err}
	}()
	go func() {
		o, err := c.Objects(ctx)
		objectsCh <- objectsResult{o, err}
	}()

	s := <-statsCh
	o := <-objectsCh

	if s.err != nil {
		return Cycle{}, fmt.Errorf("vehicle stats: %w", s.err)
	}
	if o.err != nil {
		return Cycle{}, fmt.Errorf("detected objects: %w", o.err)
	}
	return Cycle{Stats: s.stats, Objects: o.objects}, nil
}
