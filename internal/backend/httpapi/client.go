// Package httpapi implements the service.Service interface over the backend's JSON HTTP API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"taskboard/internal/config"
	"taskboard/internal/service"
)

const (
	// RequestTimeout bounds every individual API call.
	RequestTimeout = 10 * time.Second

	// DefaultProjectsLimit is the page size for project listings when none is given.
	DefaultProjectsLimit = 20

	// DefaultTasksLimit is the page size for task listings when none is given.
	DefaultTasksLimit = 50

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// UserAgent is sent with every request. Set at build time together with the version.
var UserAgent = "taskboard/0.1.0"

// Client performs JSON requests against the API base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewClient creates a transport for baseURL.
// A zero timeout on httpClient is replaced by RequestTimeout; the caller's client is not modified.
func NewClient(baseURL string, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	hc := *httpClient
	if hc.Timeout == 0 {
		hc.Timeout = RequestTimeout
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &hc,
		log:     log,
	}
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Backend groups the three resource clients and implements service.Service.
type Backend struct {
	*ProjectsClient
	*TasksClient
	*ReportsClient
}

// NewBackend builds the resource clients on top of one transport.
func NewBackend(c *Client) *Backend {
	return &Backend{
		ProjectsClient: &ProjectsClient{c: c},
		TasksClient:    &TasksClient{c: c},
		ReportsClient:  &ReportsClient{c: c},
	}
}

// New creates a backend from configuration.
// If a token file exists, requests carry it as a bearer token.
func New(ctx context.Context, cfg *config.Config) (*Backend, error) {
	baseURL, err := cfg.BaseURL()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	if cfg.HasToken() {
		token, err := ReadToken(cfg.TokenPath())
		if err != nil {
			return nil, err
		}
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	}
	httpClient.Timeout = RequestTimeout

	return NewBackend(NewClient(baseURL, httpClient, cfg.Log)), nil
}

// NewWithHTTPClient creates a backend with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Backend {
	return NewBackend(NewClient(baseURL, httpClient, nil))
}

// Do sends one request and decodes a JSON response into out (when non-nil).
// Non-2xx responses are returned as *googleapi.Error holding the status code and raw body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("api request failed",
			"method", method, "path", path, "request_id", requestID,
			"duration", time.Since(start), "error", err)
		return c.wrapError(err)
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		"method", method, "path", path, "request_id", requestID,
		"status", resp.StatusCode, "duration", time.Since(start))

	if err := googleapi.CheckResponse(resp); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// TimeoutError reports a request that exceeded the client timeout.
type TimeoutError struct {
	Timeout time.Duration
	err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout of %dms exceeded", e.Timeout.Milliseconds())
}

func (e *TimeoutError) Unwrap() error { return e.err }

// wrapError turns transport failures into errors with user-facing messages.
func (c *Client) wrapError(err error) error {
	if errors.Is(err, context.Canceled) {
		return context.Canceled
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Timeout: c.http.Timeout, err: err}
	}

	return err
}

// pageQuery builds limit/offset parameters, substituting defaultLimit for a zero limit.
func pageQuery(page service.Page, defaultLimit int) url.Values {
	limit := page.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(page.Offset))
	return q
}
