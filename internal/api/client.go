// Package api submits onboarding and media forms to the partner service
// and reads back the video catalogue.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rhystmorgan/onboard/internal/metrics"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "onboard/1.0"

	PartnersPath = "/api/partners/"
	VideosPath   = "/api/videos/"

	maxResponseBytes = 1 << 20
)

type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
	metrics    *metrics.Recorder
	mu         sync.RWMutex
	status     Status
}

// Status is the last observed reachability of the service.
type Status struct {
	BaseURL     string
	Reachable   bool
	LastStatus  int
	LastChecked time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Client) {
		c.metrics = r
	}
}

func NewClient(config Config, opts ...Option) (*Client, error) {
	if config.BaseURL == "" {
		return nil, NewError(ErrInvalidRequest, "base URL is required", nil)
	}

	u, err := url.Parse(config.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, NewError(ErrInvalidRequest, fmt.Sprintf("invalid base URL %q", config.BaseURL), err)
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	c := &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		logger:     zerolog.Nop(),
		status: Status{
			BaseURL:     config.BaseURL,
			LastChecked: time.Now(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint joins path onto the base URL with exactly one slash between
// them, whether or not the base ends in a slash.
func (c *Client) Endpoint(path string) string {
	return JoinURL(c.config.BaseURL, path)
}

func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// BaseURL is used to resolve relative media locations.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

func (c *Client) GetStatus() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.status
}

func (c *Client) updateStatus(reachable bool, status int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.Reachable = reachable
	c.status.LastStatus = status
	c.status.LastChecked = time.Now()
}

// newRequest builds a request against path carrying a fresh request ID.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.Endpoint(path), body)
	if err != nil {
		return nil, "", NewError(ErrInvalidRequest, "failed to build request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	return req, requestID, nil
}

// do sends req exactly once and returns the status and body.
func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.updateStatus(false, 0)
		return 0, nil, ClassifyError(err)
	}
	defer resp.Body.Close()

	c.updateStatus(true, resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, NewError(ErrInvalidResponse, "failed to read response", err)
	}

	return resp.StatusCode, body, nil
}

// send performs one submission attempt and classifies its outcome.
func (c *Client) send(endpoint string, req *http.Request, requestID string) Result {
	start := time.Now()
	logger := c.logger.With().
		Str("endpoint", endpoint).
		Str("request_id", requestID).
		Logger()

	status, body, err := c.do(req)
	elapsed := time.Since(start)

	if err != nil && status == 0 {
		apiErr := ClassifyError(err)
		logger.Error().Err(err).Str("type", string(apiErr.Type)).Dur("elapsed", elapsed).Msg("submission failed")
		c.metrics.Submission(endpoint, metrics.SubmissionTransport, elapsed)
		return transportResult(err)
	}
	if err != nil {
		logger.Warn().Err(err).Int("status", status).Msg("submission response unreadable")
		body = nil
	}

	result := classifyResponse(status, body)

	event := logger.Info()
	outcome := metrics.SubmissionSuccess
	switch {
	case result.Success:
	case len(result.Errors) > 0:
		event = logger.Warn().Strs("fields", errorKeys(result.Errors))
		outcome = metrics.SubmissionFieldErrors
	default:
		event = logger.Warn().Str("error", result.Error)
		outcome = metrics.SubmissionGlobalError
	}
	event.Int("status", status).Dur("elapsed", elapsed).Msg("submission completed")
	c.metrics.Submission(endpoint, outcome, elapsed)

	return result
}

// transportResult reports a failure that produced no HTTP response.
func transportResult(err error) Result {
	msg := ""
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Cause != nil {
			msg = apiErr.Cause.Error()
		} else {
			msg = err.Error()
		}
	}
	if msg == "" {
		msg = UnknownErrorMessage
	}
	return Result{Error: msg}
}
