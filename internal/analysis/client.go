package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// ProductionBaseURL is the hosted analysis service
	ProductionBaseURL = "https://mediaunmasked.onrender.com"
	// DevelopmentBaseURL is the service started locally with uvicorn
	DevelopmentBaseURL = "http://localhost:8000"

	analyzePath    = "/api/analyze"
	healthPath     = "/health"
	defaultTimeout = 120 * time.Second
)

// HTTPClient defines the interface for HTTP operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the remote analysis service. It performs exactly one
// round trip per call: there is no retry and no caching.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	logger     *slog.Logger
	validate   *validator.Validate
}

// ClientOption allows configuring the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout replaces the transport with a plain http.Client using the
// given timeout. Zero means no timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the service rooted at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("analysis service base URL not set")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid analysis service base URL %q", baseURL)
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.New(slog.DiscardHandler),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the service root this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Analyze submits an article URL and returns the service's analysis.
// Every failure except context cancellation is reported as an *Error
// carrying a single human-readable message.
func (c *Client) Analyze(ctx context.Context, articleURL string, useAI bool) (*Response, error) {
	payload := Request{URL: articleURL, UseAI: useAI}
	if err := c.validate.Struct(payload); err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("%s: %q is not a valid article URL", failurePrefix, articleURL),
			Err:     err,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Message: GenericMessage, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Message: GenericMessage, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.logger.Debug("analysis request started", "url", articleURL, "use_ai", useAI)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.logger.Debug("analysis request cancelled", "url", articleURL)
			return nil, fmt.Errorf("analyze %s: %w", articleURL, ctxErr)
		}
		c.logger.Warn("analysis request failed", "url", articleURL, "error", err)
		return nil, &Error{Message: GenericMessage, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("analyze %s: %w", articleURL, ctxErr)
		}
		c.logger.Warn("failed to read analysis response", "url", articleURL, "error", err)
		return nil, &Error{Message: GenericMessage, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseAPIError(resp.StatusCode, respBody)
		c.logger.Warn("analysis rejected", "url", articleURL, "status", resp.StatusCode, "error", apiErr.Message)
		return nil, apiErr
	}

	var result Response
	if err := json.Unmarshal(respBody, &result); err != nil {
		c.logger.Warn("malformed analysis response", "url", articleURL, "error", err)
		return nil, &Error{Message: MalformedMessage, StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.Info("analysis finished",
		"url", articleURL,
		"status", resp.StatusCode,
		"has_score", result.HasMediaScore(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return &result, nil
}

// Health checks that the service answers its health endpoint
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseAPIError(resp.StatusCode, body)
	}

	var status struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(resp.Body, &status); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("health check returned unreadable body: %w", err)
	}
	if status.Status != "" && status.Status != "ok" {
		return fmt.Errorf("service reported status %q", status.Status)
	}
	return nil
}

// decodeJSON reads and decodes JSON from response body
func decodeJSON(r io.Reader, v interface{}) error {
	return json.NewDecoder(r).Decode(v)
}
