package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/roster-sync/internal/platform/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL = "https://v3.football.api-sports.io"

	apiKeyHeader        = "x-apisports-key"
	defaultTimeout      = 20 * time.Second
	defaultRetryBackoff = time.Second
	maxResponseBytes    = 6 << 20
)

// ErrMissingAPIKey is returned by the first request when no key was configured.
var ErrMissingAPIKey = crerr.New("FOOTBALL_API_KEY is not set")

var errTransient = crerr.New("api-football transient failure")

// APIError is a non-2xx answer. Payload holds the decoded JSON body, or the abbreviated text
// when the body is not JSON.
type APIError struct {
	Status  int
	Path    string
	Payload any
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d for %s: %s", e.Status, e.Path, e.Body)
}

// PartialAPIError describes the non-empty "errors" member of a 2xx answer. It is logged, never returned.
type PartialAPIError struct {
	Path   string
	Errors any
}

func (e *PartialAPIError) Error() string {
	return fmt.Sprintf("API reported errors for %s: %v", e.Path, e.Errors)
}

type ClientConfig struct {
	HTTPClient   *http.Client
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	Logger       *logging.Logger
}

// Client talks to API-Football v3. It is safe for sequential use by one job.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// An injected client is copied so the caller's value is never changed.
	var httpClient *http.Client
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		httpClient = &copied
	} else {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger,
	}
}

// Get issues GET {base}{pathWithQuery} and decodes the body into target.
func (c *Client) Get(ctx context.Context, pathWithQuery string, target any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	raw, err := c.execute(ctx, pathWithQuery)
	if err != nil {
		return err
	}

	var meta struct {
		Errors any `json:"errors"`
	}
	if err := sonic.Unmarshal(raw, &meta); err != nil {
		return crerr.Wrapf(err, "decode api-football payload for %s", pathWithQuery)
	}
	if hasErrors(meta.Errors) {
		partial := &PartialAPIError{Path: pathWithQuery, Errors: meta.Errors}
		c.logger.WarnContext(ctx, "API reported errors", "path", pathWithQuery, "errors", partial.Errors)
	}

	if target == nil {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode api-football payload for %s", pathWithQuery)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, pathWithQuery string) ([]byte, error) {
	fullURL := c.baseURL + pathWithQuery

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(time.Duration(attempt) * c.retryBackoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		raw, err := c.do(ctx, fullURL, pathWithQuery)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !isRetryable(err) {
			break
		}
		if attempt < c.maxRetries {
			c.logger.WarnContext(ctx, "api-football request failed, retrying",
				"path", pathWithQuery,
				"attempt", attempt+1,
				"error", err,
			)
		}
	}

	c.logger.ErrorContext(ctx, "api-football request failed", "path", pathWithQuery, "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, fullURL, pathWithQuery string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "send request %s", pathWithQuery), errTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "read response body %s", pathWithQuery), errTransient)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, pathWithQuery, raw)
	}
	return raw, nil
}

func newAPIError(status int, path string, raw []byte) *APIError {
	out := &APIError{Status: status, Path: path, Body: abbreviateBody(raw)}
	var payload any
	if err := sonic.Unmarshal(raw, &payload); err == nil {
		out.Payload = payload
	} else {
		out.Payload = out.Body
	}
	return out
}

func isRetryable(err error) bool {
	var apiErr *APIError
	if crerr.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests || apiErr.Status >= http.StatusInternalServerError
	}
	return crerr.Is(err, errTransient)
}

// hasErrors reports whether the provider's "errors" member carries anything. The API sends an
// empty array when there is nothing to report and an object keyed by field otherwise.
func hasErrors(v any) bool {
	switch typed := v.(type) {
	case nil:
		return false
	case map[string]any:
		return len(typed) > 0
	case []any:
		return len(typed) > 0
	case string:
		return strings.TrimSpace(typed) != ""
	default:
		return true
	}
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
