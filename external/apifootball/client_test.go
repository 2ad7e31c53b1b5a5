package apifootball

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/roster-sync/internal/platform/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, logs *bytes.Buffer, maxRetries int) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logging.NewNop()
	if logs != nil {
		logger = logging.NewWriter(logs, logging.LevelDebug)
	}
	return NewClient(ClientConfig{
		HTTPClient:   server.Client(),
		BaseURL:      server.URL + "/",
		APIKey:       "secret-key",
		MaxRetries:   maxRetries,
		RetryBackoff: time.Millisecond,
		Logger:       logger,
	})
}

func TestNewClient_LeavesInjectedHTTPClientUntouched(t *testing.T) {
	t.Parallel()

	shared := &http.Client{}
	client := NewClient(ClientConfig{HTTPClient: shared, APIKey: "k", Timeout: 5 * time.Second})

	if shared.Timeout != 0 {
		t.Fatalf("injected client must not be mutated, got timeout=%s", shared.Timeout)
	}
	if client.httpClient == shared {
		t.Fatalf("expected the client to hold its own copy")
	}
	if client.httpClient.Timeout != 5*time.Second {
		t.Fatalf("expected configured timeout on the copy, got=%s", client.httpClient.Timeout)
	}

	preset := &http.Client{Timeout: time.Second}
	client = NewClient(ClientConfig{HTTPClient: preset, APIKey: "k"})
	if client.httpClient.Timeout != time.Second {
		t.Fatalf("an explicit client timeout must win, got=%s", client.httpClient.Timeout)
	}
}

func TestClientGet_SendsKeyHeader(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-apisports-key"); got != "secret-key" {
			t.Errorf("expected api key header, got=%q", got)
		}
		if got := r.URL.RequestURI(); got != "/status" {
			t.Errorf("unexpected request uri: %s", got)
		}
		_, _ = w.Write([]byte(`{"errors":[],"response":{"account":{"firstname":"a"}}}`))
	}, nil, 0)

	var out struct {
		Response map[string]any `json:"response"`
	}
	if err := client.Get(context.Background(), "/status", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := out.Response["account"]; !ok {
		t.Fatalf("expected decoded payload, got=%v", out.Response)
	}
}

func TestClientGet_MissingKey(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{HTTPClient: server.Client(), BaseURL: server.URL, Logger: logging.NewNop()})
	err := client.Get(context.Background(), "/teams?search=Nice", nil)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got=%v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("no request may be sent without a key")
	}
}

func TestClientGet_NonSuccessIsAPIError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"You are not subscribed to this API."}`))
	}, nil, 3)

	err := client.Get(context.Background(), "/fixtures?team=489&last=1&status=FT", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got=%T %v", err, err)
	}
	if apiErr.Status != http.StatusForbidden || apiErr.Path != "/fixtures?team=489&last=1&status=FT" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
	payload, ok := apiErr.Payload.(map[string]any)
	if !ok || payload["message"] != "You are not subscribed to this API." {
		t.Fatalf("expected decoded payload, got=%#v", apiErr.Payload)
	}
	if calls.Load() != 1 {
		t.Fatalf("client errors must not be retried, calls=%d", calls.Load())
	}
}

func TestClientGet_NonJSONErrorBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}, nil, 0)

	err := client.Get(context.Background(), "/teams?search=Nice", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got=%v", err)
	}
	if apiErr.Payload != "bad gateway" {
		t.Fatalf("expected text payload, got=%#v", apiErr.Payload)
	}
}

func TestClientGet_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"errors":[],"response":[]}`))
	}, nil, 1)

	if err := client.Get(context.Background(), "/teams?search=Nice", nil); err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected two attempts, got=%d", calls.Load())
	}
}

func TestClientGet_PartialErrorsAreWarnedNotReturned(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":{"season":"The Season field must contain 4 characters."},"response":[]}`))
	}, &logs, 0)

	var out envelope[fixtureItem]
	if err := client.Get(context.Background(), "/fixtures?team=1&season=25", &out); err != nil {
		t.Fatalf("partial errors must not fail the request: %v", err)
	}
	text := logs.String()
	if !strings.Contains(text, "API reported errors") || !strings.Contains(text, "The Season field") {
		t.Fatalf("expected warning with provider errors, logs=%s", text)
	}
	if strings.Contains(text, "secret-key") {
		t.Fatalf("api key leaked into logs")
	}
}

func TestHasErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{[]any{}, false},
		{map[string]any{}, false},
		{"", false},
		{[]any{"x"}, true},
		{map[string]any{"token": "bad"}, true},
		{"rate limit", true},
	}
	for _, tc := range cases {
		if got := hasErrors(tc.in); got != tc.want {
			t.Fatalf("hasErrors(%#v)=%v want %v", tc.in, got, tc.want)
		}
	}
}
