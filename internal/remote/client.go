package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client is an HTTP client for the hosted backend. All calls carry the
// project's anon key; scoped table calls additionally carry the signed-in
// user's access token.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	retry      RetryConfig
}

// New creates a client for the backend at baseURL. The bounded request
// timeout means an unreachable backend degrades to the local fallback
// instead of hanging the caller.
func New(baseURL, anonKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry:      DefaultRetryConfig(),
	}
}

// SetRetry overrides the default retry policy for table operations.
func (c *Client) SetRetry(cfg RetryConfig) {
	c.retry = cfg
}

// do executes a request with auth headers and decodes the response into
// result. Non-2xx responses are returned as errors carrying the server's
// message when one is present.
func (c *Client) do(ctx context.Context, method, path, token string, headers map[string]string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("apikey", c.anonKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrNetwork, err)
	}

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: %s", ErrServer, http.StatusText(resp.StatusCode))
	}
	if resp.StatusCode >= 400 {
		if msg := errorMessage(respBody); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// errorMessage extracts a human-readable message from an error response.
// The auth and table endpoints use different envelope shapes.
func errorMessage(body []byte) string {
	var envelope struct {
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	for _, m := range []string{envelope.ErrorDescription, envelope.Msg, envelope.Message, envelope.Error} {
		if m != "" {
			return m
		}
	}
	return ""
}
