// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches errors against the sentinels regardless of the wrapped
// cause, so errors.Is(err, ErrUnreachable) works on errors that carry
// the underlying transport failure.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	return ok && e.Type == t.Type && e.Message == t.Message
}

// withCause returns a copy of the sentinel carrying the underlying error.
func (e *ClientError) withCause(cause error) *ClientError {
	return &ClientError{Type: e.Type, Message: e.Message, Cause: cause}
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeNetwork covers transport-level failures: unreachable, reset.
	ErrTypeNetwork
	// ErrTypeTimeout means the request exceeded its deadline.
	ErrTypeTimeout
	// ErrTypeService means the backend was reachable but returned a
	// non-success response.
	ErrTypeService
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeNetwork, Message: "backend is unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsNetworkError checks if an error is a transport-level failure.
func IsNetworkError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNetwork || clientErr.Type == ErrTypeTimeout
	}
	return false
}

// IsServiceError checks if an error is a backend non-success response.
func IsServiceError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeService
	}
	return false
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://localhost:8000)
	BaseURL string

	// Timeout for chat requests (default: 120s; agent replies are slow)
	Timeout time.Duration

	// ProbeTimeout for health checks (default: 5s)
	ProbeTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:      "http://localhost:8000",
		Timeout:      120 * time.Second,
		ProbeTimeout: 5 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the OllamaStack backend over HTTP.
// It is safe for concurrent use; the base URL may be swapped at runtime
// when settings change.
type Client struct {
	mu      sync.RWMutex
	baseURL string

	httpClient  *http.Client
	probeClient *http.Client
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	if config.ProbeTimeout == 0 {
		config.ProbeTimeout = 5 * time.Second
	}

	return &Client{
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: config.Timeout},
		probeClient: &http.Client{Timeout: config.ProbeTimeout},
	}
}

// SetBaseURL updates the backend base URL. In-flight requests keep the URL
// they started with.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// BaseURL returns the current backend base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends a chat request and returns the backend's reply.
// Exactly one HTTP call is made; there is no retry.
func (c *Client) Chat(ctx context.Context, chatReq ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+"/api/v1/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeNetwork, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout.withCause(err)
		}
		return nil, ErrUnreachable.withCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Try to surface the backend's own error text.
		var envelope errorBody
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.message() != "" {
			return nil, &ClientError{Type: ErrTypeService, Message: envelope.message()}
		}
		return nil, &ClientError{
			Type:    ErrTypeService,
			Message: "chat request failed: " + resp.Status,
		}
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeService, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// HEALTH PROBE
// =============================================================================

// Probe checks backend reachability. It returns true only on a success
// response; any transport failure, timeout, or non-success status is false.
// The error carries detail for logging but callers may ignore it -- false
// already means offline.
func (c *Client) Probe(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+"/api/v1/health", nil)
	if err != nil {
		return false, &ClientError{Type: ErrTypeNetwork, Message: "failed to create request", Cause: err}
	}

	resp, err := c.probeClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return false, ErrTimeout.withCause(err)
		}
		return false, ErrUnreachable.withCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, &ClientError{
			Type:    ErrTypeService,
			Message: "unexpected status from backend: " + resp.Status,
		}
	}

	return true, nil
}
