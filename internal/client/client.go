package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/business-idea-generator/internal/models"
)

const (
	GenerateIdeaPath = "/api/generate-idea"
	DefaultTimeout   = 30 * time.Second
)

// NetworkError is returned for transport failures and non-2xx responses.
// StatusCode is 0 when no response arrived.
type NetworkError struct {
	StatusCode int
	StatusText string
	// Message is the server's "error" field, when the body carried one.
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("idea request failed: %v", e.Err)
	}
	msg := fmt.Sprintf("idea request failed: status %d %s", e.StatusCode, e.StatusText)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request gave up waiting for the server.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchBusinessIdea posts one request and decodes the idea. It never retries.
// A fallback idea is a successful result.
func (c *Client) FetchBusinessIdea(ctx context.Context, req models.IdeaRequest) (*models.BusinessIdea, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode idea request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+GenerateIdeaPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build idea request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{StatusCode: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		netErr := &NetworkError{StatusCode: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil {
			netErr.Message = apiErr.Error
		}
		return nil, netErr
	}

	var idea models.BusinessIdea
	if err := json.Unmarshal(data, &idea); err != nil {
		return nil, fmt.Errorf("decode business idea: %w", err)
	}
	return &idea, nil
}
