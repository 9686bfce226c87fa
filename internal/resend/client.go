// Package resend is a thin client for the Resend transactional email API.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/hal9000y/waterbar-mcp/internal/auth"
)

// DefaultBaseURL is the public Resend API endpoint.
const DefaultBaseURL = "https://api.resend.com"

// APIError is a non-2xx response from the API. Message is the provider's own text.
type APIError struct {
	StatusCode int
	Name       string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Message is an outgoing email.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
}

// SendResult is the provider response to a send. ID may be empty.
type SendResult struct {
	ID string `json:"id"`
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client. Credentials are still attached.
func WithHTTPClient(clt *http.Client) Option {
	return func(c *Client) {
		c.base = clt
	}
}

// WithRateLimit paces requests to rps per second. Zero or less disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// Client talks to the Resend REST API.
type Client struct {
	baseURL string
	base    *http.Client
	clt     *http.Client
	limiter *rate.Limiter
}

// NewClient builds a client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.clt = auth.NewClient(c.base, apiKey)

	return c
}

// Send delivers msg.
func (c *Client) Send(ctx context.Context, msg Message) (SendResult, error) {
	var res SendResult

	raw, err := c.do(ctx, http.MethodPost, "/emails", msg)
	if err != nil {
		return res, err
	}

	if err := json.Unmarshal(raw, &res); err != nil {
		return res, fmt.Errorf("decode send response failed: %w", err)
	}

	return res, nil
}

// GetEmail returns the provider record for an email, verbatim.
func (c *Client) GetEmail(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/emails/"+url.PathEscape(id), nil)
}

// CancelEmail cancels a scheduled email and returns the provider response, verbatim.
func (c *Client) CancelEmail(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/emails/"+url.PathEscape(id)+"/cancel", nil)
}

// ListDomains returns the configured sender domains, the "data" member of the list response.
func (c *Client) ListDomains(ctx context.Context) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodGet, "/domains", nil)
	if err != nil {
		return nil, err
	}

	var list struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode domains response failed: %w", err)
	}
	if len(list.Data) == 0 || bytes.Equal(bytes.TrimSpace(list.Data), []byte("null")) {
		return json.RawMessage("[]"), nil
	}

	return list.Data, nil
}

// GetDomain returns a sender domain record, verbatim.
func (c *Client) GetDomain(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/domains/"+url.PathEscape(id), nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("limiter.Wait failed: %w", err)
		}
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal failed: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.clt.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, raw)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage("null"), nil
	}

	return json.RawMessage(raw), nil
}

func decodeError(status int, raw []byte) error {
	apiErr := &APIError{StatusCode: status}

	var body struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Name = body.Name
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("resend: unexpected status %d: %s", status, strings.TrimSpace(string(raw)))
	}

	return apiErr
}
