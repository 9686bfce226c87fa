// Package stripe creates hosted payment links through the Stripe REST API.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hal9000y/waterbar-mcp/internal/auth"
)

// DefaultBaseURL is the public Stripe API endpoint.
const DefaultBaseURL = "https://api.stripe.com"

// APIVersion pins the request/response shape.
const APIVersion = "2024-11-20.acacia"

const confirmationMessage = "✨ Payment successful! Check your email for your receipt and hydration tracking link."

// APIError is a non-2xx response from the API. Message is the provider's own text.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// PaymentLinkParams describes a single-item payment link.
type PaymentLinkParams struct {
	// Amount in minor currency units.
	Amount int64
	// Currency is a lower-case ISO code.
	Currency    string
	Description string
	BookingID   string
}

// PaymentLink is the subset of the created object the caller needs.
type PaymentLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Client talks to the Stripe REST API.
type Client struct {
	baseURL string
	clt     *http.Client
}

// NewClient builds a client authenticated with secretKey. clt may be nil.
func NewClient(secretKey, baseURL string, clt *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		clt:     auth.NewClient(clt, secretKey),
	}
}

// CreatePaymentLink creates a link selling one unit of an ad-hoc priced product.
func (c *Client) CreatePaymentLink(ctx context.Context, params PaymentLinkParams) (PaymentLink, error) {
	var link PaymentLink

	form := url.Values{}
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.Amount, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.Description)
	form.Set("line_items[0][quantity]", "1")
	if params.BookingID != "" {
		form.Set("metadata[booking_id]", params.BookingID)
	}
	form.Set("after_completion[type]", "hosted_confirmation")
	form.Set("after_completion[hosted_confirmation][custom_message]", confirmationMessage)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_links", strings.NewReader(form.Encode()))
	if err != nil {
		return link, fmt.Errorf("http.NewRequest failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Stripe-Version", APIVersion)

	resp, err := c.clt.Do(req)
	if err != nil {
		return link, fmt.Errorf("POST /v1/payment_links failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return link, fmt.Errorf("read response failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return link, decodeError(resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, &link); err != nil {
		return link, fmt.Errorf("decode payment link failed: %w", err)
	}

	return link, nil
}

func decodeError(status int, raw []byte) error {
	apiErr := &APIError{StatusCode: status}

	var body struct {
		Error struct {
			Type    string `json:"type"`
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Type = body.Error.Type
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("stripe: unexpected status %d: %s", status, strings.TrimSpace(string(raw)))
	}

	return apiErr
}
