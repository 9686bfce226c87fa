package tool

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/hal9000y/waterbar-mcp/internal/stripe"
)

const defaultCurrency = "aed"

// CreatePaymentLinkRequest describes a one-item payment link. Amount is in minor units.
type CreatePaymentLinkRequest struct {
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Currency    string `json:"currency,omitempty"`
	Description string `json:"description" validate:"required"`
	BookingID   string `json:"bookingId,omitempty"`
}

// PaymentLinkSummary is the created link as reported to the client.
type PaymentLinkSummary struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

// CreatePaymentLinkResponse wraps the created link.
type CreatePaymentLinkResponse struct {
	Success     bool               `json:"success"`
	PaymentLink PaymentLinkSummary `json:"paymentLink"`
}

type paymentLinker interface {
	CreatePaymentLink(ctx context.Context, params stripe.PaymentLinkParams) (stripe.PaymentLink, error)
}

// NewCreatePaymentLink creates a new CreatePaymentLink tool. A nil svc
// makes every call fail with ErrServiceUnavailable.
func NewCreatePaymentLink(svc paymentLinker) *CreatePaymentLink {
	return &CreatePaymentLink{svc: svc}
}

// CreatePaymentLink creates hosted payment links.
type CreatePaymentLink struct {
	svc paymentLinker
}

func (t *CreatePaymentLink) configured() bool {
	return t.svc != nil
}

// CreatePaymentLink creates a single-item link for input.Amount, defaulting the currency to aed.
func (t *CreatePaymentLink) CreatePaymentLink(ctx context.Context, logger *slog.Logger, input CreatePaymentLinkRequest) (CreatePaymentLinkResponse, error) {
	if !t.configured() {
		return CreatePaymentLinkResponse{}, ErrServiceUnavailable
	}

	currency := strings.ToLower(lo.CoalesceOrEmpty(strings.TrimSpace(input.Currency), defaultCurrency))

	logger.Info("creating payment link", "description", input.Description, "amount", input.Amount, "currency", currency)

	link, err := t.svc.CreatePaymentLink(ctx, stripe.PaymentLinkParams{
		Amount:      input.Amount,
		Currency:    currency,
		Description: input.Description,
		BookingID:   input.BookingID,
	})
	if err != nil {
		return CreatePaymentLinkResponse{}, err
	}

	logger.Info("payment link created", "payment_link_id", link.ID)

	return CreatePaymentLinkResponse{
		Success: true,
		PaymentLink: PaymentLinkSummary{
			ID:          link.ID,
			URL:         link.URL,
			Amount:      input.Amount,
			Currency:    currency,
			Description: input.Description,
		},
	}, nil
}
