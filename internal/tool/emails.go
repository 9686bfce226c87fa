package tool

import (
	"context"
	"encoding/json"
	"log/slog"
)

// EmailIDRequest identifies a provider email.
type EmailIDRequest struct {
	ID string `json:"id" validate:"required"`
}

// GetEmailResponse embeds the provider record verbatim.
type GetEmailResponse struct {
	Success bool            `json:"success"`
	Email   json.RawMessage `json:"email"`
}

// CancelEmailResponse embeds the provider cancel response verbatim.
type CancelEmailResponse struct {
	Success   bool            `json:"success"`
	Cancelled json.RawMessage `json:"cancelled"`
}

type emailReader interface {
	GetEmail(ctx context.Context, id string) (json.RawMessage, error)
	CancelEmail(ctx context.Context, id string) (json.RawMessage, error)
}

// NewEmails creates the get_email and cancel_email tools.
func NewEmails(svc emailReader) *Emails {
	return &Emails{svc: svc}
}

// Emails delegates single-email lookups to the provider.
type Emails struct {
	svc emailReader
}

// GetEmail fetches one email by provider id.
func (t *Emails) GetEmail(ctx context.Context, logger *slog.Logger, input EmailIDRequest) (GetEmailResponse, error) {
	logger.Debug("getting email", "email_id", input.ID)

	email, err := t.svc.GetEmail(ctx, input.ID)
	if err != nil {
		return GetEmailResponse{}, err
	}

	return GetEmailResponse{Success: true, Email: email}, nil
}

// CancelEmail cancels a scheduled email.
func (t *Emails) CancelEmail(ctx context.Context, logger *slog.Logger, input EmailIDRequest) (CancelEmailResponse, error) {
	logger.Info("cancelling email", "email_id", input.ID)

	res, err := t.svc.CancelEmail(ctx, input.ID)
	if err != nil {
		return CancelEmailResponse{}, err
	}

	return CancelEmailResponse{Success: true, Cancelled: res}, nil
}
