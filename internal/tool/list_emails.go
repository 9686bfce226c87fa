package tool

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"github.com/hal9000y/waterbar-mcp/internal/emaillog"
)

const defaultListLimit = 10

// ListEmailsRequest selects how many log entries to return.
type ListEmailsRequest struct {
	Limit *int `json:"limit,omitempty"`
}

// ListEmailsResponse holds log entries, newest first.
type ListEmailsResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Emails  []emaillog.Entry `json:"emails"`
}

type emailLogReader interface {
	List(ctx context.Context, limit int) ([]emaillog.Entry, error)
}

// NewListEmails creates a new ListEmails tool.
func NewListEmails(store emailLogReader) *ListEmails {
	return &ListEmails{store: store}
}

// ListEmails reads the email log.
type ListEmails struct {
	store emailLogReader
}

// ListEmails returns up to input.Limit entries, default 10, clamped to [1, 100].
func (t *ListEmails) ListEmails(ctx context.Context, logger *slog.Logger, input ListEmailsRequest) (ListEmailsResponse, error) {
	limit := defaultListLimit
	if input.Limit != nil {
		limit = lo.Clamp(*input.Limit, 1, emaillog.MaxListLimit)
	}

	logger.Debug("listing email log", "limit", limit)

	entries, err := t.store.List(ctx, limit)
	if err != nil {
		return ListEmailsResponse{}, err
	}
	if entries == nil {
		entries = []emaillog.Entry{}
	}

	return ListEmailsResponse{
		Success: true,
		Count:   len(entries),
		Emails:  entries,
	}, nil
}
