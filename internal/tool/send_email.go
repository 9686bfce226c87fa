package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hal9000y/waterbar-mcp/internal/emaillog"
	"github.com/hal9000y/waterbar-mcp/internal/format"
	"github.com/hal9000y/waterbar-mcp/internal/resend"
	"github.com/hal9000y/waterbar-mcp/internal/templates"
)

// SendEmailRequest renders a flow template and sends it to one recipient.
type SendEmailRequest struct {
	Flow templates.Flow  `json:"flow" validate:"required"`
	To   string          `json:"to" validate:"required"`
	Data json.RawMessage `json:"data" validate:"required,json_object"`
}

// SendEmailResponse reports the provider id of the sent email.
type SendEmailResponse struct {
	Success bool           `json:"success"`
	EmailID string         `json:"emailId"`
	Flow    templates.Flow `json:"flow"`
	To      string         `json:"to"`
	Subject string         `json:"subject"`
}

type emailSender interface {
	Send(ctx context.Context, msg resend.Message) (resend.SendResult, error)
}

type emailLogWriter interface {
	Append(ctx context.Context, entry emaillog.Entry) error
}

// NewSendEmail creates a new SendEmail tool. from is the fixed sender address.
func NewSendEmail(svc emailSender, store emailLogWriter, from string) *SendEmail {
	return &SendEmail{
		svc:   svc,
		store: store,
		from:  from,
	}
}

// SendEmail renders, sends and logs branded emails.
type SendEmail struct {
	svc   emailSender
	store emailLogWriter
	from  string
}

// SendEmail sends the rendered flow to input.To. A failing log write is
// reported to the logger only; the send is still a success.
func (t *SendEmail) SendEmail(ctx context.Context, logger *slog.Logger, input SendEmailRequest) (SendEmailResponse, error) {
	email, err := templates.Render(input.Flow, input.Data)
	if err != nil {
		return SendEmailResponse{}, err
	}

	logger.Info("sending email", "flow", input.Flow, "to", input.To)

	res, err := t.svc.Send(ctx, resend.Message{
		From:    t.from,
		To:      []string{input.To},
		Subject: email.Subject,
		HTML:    email.HTML,
		Text:    format.HTML2Text(email.HTML),
	})
	if err != nil {
		return SendEmailResponse{}, err
	}

	logger.Info("email sent", "email_id", res.ID)

	if res.ID != "" {
		err := t.store.Append(ctx, emaillog.Entry{
			ID:      res.ID,
			ToEmail: input.To,
			Subject: email.Subject,
			HTML:    email.HTML,
			Flow:    string(input.Flow),
			Status:  emaillog.StatusSent,
		})
		if err != nil {
			logger.Error("email log append failed", "email_id", res.ID, "error", fmt.Errorf("store.Append failed: %w", err))
		}
	}

	return SendEmailResponse{
		Success: true,
		EmailID: res.ID,
		Flow:    input.Flow,
		To:      input.To,
		Subject: email.Subject,
	}, nil
}
