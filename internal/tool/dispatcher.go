package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Request is one tool invocation.
type Request struct {
	Name      string
	Arguments json.RawMessage
}

//go:generate moq -out mocks_test.go -pkg tool_test -skip-ensure . mailSvc:mailSvcMock emailLogStore:emailLogStoreMock paymentLinker:paymentLinkerMock

type mailSvc interface {
	emailSender
	emailReader
	domainReader
}

type emailLogStore interface {
	emailLogWriter
	emailLogReader
}

// Dispatcher routes tool invocations to their handlers and wraps every
// outcome in the response envelope.
type Dispatcher struct {
	sendEmail         *SendEmail
	listEmails        *ListEmails
	emails            *Emails
	domains           *Domains
	createPaymentLink *CreatePaymentLink

	args   *argsValidator
	logger *slog.Logger
}

// NewDispatcher wires the handlers. payments may be nil when payment links
// are not configured; from is the fixed sender address.
func NewDispatcher(mail mailSvc, store emailLogStore, payments paymentLinker, from string, logger *slog.Logger) (*Dispatcher, error) {
	args, err := newArgsValidator()
	if err != nil {
		return nil, fmt.Errorf("newArgsValidator failed: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		sendEmail:         NewSendEmail(mail, store, from),
		listEmails:        NewListEmails(store),
		emails:            NewEmails(mail),
		domains:           NewDomains(mail),
		createPaymentLink: NewCreatePaymentLink(payments),
		args:              args,
		logger:            logger,
	}, nil
}

// Handle runs one invocation. Failures come back as IsError results, never as Go errors.
func (d *Dispatcher) Handle(ctx context.Context, req Request) *mcp.CallToolResult {
	logger := d.logger.With("tool", req.Name, "request_id", uuid.NewString())

	body, err := d.route(ctx, logger, req)
	if err != nil {
		logger.Error("tool failed", "error", err)
		return errorResult(req.Name, err)
	}

	return successResult(req.Name, body)
}

func (d *Dispatcher) route(ctx context.Context, logger *slog.Logger, req Request) (any, error) {
	switch Name(req.Name) {
	case NameSendEmail:
		return invoke(ctx, logger, d.args, req.Arguments, d.sendEmail.SendEmail)
	case NameListEmails:
		return invoke(ctx, logger, d.args, req.Arguments, d.listEmails.ListEmails)
	case NameGetEmail:
		return invoke(ctx, logger, d.args, req.Arguments, d.emails.GetEmail)
	case NameCancelEmail:
		return invoke(ctx, logger, d.args, req.Arguments, d.emails.CancelEmail)
	case NameListDomains:
		return invoke(ctx, logger, d.args, req.Arguments, d.domains.ListDomains)
	case NameGetDomain:
		return invoke(ctx, logger, d.args, req.Arguments, d.domains.GetDomain)
	case NameCreatePaymentLink:
		if !d.createPaymentLink.configured() {
			return nil, ErrServiceUnavailable
		}
		return invoke(ctx, logger, d.args, req.Arguments, d.createPaymentLink.CreatePaymentLink)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, req.Name)
	}
}

func invoke[In, Out any](
	ctx context.Context,
	logger *slog.Logger,
	args *argsValidator,
	raw json.RawMessage,
	fn func(context.Context, *slog.Logger, In) (Out, error),
) (any, error) {
	var input In
	if err := args.decode(raw, &input); err != nil {
		return nil, err
	}

	out, err := fn(ctx, logger, input)
	if err != nil {
		return nil, err
	}

	return out, nil
}
