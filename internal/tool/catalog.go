package tool

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/waterbar-mcp/internal/templates"
)

// Name is a tool name from the catalog.
type Name string

// Catalog tool names.
const (
	NameSendEmail         Name = "send_waterbar_email"
	NameListEmails        Name = "list_emails"
	NameGetEmail          Name = "get_email"
	NameCancelEmail       Name = "cancel_email"
	NameListDomains       Name = "list_domains"
	NameGetDomain         Name = "get_domain"
	NameCreatePaymentLink Name = "create_payment_link"
)

// Catalog describes every tool the server exposes, in a fixed order.
func Catalog() []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        string(NameSendEmail),
			Description: "Send branded Water Bar / AOI email using a template flow",
			InputSchema: object(map[string]*jsonschema.Schema{
				"flow": {
					Type:        "string",
					Description: "Template flow to render",
					Enum:        flowEnum(),
				},
				"to": {
					Type:        "string",
					Description: "Recipient email address",
				},
				"data": {
					Type:        "object",
					Description: "Template data (customerName, bookings, orderId, etc.)",
				},
			}, "flow", "to", "data"),
		},
		{
			Name:        string(NameListEmails),
			Description: "List recently sent emails from the email log",
			InputSchema: object(map[string]*jsonschema.Schema{
				"limit": {
					Type:        "integer",
					Description: "Number of emails to return (max 100)",
					Default:     json.RawMessage(`10`),
				},
			}),
		},
		{
			Name:        string(NameGetEmail),
			Description: "Get details of a specific sent email by ID",
			InputSchema: object(map[string]*jsonschema.Schema{
				"id": {Type: "string", Description: "Email ID returned by send"},
			}, "id"),
		},
		{
			Name:        string(NameCancelEmail),
			Description: "Cancel a scheduled email",
			InputSchema: object(map[string]*jsonschema.Schema{
				"id": {Type: "string", Description: "Email ID to cancel"},
			}, "id"),
		},
		{
			Name:        string(NameListDomains),
			Description: "List all sender domains configured for the email account",
			InputSchema: object(map[string]*jsonschema.Schema{}),
		},
		{
			Name:        string(NameGetDomain),
			Description: "Get details and verification status of a sender domain",
			InputSchema: object(map[string]*jsonschema.Schema{
				"id": {Type: "string", Description: "Domain ID"},
			}, "id"),
		},
		{
			Name:        string(NameCreatePaymentLink),
			Description: "Create a Stripe payment link for a booking or order",
			InputSchema: object(map[string]*jsonschema.Schema{
				"amount": {
					Type:        "integer",
					Description: "Amount in minor units (e.g. 18000 for AED 180.00)",
				},
				"currency": {
					Type:        "string",
					Description: "Three-letter currency code",
					Default:     json.RawMessage(`"aed"`),
				},
				"description": {
					Type:        "string",
					Description: "Product or service description shown at checkout",
				},
				"bookingId": {
					Type:        "string",
					Description: "Booking reference stored in link metadata",
				},
			}, "amount", "description"),
		},
	}
}

func object(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func flowEnum() []any {
	flows := templates.Flows()
	enum := make([]any, 0, len(flows))
	for _, f := range flows {
		enum = append(enum, string(f))
	}
	return enum
}
