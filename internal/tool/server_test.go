package tool_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/waterbar-mcp/internal/resend"
	"github.com/hal9000y/waterbar-mcp/internal/tool"
)

func connect(t *testing.T, d *tool.Dispatcher) *mcp.ClientSession {
	t.Helper()

	server := tool.NewServer(d)
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ctx := context.Background()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = clientSession.Close() })

	return clientSession
}

func TestServerListTools(t *testing.T) {
	session := connect(t, newDispatcher(t, &mailSvcMock{}, okStore(), nil))

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	schemas := make(map[string]*jsonschema.Schema, len(result.Tools))
	for _, tl := range result.Tools {
		names = append(names, tl.Name)

		raw, err := json.Marshal(tl.InputSchema)
		require.NoError(t, err)
		var schema jsonschema.Schema
		require.NoError(t, json.Unmarshal(raw, &schema))
		schemas[tl.Name] = &schema
	}

	assert.ElementsMatch(t, []string{
		"send_waterbar_email",
		"list_emails",
		"get_email",
		"cancel_email",
		"list_domains",
		"get_domain",
		"create_payment_link",
	}, names)

	send := schemas["send_waterbar_email"]
	assert.Equal(t, "object", send.Type)
	assert.Equal(t, []string{"flow", "to", "data"}, send.Required)
	assert.Equal(t, []any{
		"aoi-booking-confirmation",
		"water-bar-order-confirmation",
		"water-bar-followup",
		"water-bar-missed-you",
	}, send.Properties["flow"].Enum)

	payment := schemas["create_payment_link"]
	assert.Equal(t, []string{"amount", "description"}, payment.Required)
	assert.JSONEq(t, `"aed"`, string(payment.Properties["currency"].Default))

	assert.Equal(t, "integer", payment.Properties["amount"].Type)
	assert.Equal(t, "integer", schemas["list_emails"].Properties["limit"].Type)

	assert.Empty(t, schemas["list_emails"].Required)
	assert.JSONEq(t, `10`, string(schemas["list_emails"].Properties["limit"].Default))
}

func TestServerCallTool(t *testing.T) {
	mail := sendingMail("em_789")
	store := okStore()
	session := connect(t, newDispatcher(t, mail, store, nil))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "send_waterbar_email",
		Arguments: map[string]any{
			"flow": "aoi-booking-confirmation",
			"to":   "guest@example.com",
			"data": map[string]any{
				"customerName": "Sarah",
				"bookingDate":  "2025-03-14",
				"bookings":     []any{},
			},
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var body tool.SendEmailResponse
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].(*mcp.TextContent).Text), &body))
	assert.Equal(t, tool.SendEmailResponse{
		Success: true,
		EmailID: "em_789",
		Flow:    "aoi-booking-confirmation",
		To:      "guest@example.com",
		Subject: "✨ Your AOI Experience is Confirmed",
	}, body)

	sent := mail.SendCalls()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].HTML, "Friday, March 14, 2025")
	assert.NotContains(t, sent[0].HTML, `class="slot"`)
	assert.Len(t, store.AppendCalls(), 1)
}

func TestServerCallToolError(t *testing.T) {
	mail := &mailSvcMock{
		GetDomainFunc: func(context.Context, string) (json.RawMessage, error) {
			return nil, &resend.APIError{StatusCode: 404, Name: "not_found", Message: "Domain not found"}
		},
	}
	session := connect(t, newDispatcher(t, mail, okStore(), nil))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_domain",
		Arguments: map[string]any{"id": "d_missing"},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)

	assert.JSONEq(t, `{"success":false,"error":"Domain not found","tool":"get_domain"}`,
		result.Content[0].(*mcp.TextContent).Text)
}

func TestServerCallUnknownTool(t *testing.T) {
	mail := &mailSvcMock{}
	store := okStore()
	session := connect(t, newDispatcher(t, mail, store, nil))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "nonexistent_tool",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.True(t, result.IsError)

	assert.JSONEq(t, `{"success":false,"error":"Unknown tool: nonexistent_tool","tool":"nonexistent_tool"}`,
		result.Content[0].(*mcp.TextContent).Text)
	assert.Empty(t, mail.SendCalls())
	assert.Empty(t, store.ListCalls())
}
