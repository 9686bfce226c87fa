package templates_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/waterbar-mcp/internal/templates"
)

const bookingData = `{
	"customerName": "Sarah",
	"bookingDate": "2025-03-14",
	"bookings": [
		{"time": "10:00", "experience": "Float Session", "duration": 60, "preDrink": "Electrolyte Spritz", "explanation": "Rehydrate before floating"},
		{"time": "11:15", "experience": "Ice Bath", "duration": "15"}
	],
	"paymentUrl": "https://buy.stripe.com/test_123",
	"totalAmount": "AED 360.00"
}`

func TestRenderBookingConfirmation(t *testing.T) {
	email, err := templates.Render(templates.FlowBookingConfirmation, json.RawMessage(bookingData))
	require.NoError(t, err)

	assert.Equal(t, "✨ Your AOI Experience is Confirmed", email.Subject)
	assert.Contains(t, email.HTML, "Hi <strong>Sarah</strong>")
	assert.Contains(t, email.HTML, "Your Experience Timeline")
	assert.Contains(t, email.HTML, "Friday, March 14, 2025")
	assert.Equal(t, 2, strings.Count(email.HTML, `class="slot"`))
	assert.Equal(t, 1, strings.Count(email.HTML, `class="drinks"`))
	assert.Contains(t, email.HTML, "Pre: Electrolyte Spritz")
	assert.Contains(t, email.HTML, "60 minutes")
	assert.Contains(t, email.HTML, "Rehydrate before floating")
	assert.Contains(t, email.HTML, `href="https://buy.stripe.com/test_123"`)
	assert.Contains(t, email.HTML, "Complete Payment - AED 360.00")
	assert.Contains(t, email.HTML, "AOI - Al Quoz, Dubai")
}

func TestRenderIsDeterministic(t *testing.T) {
	for _, flow := range templates.Flows() {
		t.Run(string(flow), func(t *testing.T) {
			first, err := templates.Render(flow, json.RawMessage(bookingData))
			require.NoError(t, err)
			second, err := templates.Render(flow, json.RawMessage(bookingData))
			require.NoError(t, err)

			assert.Equal(t, first, second)
		})
	}
}

func TestRenderBookingWithoutSlots(t *testing.T) {
	email, err := templates.Render(templates.FlowBookingConfirmation, json.RawMessage(`{"customerName":"Ali","bookings":[]}`))
	require.NoError(t, err)

	assert.Contains(t, email.HTML, "Your Experience Timeline")
	assert.Contains(t, email.HTML, "Date to be confirmed")
	assert.NotContains(t, email.HTML, `class="slot"`)
	assert.NotContains(t, email.HTML, `class="payment"`)
}

func TestRenderDefaultsToGuest(t *testing.T) {
	for _, flow := range templates.Flows() {
		t.Run(string(flow), func(t *testing.T) {
			email, err := templates.Render(flow, json.RawMessage(`{}`))
			require.NoError(t, err)

			assert.Contains(t, email.HTML, "Hi <strong>Guest</strong>")
		})
	}
}

func TestRenderNilData(t *testing.T) {
	email, err := templates.Render(templates.FlowOrderConfirmation, nil)
	require.NoError(t, err)

	assert.Equal(t, "Your Water Bar Order #XXXXX", email.Subject)
	assert.Contains(t, email.HTML, "Order #XXXXX")
	assert.Contains(t, email.HTML, "Total: AED 0.00")
}

func TestRenderEscapesInput(t *testing.T) {
	email, err := templates.Render(templates.FlowFollowup, json.RawMessage(`{"customerName":"<script>alert(1)</script>","reviewUrl":"javascript:alert(1)"}`))
	require.NoError(t, err)

	assert.NotContains(t, email.HTML, "<script>")
	assert.Contains(t, email.HTML, "&lt;script&gt;")
	assert.NotContains(t, email.HTML, "javascript:alert")
}

func TestRenderUnknownFlow(t *testing.T) {
	_, err := templates.Render("bogus", json.RawMessage(`{}`))
	require.Error(t, err)

	var unknown *templates.UnknownTemplateError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, templates.Flow("bogus"), unknown.Flow)
	assert.Equal(t, "Unknown template flow: bogus", err.Error())
	assert.False(t, templates.IsRegistered("bogus"))
}

func TestRenderInvalidData(t *testing.T) {
	_, err := templates.Render(templates.FlowBookingConfirmation, json.RawMessage(`{"bookings":"nope"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid template data")
}

func TestRenderSubjects(t *testing.T) {
	cases := []struct {
		flow     templates.Flow
		data     string
		expected string
	}{
		{flow: templates.FlowBookingConfirmation, data: `{}`, expected: "✨ Your AOI Experience is Confirmed"},
		{flow: templates.FlowOrderConfirmation, data: `{"orderId":"A42"}`, expected: "Your Water Bar Order #A42"},
		{flow: templates.FlowOrderConfirmation, data: `{"orderId":1042}`, expected: "Your Water Bar Order #1042"},
		{flow: templates.FlowFollowup, data: `{}`, expected: "Thanks for visiting The Water Bar! 💧"},
		{flow: templates.FlowMissedYou, data: `{}`, expected: "We missed you at The Water Bar"},
	}

	for _, tc := range cases {
		t.Run(string(tc.flow), func(t *testing.T) {
			email, err := templates.Render(tc.flow, json.RawMessage(tc.data))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, email.Subject)
		})
	}
}

func TestRenderMissedYouOffer(t *testing.T) {
	email, err := templates.Render(templates.FlowMissedYou, json.RawMessage(`{"customerName":"Noor","offerCode":"HYDRATE10","bookingUrl":"https://waterbar.example.com/book"}`))
	require.NoError(t, err)

	assert.Contains(t, email.HTML, "HYDRATE10")
	assert.Contains(t, email.HTML, `href="https://waterbar.example.com/book"`)
}
