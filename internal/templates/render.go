// Package templates renders the branded Water Bar / AOI emails.
//
// Every flow has a pure rendering function registered by its Flow value and a
// subject rule. Rendering is deterministic: equal inputs produce byte-identical
// output.
package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
)

//go:embed html/*.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "html/*.html"))

const fallbackSubject = "Notification from The Water Bar"

// Email is a rendered message.
type Email struct {
	Subject string
	HTML    string
}

// UnknownTemplateError reports a flow without a registered template.
type UnknownTemplateError struct {
	Flow Flow
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("Unknown template flow: %s", e.Flow)
}

type renderFunc func(data json.RawMessage) (string, error)

var renderers = map[Flow]renderFunc{
	FlowBookingConfirmation: page[BookingConfirmation]("aoi_booking_confirmation.html"),
	FlowOrderConfirmation:   page[OrderConfirmation]("water_bar_order_confirmation.html"),
	FlowFollowup:            page[Followup]("water_bar_followup.html"),
	FlowMissedYou:           page[MissedYou]("water_bar_missed_you.html"),
}

var subjects = map[Flow]func(data json.RawMessage) string{
	FlowBookingConfirmation: func(json.RawMessage) string {
		return "✨ Your AOI Experience is Confirmed"
	},
	FlowOrderConfirmation: func(data json.RawMessage) string {
		d, _ := decode[OrderConfirmation](data)
		return "Your Water Bar Order #" + d.OrderLabel()
	},
	FlowFollowup: func(json.RawMessage) string {
		return "Thanks for visiting The Water Bar! 💧"
	},
	FlowMissedYou: func(json.RawMessage) string {
		return "We missed you at The Water Bar"
	},
}

// Render produces the subject and HTML body for flow from its data payload.
func Render(flow Flow, data json.RawMessage) (Email, error) {
	render, ok := renderers[flow]
	if !ok {
		return Email{}, &UnknownTemplateError{Flow: flow}
	}

	html, err := render(data)
	if err != nil {
		return Email{}, err
	}

	return Email{
		Subject: subject(flow, data),
		HTML:    html,
	}, nil
}

// IsRegistered reports whether flow has a template.
func IsRegistered(flow Flow) bool {
	_, ok := renderers[flow]
	return ok
}

func subject(flow Flow, data json.RawMessage) string {
	rule, ok := subjects[flow]
	if !ok {
		return fallbackSubject
	}
	return rule(data)
}

func page[T any](name string) renderFunc {
	return func(data json.RawMessage) (string, error) {
		view, err := decode[T](data)
		if err != nil {
			return "", err
		}

		var buf bytes.Buffer
		if err := pages.ExecuteTemplate(&buf, name, view); err != nil {
			return "", fmt.Errorf("render %s: %w", name, err)
		}

		return buf.String(), nil
	}
}

func decode[T any](data json.RawMessage) (T, error) {
	var view T
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return view, nil
	}
	if err := json.Unmarshal(data, &view); err != nil {
		return view, fmt.Errorf("invalid template data: %w", err)
	}
	return view, nil
}
