package templates

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Flow selects an email template and subject.
type Flow string

// Registered flows.
const (
	FlowBookingConfirmation Flow = "aoi-booking-confirmation"
	FlowOrderConfirmation   Flow = "water-bar-order-confirmation"
	FlowFollowup            Flow = "water-bar-followup"
	FlowMissedYou           Flow = "water-bar-missed-you"
)

// Flows returns every registered flow in catalog order.
func Flows() []Flow {
	return []Flow{
		FlowBookingConfirmation,
		FlowOrderConfirmation,
		FlowFollowup,
		FlowMissedYou,
	}
}

const guestName = "Guest"

// Text is a template field that accepts any JSON scalar and keeps its textual form.
type Text string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (t *Text) UnmarshalJSON(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}

	switch typed := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(typed)
	case float64:
		*t = Text(strconv.FormatFloat(typed, 'f', -1, 64))
	case bool:
		*t = Text(strconv.FormatBool(typed))
	default:
		return fmt.Errorf("expected a scalar value, got %s", string(raw))
	}

	return nil
}

func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

func or(t Text, fallback string) string {
	return lo.CoalesceOrEmpty(t.String(), fallback)
}

// BookingConfirmation feeds the aoi-booking-confirmation flow.
type BookingConfirmation struct {
	CustomerName Text          `json:"customerName"`
	BookingDate  Text          `json:"bookingDate"`
	Bookings     []BookingSlot `json:"bookings"`
	Venue        Text          `json:"venue"`
	PaymentURL   Text          `json:"paymentUrl"`
	TotalAmount  Text          `json:"totalAmount"`
}

// BookingSlot is one itemized experience within a booking.
type BookingSlot struct {
	Time        Text `json:"time"`
	Experience  Text `json:"experience"`
	Duration    Text `json:"duration"`
	PreDrink    Text `json:"preDrink"`
	DuringDrink Text `json:"duringDrink"`
	AfterDrink  Text `json:"afterDrink"`
	Explanation Text `json:"explanation"`
}

// HasDrinks reports whether any paired drink is set.
func (s BookingSlot) HasDrinks() bool {
	return s.PreDrink.String() != "" || s.DuringDrink.String() != "" || s.AfterDrink.String() != ""
}

// Name is the greeting name.
func (b BookingConfirmation) Name() string { return or(b.CustomerName, guestName) }

// VenueLabel is the venue with its default.
func (b BookingConfirmation) VenueLabel() string { return or(b.Venue, "AOI - Al Quoz, Dubai") }

// AmountLabel is the payment button amount with its default.
func (b BookingConfirmation) AmountLabel() string { return or(b.TotalAmount, "AED 180.00") }

// DateLabel formats the booking date as "Monday, January 2, 2006".
func (b BookingConfirmation) DateLabel() string {
	raw := b.BookingDate.String()
	if raw == "" {
		return "Date to be confirmed"
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339, time.DateTime} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.Format("Monday, January 2, 2006")
		}
	}

	return raw
}

// OrderConfirmation feeds the water-bar-order-confirmation flow.
type OrderConfirmation struct {
	CustomerName Text `json:"customerName"`
	OrderID      Text `json:"orderId"`
	Total        Text `json:"total"`
}

// Name is the greeting name.
func (o OrderConfirmation) Name() string { return or(o.CustomerName, guestName) }

// OrderLabel is the order number with its placeholder.
func (o OrderConfirmation) OrderLabel() string { return or(o.OrderID, "XXXXX") }

// TotalLabel is the order total with its placeholder.
func (o OrderConfirmation) TotalLabel() string { return or(o.Total, "AED 0.00") }

// Followup feeds the water-bar-followup flow.
type Followup struct {
	CustomerName Text `json:"customerName"`
	Drink        Text `json:"drink"`
	ReviewURL    Text `json:"reviewUrl"`
}

// Name is the greeting name.
func (f Followup) Name() string { return or(f.CustomerName, guestName) }

// MissedYou feeds the water-bar-missed-you flow.
type MissedYou struct {
	CustomerName Text `json:"customerName"`
	OfferCode    Text `json:"offerCode"`
	BookingURL   Text `json:"bookingUrl"`
}

// Name is the greeting name.
func (m MissedYou) Name() string { return or(m.CustomerName, guestName) }
