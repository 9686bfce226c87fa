package tool

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnknownTool is returned for a tool name outside the catalog.
	ErrUnknownTool = errors.New("Unknown tool") //nolint:staticcheck // surfaced to clients verbatim

	// ErrServiceUnavailable is returned by create_payment_link when payments are not configured.
	ErrServiceUnavailable = errors.New("Stripe not configured. Set STRIPE_SECRET_KEY environment variable.") //nolint:staticcheck // surfaced to clients verbatim
)

// ValidationError lists the invalid arguments of a call, keyed by argument name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid arguments"
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}

	return "invalid arguments: " + strings.Join(msgs, "; ")
}
