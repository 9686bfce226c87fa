// Package emaillog persists the append-only record of sent emails.
//
// Two stores share the same table layout: Supabase talks to the PostgREST
// endpoint of a Supabase project, Postgres writes through a direct pgx pool.
package emaillog

import "time"

// StatusSent marks an entry written after a successful send.
const StatusSent = "sent"

// MaxListLimit caps how many entries a single List returns.
const MaxListLimit = 100

// Entry is one row of the email_log table.
type Entry struct {
	ID        string     `json:"id"`
	ToEmail   string     `json:"to_email"`
	Subject   string     `json:"subject"`
	HTML      string     `json:"html"`
	Flow      string     `json:"flow"`
	Status    string     `json:"status"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// APIError is a failure reported by the store backend. Message is the backend's own text.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func clampLimit(limit int) int {
	return min(max(limit, 1), MaxListLimit)
}
