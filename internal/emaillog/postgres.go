package emaillog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// Postgres stores entries through a direct database connection.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres opens a pool for databaseURL and verifies connectivity.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New failed: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping failed: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// EnsureSchema creates the email_log table when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema failed: %w", err)
		}
	}
	return nil
}

// Append inserts entry.
func (p *Postgres) Append(ctx context.Context, entry Entry) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO email_log (id, to_email, subject, html, flow, status) VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.ToEmail, entry.Subject, entry.HTML, entry.Flow, entry.Status,
	)
	if err != nil {
		return wrapPgError("insert email_log", err)
	}
	return nil
}

// List returns up to limit entries, newest first. limit is clamped to [1, MaxListLimit].
func (p *Postgres) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, to_email, subject, html, flow, status, created_at
		FROM email_log
		ORDER BY created_at DESC
		LIMIT $1`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, wrapPgError("select email_log", err)
	}

	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e  Entry
			ts time.Time
		)
		if err := rows.Scan(&e.ID, &e.ToEmail, &e.Subject, &e.HTML, &e.Flow, &e.Status, &ts); err != nil {
			return nil, wrapPgError("scan email_log row", err)
		}
		e.CreatedAt = &ts
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgError("read email_log rows", err)
	}

	return entries, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

func wrapPgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &APIError{Code: pgErr.Code, Message: pgErr.Message}
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
