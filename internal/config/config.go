// Package config loads process settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config stores environment-driven settings for the server.
type Config struct {
	// ResendAPIKey authenticates against the email API.
	ResendAPIKey string `env:"RESEND_API_KEY,required,notEmpty"`
	// ResendBaseURL overrides the email API endpoint.
	ResendBaseURL string `env:"RESEND_BASE_URL" envDefault:"https://api.resend.com"`
	// ResendRateLimit caps email API requests per second, 0 disables pacing.
	ResendRateLimit float64 `env:"RESEND_RATE_LIMIT" envDefault:"2"`
	// EmailFrom is the fixed sender address for every outgoing email.
	EmailFrom string `env:"EMAIL_FROM" envDefault:"onboarding@resend.dev"`

	// SupabaseURL is the project URL hosting the email_log table.
	SupabaseURL string `env:"SUPABASE_URL" envDefault:"https://dpaciwcnzwyymjmkftrc.supabase.co"`
	// SupabaseServiceKey authenticates PostgREST calls.
	SupabaseServiceKey string `env:"SUPABASE_SERVICE_KEY,required,notEmpty"`
	// DatabaseURL switches the email log to a direct Postgres connection.
	DatabaseURL string `env:"DATABASE_URL"`

	// StripeSecretKey enables payment links; empty disables them.
	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
	// StripeBaseURL overrides the payments API endpoint.
	StripeBaseURL string `env:"STRIPE_BASE_URL" envDefault:"https://api.stripe.com"`

	// LogLevel sets the logger level.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads envFile (when not empty) into the process environment and parses Config.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("godotenv.Load failed: %w", err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("env.ParseAs failed: %w", err)
	}

	return cfg, nil
}

// PaymentsEnabled reports whether the payments adapter can be built.
func (c Config) PaymentsEnabled() bool {
	return c.StripeSecretKey != ""
}
