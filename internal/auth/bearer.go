// Package auth attaches API-key credentials to outbound HTTP clients.
package auth

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const defaultTimeout = 30 * time.Second

// NewClient returns an HTTP client that sends "Authorization: Bearer <apiKey>"
// on every request. base supplies the underlying transport and timeout; nil
// means a default client.
func NewClient(base *http.Client, apiKey string) *http.Client {
	if base == nil {
		base = &http.Client{Timeout: defaultTimeout}
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	clt := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: apiKey,
		TokenType:   "Bearer",
	}))
	clt.Timeout = base.Timeout

	return clt
}

// Mask hides all but the last four characters of a secret for log output.
func Mask(secret string) string {
	rs := []rune(secret)
	for i := 0; i < len(rs)-4; i++ {
		rs[i] = 'X'
	}
	return string(rs)
}
