package emaillog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hal9000y/waterbar-mcp/internal/auth"
)

const table = "email_log"

// Supabase stores entries through the project's PostgREST endpoint.
type Supabase struct {
	baseURL    string
	serviceKey string
	clt        *http.Client
}

// NewSupabase builds a store for the project at projectURL. clt may be nil.
func NewSupabase(projectURL, serviceKey string, clt *http.Client) *Supabase {
	return &Supabase{
		baseURL:    strings.TrimRight(projectURL, "/") + "/rest/v1/" + table,
		serviceKey: serviceKey,
		clt:        auth.NewClient(clt, serviceKey),
	}
}

// Append inserts entry.
func (s *Supabase) Append(ctx context.Context, entry Entry) error {
	buf, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("json.Marshal failed: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodPost, s.baseURL, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	_, err = s.send(req)
	return err
}

// List returns up to limit entries, newest first. limit is clamped to [1, MaxListLimit].
func (s *Supabase) List(ctx context.Context, limit int) ([]Entry, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")
	q.Set("limit", strconv.Itoa(clampLimit(limit)))

	req, err := s.newRequest(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	raw, err := s.send(req)
	if err != nil {
		return nil, err
	}

	entries := []Entry{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode email_log rows failed: %w", err)
	}

	return entries, nil
}

func (s *Supabase) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest failed: %w", err)
	}
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (s *Supabase) send(req *http.Request) ([]byte, error) {
	resp, err := s.clt.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", req.Method, table, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, raw)
	}

	return raw, nil
}

func decodeError(status int, raw []byte) error {
	apiErr := &APIError{StatusCode: status}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("supabase: unexpected status %d: %s", status, strings.TrimSpace(string(raw)))
	}

	return apiErr
}
