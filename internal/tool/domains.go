package tool

import (
	"context"
	"encoding/json"
	"log/slog"
)

// ListDomainsRequest takes no arguments.
type ListDomainsRequest struct{}

// DomainIDRequest identifies a sender domain.
type DomainIDRequest struct {
	ID string `json:"id" validate:"required"`
}

// ListDomainsResponse embeds the provider domain list verbatim.
type ListDomainsResponse struct {
	Success bool            `json:"success"`
	Domains json.RawMessage `json:"domains"`
}

// GetDomainResponse embeds the provider domain record verbatim.
type GetDomainResponse struct {
	Success bool            `json:"success"`
	Domain  json.RawMessage `json:"domain"`
}

type domainReader interface {
	ListDomains(ctx context.Context) (json.RawMessage, error)
	GetDomain(ctx context.Context, id string) (json.RawMessage, error)
}

// NewDomains creates the list_domains and get_domain tools.
func NewDomains(svc domainReader) *Domains {
	return &Domains{svc: svc}
}

// Domains delegates sender domain lookups to the provider.
type Domains struct {
	svc domainReader
}

// ListDomains returns every configured sender domain.
func (t *Domains) ListDomains(ctx context.Context, logger *slog.Logger, _ ListDomainsRequest) (ListDomainsResponse, error) {
	logger.Debug("listing domains")

	domains, err := t.svc.ListDomains(ctx)
	if err != nil {
		return ListDomainsResponse{}, err
	}

	return ListDomainsResponse{Success: true, Domains: domains}, nil
}

// GetDomain fetches one sender domain by provider id.
func (t *Domains) GetDomain(ctx context.Context, logger *slog.Logger, input DomainIDRequest) (GetDomainResponse, error) {
	logger.Debug("getting domain", "domain_id", input.ID)

	domain, err := t.svc.GetDomain(ctx, input.ID)
	if err != nil {
		return GetDomainResponse{}, err
	}

	return GetDomainResponse{Success: true, Domain: domain}, nil
}
