package tool_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hal9000y/waterbar-mcp/internal/emaillog"
	"github.com/hal9000y/waterbar-mcp/internal/resend"
	"github.com/hal9000y/waterbar-mcp/internal/stripe"
)

type mailSvcMock struct {
	SendFunc        func(ctx context.Context, msg resend.Message) (resend.SendResult, error)
	GetEmailFunc    func(ctx context.Context, id string) (json.RawMessage, error)
	CancelEmailFunc func(ctx context.Context, id string) (json.RawMessage, error)
	ListDomainsFunc func(ctx context.Context) (json.RawMessage, error)
	GetDomainFunc   func(ctx context.Context, id string) (json.RawMessage, error)

	calls struct {
		Send        []resend.Message
		GetEmail    []string
		CancelEmail []string
		ListDomains int
		GetDomain   []string
	}
	lock sync.RWMutex
}

func (m *mailSvcMock) Send(ctx context.Context, msg resend.Message) (resend.SendResult, error) {
	if m.SendFunc == nil {
		panic("mailSvcMock.SendFunc: method is nil but mailSvc.Send was just called")
	}
	m.lock.Lock()
	m.calls.Send = append(m.calls.Send, msg)
	m.lock.Unlock()
	return m.SendFunc(ctx, msg)
}

func (m *mailSvcMock) SendCalls() []resend.Message {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Send
}

func (m *mailSvcMock) GetEmail(ctx context.Context, id string) (json.RawMessage, error) {
	if m.GetEmailFunc == nil {
		panic("mailSvcMock.GetEmailFunc: method is nil but mailSvc.GetEmail was just called")
	}
	m.lock.Lock()
	m.calls.GetEmail = append(m.calls.GetEmail, id)
	m.lock.Unlock()
	return m.GetEmailFunc(ctx, id)
}

func (m *mailSvcMock) GetEmailCalls() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.GetEmail
}

func (m *mailSvcMock) CancelEmail(ctx context.Context, id string) (json.RawMessage, error) {
	if m.CancelEmailFunc == nil {
		panic("mailSvcMock.CancelEmailFunc: method is nil but mailSvc.CancelEmail was just called")
	}
	m.lock.Lock()
	m.calls.CancelEmail = append(m.calls.CancelEmail, id)
	m.lock.Unlock()
	return m.CancelEmailFunc(ctx, id)
}

func (m *mailSvcMock) CancelEmailCalls() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.CancelEmail
}

func (m *mailSvcMock) ListDomains(ctx context.Context) (json.RawMessage, error) {
	if m.ListDomainsFunc == nil {
		panic("mailSvcMock.ListDomainsFunc: method is nil but mailSvc.ListDomains was just called")
	}
	m.lock.Lock()
	m.calls.ListDomains++
	m.lock.Unlock()
	return m.ListDomainsFunc(ctx)
}

func (m *mailSvcMock) ListDomainsCalls() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.ListDomains
}

func (m *mailSvcMock) GetDomain(ctx context.Context, id string) (json.RawMessage, error) {
	if m.GetDomainFunc == nil {
		panic("mailSvcMock.GetDomainFunc: method is nil but mailSvc.GetDomain was just called")
	}
	m.lock.Lock()
	m.calls.GetDomain = append(m.calls.GetDomain, id)
	m.lock.Unlock()
	return m.GetDomainFunc(ctx, id)
}

func (m *mailSvcMock) GetDomainCalls() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.GetDomain
}

type emailLogStoreMock struct {
	AppendFunc func(ctx context.Context, entry emaillog.Entry) error
	ListFunc   func(ctx context.Context, limit int) ([]emaillog.Entry, error)

	calls struct {
		Append []emaillog.Entry
		List   []int
	}
	lock sync.RWMutex
}

func (m *emailLogStoreMock) Append(ctx context.Context, entry emaillog.Entry) error {
	if m.AppendFunc == nil {
		panic("emailLogStoreMock.AppendFunc: method is nil but emailLogStore.Append was just called")
	}
	m.lock.Lock()
	m.calls.Append = append(m.calls.Append, entry)
	m.lock.Unlock()
	return m.AppendFunc(ctx, entry)
}

func (m *emailLogStoreMock) AppendCalls() []emaillog.Entry {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Append
}

func (m *emailLogStoreMock) List(ctx context.Context, limit int) ([]emaillog.Entry, error) {
	if m.ListFunc == nil {
		panic("emailLogStoreMock.ListFunc: method is nil but emailLogStore.List was just called")
	}
	m.lock.Lock()
	m.calls.List = append(m.calls.List, limit)
	m.lock.Unlock()
	return m.ListFunc(ctx, limit)
}

func (m *emailLogStoreMock) ListCalls() []int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.List
}

type paymentLinkerMock struct {
	CreatePaymentLinkFunc func(ctx context.Context, params stripe.PaymentLinkParams) (stripe.PaymentLink, error)

	calls struct {
		CreatePaymentLink []stripe.PaymentLinkParams
	}
	lock sync.RWMutex
}

func (m *paymentLinkerMock) CreatePaymentLink(ctx context.Context, params stripe.PaymentLinkParams) (stripe.PaymentLink, error) {
	if m.CreatePaymentLinkFunc == nil {
		panic("paymentLinkerMock.CreatePaymentLinkFunc: method is nil but paymentLinker.CreatePaymentLink was just called")
	}
	m.lock.Lock()
	m.calls.CreatePaymentLink = append(m.calls.CreatePaymentLink, params)
	m.lock.Unlock()
	return m.CreatePaymentLinkFunc(ctx, params)
}

func (m *paymentLinkerMock) CreatePaymentLinkCalls() []stripe.PaymentLinkParams {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.CreatePaymentLink
}
