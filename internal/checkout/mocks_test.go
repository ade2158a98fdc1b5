package checkout

import (
	"context"
	"encoding/json"
	"sync"

	"DONATION_CHECKOUT_GO/internal/confirm"
	"DONATION_CHECKOUT_GO/internal/resolver"
)

// MockEndpoint implements Endpoint and records every request.
type MockEndpoint struct {
	ResolveFunc func(ctx context.Context, req resolver.Request) (*resolver.Response, error)

	mu       sync.Mutex
	requests []resolver.Request
}

func (m *MockEndpoint) Resolve(ctx context.Context, req resolver.Request) (*resolver.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, req)
	}
	return nil, resolver.ErrResolutionFailure
}

func (m *MockEndpoint) Requests() []resolver.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]resolver.Request(nil), m.requests...)
}

func jsonResponse(v interface{}) *resolver.Response {
	b, _ := json.Marshal(v)
	return &resolver.Response{StatusCode: 200, Body: b}
}

func respondWith(v interface{}) func(context.Context, resolver.Request) (*resolver.Response, error) {
	return func(context.Context, resolver.Request) (*resolver.Response, error) {
		return jsonResponse(v), nil
	}
}

// MockLoader implements SDKLoader.
type MockLoader struct {
	LoadFunc func(ctx context.Context, publishableKey string) (confirm.Handle, error)

	mu   sync.Mutex
	keys []string
}

func (m *MockLoader) Load(ctx context.Context, publishableKey string) (confirm.Handle, error) {
	m.mu.Lock()
	m.keys = append(m.keys, publishableKey)
	m.mu.Unlock()
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, publishableKey)
	}
	return &fakeHandle{status: confirm.StatusSucceeded}, nil
}

func (m *MockLoader) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.keys...)
}

type fakeHandle struct {
	status string
}

func (f *fakeHandle) SubmitElements(context.Context, confirm.PaymentDetails) (*confirm.SDKError, error) {
	return nil, nil
}

func (f *fakeHandle) ConfirmPayment(context.Context, confirm.ConfirmRequest) (confirm.Result, error) {
	return confirm.Result{Status: f.status}, nil
}
