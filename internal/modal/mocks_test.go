package modal

import (
	"context"
	"encoding/json"
	"sync"

	"DONATION_CHECKOUT_GO/internal/confirm"
	"DONATION_CHECKOUT_GO/internal/resolver"
)

type MockEndpoint struct {
	ResolveFunc func(ctx context.Context, req resolver.Request) (*resolver.Response, error)
}

func (m *MockEndpoint) Resolve(ctx context.Context, req resolver.Request) (*resolver.Response, error) {
	return m.ResolveFunc(ctx, req)
}

func respondWith(v interface{}) *MockEndpoint {
	return &MockEndpoint{
		ResolveFunc: func(context.Context, resolver.Request) (*resolver.Response, error) {
			b, _ := json.Marshal(v)
			return &resolver.Response{StatusCode: 200, Body: b}, nil
		},
	}
}

type MockLoader struct {
	Handle confirm.Handle
}

func (m *MockLoader) Load(context.Context, string) (confirm.Handle, error) {
	return m.Handle, nil
}

// MockHandle confirms with a canned result and counts calls.
type MockHandle struct {
	Result confirm.Result

	mu       sync.Mutex
	requests []confirm.ConfirmRequest
}

func (m *MockHandle) SubmitElements(context.Context, confirm.PaymentDetails) (*confirm.SDKError, error) {
	return nil, nil
}

func (m *MockHandle) ConfirmPayment(_ context.Context, req confirm.ConfirmRequest) (confirm.Result, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.Result, nil
}

func (m *MockHandle) Requests() []confirm.ConfirmRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]confirm.ConfirmRequest(nil), m.requests...)
}
