package confirm

import (
	"context"
	"sync"
)

// MockHandle implements Handle with overridable functions.
type MockHandle struct {
	SubmitElementsFunc func(ctx context.Context, details PaymentDetails) (*SDKError, error)
	ConfirmPaymentFunc func(ctx context.Context, req ConfirmRequest) (Result, error)

	mu       sync.Mutex
	submits  int
	confirms []ConfirmRequest
}

func (m *MockHandle) SubmitElements(ctx context.Context, details PaymentDetails) (*SDKError, error) {
	m.mu.Lock()
	m.submits++
	m.mu.Unlock()
	if m.SubmitElementsFunc != nil {
		return m.SubmitElementsFunc(ctx, details)
	}
	return nil, nil
}

func (m *MockHandle) ConfirmPayment(ctx context.Context, req ConfirmRequest) (Result, error) {
	m.mu.Lock()
	m.confirms = append(m.confirms, req)
	m.mu.Unlock()
	if m.ConfirmPaymentFunc != nil {
		return m.ConfirmPaymentFunc(ctx, req)
	}
	return Result{Status: StatusSucceeded}, nil
}

func (m *MockHandle) Confirms() []ConfirmRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ConfirmRequest(nil), m.confirms...)
}

func (m *MockHandle) Submits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submits
}
