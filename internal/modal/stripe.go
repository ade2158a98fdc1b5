package modal

import (
	"context"
	"errors"
	"sync"

	"DONATION_CHECKOUT_GO/internal/analytics"
	"DONATION_CHECKOUT_GO/internal/checkout"
	"DONATION_CHECKOUT_GO/internal/confirm"
	"DONATION_CHECKOUT_GO/internal/methods"
)

var ErrIntentNotReady = errors.New("payment intent ainda nao criado")

// StripeView pairs the intent orchestrator with the confirmation flow of the
// intent it produced.
type StripeView struct {
	orch *checkout.Orchestrator
	sink analytics.Sink
	opts confirm.Options

	mu     sync.Mutex
	flow   *confirm.Flow
	secret string
}

type StripeSnapshot struct {
	checkout.Snapshot
	Outcome        *confirm.Outcome `json:"outcome,omitempty"`
	DisplayedError string           `json:"displayedError,omitempty"`
}

func newStripeView(orch *checkout.Orchestrator, sink analytics.Sink, opts confirm.Options) *StripeView {
	return &StripeView{orch: orch, sink: sink, opts: opts}
}

func (s *StripeView) Method() methods.Method {
	return methods.Stripe
}

func (s *StripeView) SelectPreset(ctx context.Context, value int64) error {
	return s.orch.SelectPreset(ctx, value)
}

func (s *StripeView) SubmitCustom(ctx context.Context, raw string) error {
	return s.orch.SubmitCustom(ctx, raw)
}

func (s *StripeView) Retry(ctx context.Context) error {
	return s.orch.Retry(ctx)
}

// ChangeAmount returns to amount selection and forgets the confirmation
// flow of the previous intent.
func (s *StripeView) ChangeAmount(ctx context.Context) {
	s.orch.ChangeAmount(ctx)
	s.dropFlow()
}

func (s *StripeView) Confirm(ctx context.Context, details confirm.PaymentDetails) (confirm.Outcome, error) {
	flow, err := s.currentFlow()
	if err != nil {
		return confirm.Outcome{}, err
	}
	outcome, err := flow.Submit(ctx, details)
	return s.settle(outcome, err)
}

func (s *StripeView) Express(ctx context.Context, details confirm.PaymentDetails) (confirm.Outcome, error) {
	flow, err := s.currentFlow()
	if err != nil {
		return confirm.Outcome{}, err
	}
	outcome, err := flow.ExpressCheckout(ctx, details)
	return s.settle(outcome, err)
}

// settle drops the intent once the donation went through. The flow keeps
// the outcome for the snapshot.
func (s *StripeView) settle(outcome confirm.Outcome, err error) (confirm.Outcome, error) {
	if err == nil && outcome.Successful() {
		s.orch.Complete()
	}
	return outcome, err
}

func (s *StripeView) Snapshot() StripeSnapshot {
	snap := StripeSnapshot{Snapshot: s.orch.Snapshot()}

	s.mu.Lock()
	flow := s.flow
	s.mu.Unlock()
	if flow == nil {
		return snap
	}
	if last := flow.Last(); last.Kind != "" {
		snap.Outcome = &last
	}
	snap.DisplayedError = flow.DisplayedError()
	return snap
}

func (s *StripeView) Discard() {
	s.orch.Discard()
	s.dropFlow()
}

// currentFlow returns the flow bound to the ready intent, creating it on
// first use. A new client secret always gets a fresh flow. A closed flow is
// returned as is so further attempts fail with confirm.ErrFlowClosed.
func (s *StripeView) currentFlow() (*confirm.Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow != nil && s.flow.Closed() {
		return s.flow, nil
	}

	intent, ok := s.orch.Ready()
	if !ok {
		return nil, ErrIntentNotReady
	}
	if s.flow != nil && s.secret == intent.ClientSecret {
		return s.flow, nil
	}
	flow, err := confirm.NewFlow(intent.ClientSecret, intent.Amount, intent.Handle, s.sink, s.opts)
	if err != nil {
		return nil, err
	}
	s.flow = flow
	s.secret = intent.ClientSecret
	return flow, nil
}

func (s *StripeView) dropFlow() {
	s.mu.Lock()
	s.flow = nil
	s.secret = ""
	s.mu.Unlock()
}
