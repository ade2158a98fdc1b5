package confirm

import (
	"context"
	"errors"
	"sync"

	"DONATION_CHECKOUT_GO/internal/analytics"
	"DONATION_CHECKOUT_GO/internal/money"
	"DONATION_CHECKOUT_GO/internal/utils"
)

var (
	ErrFlowClosed          = errors.New("pagamento ja finalizado")
	ErrConfirmationPending = errors.New("confirmacao em andamento")
	ErrMissingClientSecret = errors.New("client secret ausente")
)

type RedirectMode string

// RedirectIfRequired only leaves the page for methods that demand it.
const RedirectIfRequired RedirectMode = "if_required"

// PaymentDetails is what the hosted element or wallet button collected.
type PaymentDetails struct {
	PaymentMethod string `json:"paymentMethod"`
}

type ConfirmRequest struct {
	ClientSecret  string
	ReturnURL     string
	Redirect      RedirectMode
	PaymentMethod string
}

// Handle is the payment SDK bound to a publishable key.
type Handle interface {
	// SubmitElements validates collected details before an express confirmation.
	SubmitElements(ctx context.Context, details PaymentDetails) (*SDKError, error)
	ConfirmPayment(ctx context.Context, req ConfirmRequest) (Result, error)
}

type Options struct {
	ReturnURL string
	Log       *utils.Logger
}

// Flow confirms one payment intent and reports its outcome.
type Flow struct {
	clientSecret string
	amount       money.Amount
	handle       Handle
	sink         analytics.Sink
	returnURL    string
	log          *utils.Logger

	mu             sync.Mutex
	inFlight       bool
	closed         bool
	last           Outcome
	displayedError string
}

func NewFlow(clientSecret string, amount money.Amount, handle Handle, sink analytics.Sink, opts Options) (*Flow, error) {
	if clientSecret == "" {
		return nil, ErrMissingClientSecret
	}
	logger := opts.Log
	if logger == nil {
		logger = utils.NewLogger()
	}
	if sink == nil {
		sink = analytics.LogSink{Log: logger}
	}
	return &Flow{
		clientSecret: clientSecret,
		amount:       amount,
		handle:       handle,
		sink:         sink,
		returnURL:    opts.ReturnURL,
		log:          logger,
	}, nil
}

// Submit confirms the details entered in the hosted payment form.
func (f *Flow) Submit(ctx context.Context, details PaymentDetails) (Outcome, error) {
	if err := f.begin(); err != nil {
		return Outcome{}, err
	}
	res, err := f.handle.ConfirmPayment(ctx, f.request(details))
	return f.finish(ctx, "submit", Classify(res, err)), nil
}

// ExpressCheckout confirms a wallet payment. The elements are submitted first
// since there is no hosted form to validate them.
func (f *Flow) ExpressCheckout(ctx context.Context, details PaymentDetails) (Outcome, error) {
	if err := f.begin(); err != nil {
		return Outcome{}, err
	}

	sdkErr, err := f.handle.SubmitElements(ctx, details)
	if err != nil {
		return f.finish(ctx, "express", Outcome{Kind: KindFatalError, Reason: err.Error()}), nil
	}
	if sdkErr != nil {
		return f.finish(ctx, "express", Outcome{Kind: KindRecoverableError, Reason: sdkErr.Message}), nil
	}

	res, err := f.handle.ConfirmPayment(ctx, f.request(details))
	return f.finish(ctx, "express", Classify(res, err)), nil
}

func (f *Flow) Last() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// DisplayedError is the message to show until the next attempt starts.
func (f *Flow) DisplayedError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.displayedError
}

func (f *Flow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Flow) Amount() money.Amount {
	return f.amount
}

func (f *Flow) request(details PaymentDetails) ConfirmRequest {
	return ConfirmRequest{
		ClientSecret:  f.clientSecret,
		ReturnURL:     f.returnURL,
		Redirect:      RedirectIfRequired,
		PaymentMethod: details.PaymentMethod,
	}
}

func (f *Flow) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrFlowClosed
	}
	if f.inFlight {
		return ErrConfirmationPending
	}
	f.inFlight = true
	f.displayedError = ""
	return nil
}

func (f *Flow) finish(ctx context.Context, entry string, outcome Outcome) Outcome {
	f.mu.Lock()
	f.inFlight = false
	f.last = outcome
	if outcome.Kind == KindRecoverableError {
		f.displayedError = outcome.Reason
	}
	if outcome.Final() {
		f.closed = true
	}
	f.mu.Unlock()

	fields := map[string]interface{}{
		"entry":   entry,
		"outcome": string(outcome.Kind),
		"amount":  f.amount.String(),
	}
	if outcome.Reason != "" {
		fields["reason"] = outcome.Reason
	}
	if outcome.Kind == KindFatalError {
		f.log.Error("confirmacao_falhou", fields)
	} else {
		f.log.Info("confirmacao_resultado", fields)
	}

	if event, ok := outcomeEvent(outcome, f.amount); ok {
		f.sink.Track(ctx, event)
	}
	return outcome
}

func outcomeEvent(outcome Outcome, amount money.Amount) (analytics.Event, bool) {
	event := analytics.Event{Category: analytics.CategoryDonation, Value: analytics.Value(amount.Float64())}
	switch outcome.Kind {
	case KindSucceeded:
		event.Action = "stripe_payment_success"
	case KindProcessing:
		event.Action = "stripe_payment_processing"
	case KindRecoverableError:
		event.Action = "stripe_payment_error"
		event.Label = outcome.Reason
	case KindFatalError:
		event.Action = "stripe_payment_fatal"
		event.Label = outcome.Reason
	default:
		return analytics.Event{}, false
	}
	return event, true
}
