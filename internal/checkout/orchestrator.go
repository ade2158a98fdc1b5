package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"DONATION_CHECKOUT_GO/internal/analytics"
	"DONATION_CHECKOUT_GO/internal/confirm"
	"DONATION_CHECKOUT_GO/internal/money"
	"DONATION_CHECKOUT_GO/internal/resolver"
	"DONATION_CHECKOUT_GO/internal/utils"
)

const (
	ConfigPath = "/api/stripe-config"
	IntentPath = "/api/create-payment-intent"

	metadataSource = "website_donation"
)

type State string

const (
	StateUnselected    State = "unselected"
	StateConfigLoading State = "config_loading"
	StateConfigError   State = "config_error"
	StateIntentPending State = "intent_pending"
	StateIntentError   State = "intent_error"
	StateIntentReady   State = "intent_ready"
	StateCompleted     State = "completed"
)

// Endpoint resolves a request against a list of candidate backends.
type Endpoint interface {
	Resolve(ctx context.Context, req resolver.Request) (*resolver.Response, error)
}

// SDKLoader turns a publishable key into a payment SDK handle.
type SDKLoader interface {
	Load(ctx context.Context, publishableKey string) (confirm.Handle, error)
}

type Deps struct {
	Config   Endpoint
	Intent   Endpoint
	SDK      SDKLoader
	Sink     analytics.Sink
	Log      *utils.Logger
	Currency string
}

type Snapshot struct {
	State          State  `json:"state"`
	Amount         string `json:"amount,omitempty"`
	AmountLabel    string `json:"amountLabel,omitempty"`
	PublishableKey string `json:"publishableKey,omitempty"`
	ClientSecret   string `json:"clientSecret,omitempty"`
	Error          string `json:"error,omitempty"`
	Retryable      bool   `json:"retryable,omitempty"`
	Generation     uint64 `json:"generation"`
}

// Intent is everything the confirmation flow needs once the intent exists.
type Intent struct {
	ClientSecret string
	Amount       money.Amount
	Handle       confirm.Handle
}

type configResponse struct {
	PublishableKey string `json:"publishableKey"`
}

type automaticPaymentMethods struct {
	Enabled bool `json:"enabled"`
}

type createIntentRequest struct {
	Amount                  int64                   `json:"amount"`
	Currency                string                  `json:"currency"`
	AutomaticPaymentMethods automaticPaymentMethods `json:"automatic_payment_methods"`
	Metadata                map[string]string       `json:"metadata"`
}

type createIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// Orchestrator turns a donation amount into a payment intent ready to confirm.
// Every select, retry or amount change bumps the generation; a network result
// belonging to an older generation is dropped.
type Orchestrator struct {
	deps Deps

	mu             sync.Mutex
	state          State
	amount         money.Amount
	publishableKey string
	handle         confirm.Handle
	clientSecret   string
	lastErr        error
	generation     uint64
}

func New(deps Deps) *Orchestrator {
	if deps.Currency == "" {
		deps.Currency = "myr"
	}
	if deps.Log == nil {
		deps.Log = utils.NewLogger()
	}
	return &Orchestrator{deps: deps, state: StateUnselected}
}

func (o *Orchestrator) SelectPreset(ctx context.Context, value int64) error {
	amount, err := money.Preset(value)
	if err != nil {
		return err
	}
	gen, err := o.start(amount)
	if err != nil {
		return err
	}
	o.track(ctx, "stripe_amount_select", &amount)
	return o.run(ctx, gen, amount)
}

// SubmitCustom validates raw before anything else; invalid text leaves the
// orchestrator untouched.
func (o *Orchestrator) SubmitCustom(ctx context.Context, raw string) error {
	amount, err := money.Parse(raw)
	if err != nil {
		return err
	}
	gen, err := o.start(amount)
	if err != nil {
		return err
	}
	o.track(ctx, "stripe_custom_amount", &amount)
	return o.run(ctx, gen, amount)
}

// Retry re-runs the whole pipeline from the config fetch.
func (o *Orchestrator) Retry(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateConfigError && o.state != StateIntentError {
		o.mu.Unlock()
		return ErrRetryNotAllowed
	}
	o.generation++
	gen := o.generation
	amount := o.amount
	o.clearIntent()
	o.state = StateConfigLoading
	o.mu.Unlock()

	o.deps.Log.Info("checkout_retry", map[string]interface{}{"amount": amount.String(), "generation": gen})
	return o.run(ctx, gen, amount)
}

// ChangeAmount drops the amount and anything derived from it, including
// requests still in flight.
func (o *Orchestrator) ChangeAmount(ctx context.Context) {
	o.reset()
	o.track(ctx, "stripe_change_amount", nil)
}

// Complete drops the intent once its payment went through. The amount stays
// on display until ChangeAmount or Discard.
func (o *Orchestrator) Complete() {
	o.mu.Lock()
	if o.state != StateIntentReady {
		o.mu.Unlock()
		return
	}
	o.generation++
	o.clearIntent()
	o.state = StateCompleted
	amount := o.amount
	o.mu.Unlock()

	o.deps.Log.Info("doacao_concluida", map[string]interface{}{"amount": amount.String()})
}

// Discard invalidates the orchestrator when its modal goes away.
func (o *Orchestrator) Discard() {
	o.reset()
}

func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := Snapshot{State: o.state, Generation: o.generation, PublishableKey: o.publishableKey}
	if o.state != StateUnselected {
		snap.Amount = o.amount.String()
		snap.AmountLabel = o.amount.Label()
	}
	if o.state == StateIntentReady {
		snap.ClientSecret = o.clientSecret
	}
	if o.lastErr != nil {
		snap.Error = PublicMessage(o.lastErr)
		snap.Retryable = Retryable(o.lastErr)
	}
	return snap
}

func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Ready returns the intent once the orchestrator reached StateIntentReady.
func (o *Orchestrator) Ready() (Intent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateIntentReady {
		return Intent{}, false
	}
	return Intent{ClientSecret: o.clientSecret, Amount: o.amount, Handle: o.handle}, true
}

func (o *Orchestrator) start(amount money.Amount) (uint64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateUnselected {
		return 0, ErrAmountAlreadySelected
	}
	o.generation++
	o.amount = amount
	o.clearIntent()
	o.state = StateConfigLoading
	return o.generation, nil
}

func (o *Orchestrator) reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.generation++
	o.amount = money.Amount{}
	o.clearIntent()
	o.state = StateUnselected
}

// clearIntent must be called with mu held.
func (o *Orchestrator) clearIntent() {
	o.publishableKey = ""
	o.handle = nil
	o.clientSecret = ""
	o.lastErr = nil
}

func (o *Orchestrator) run(ctx context.Context, gen uint64, amount money.Amount) error {
	key, fetchErr := o.fetchConfig(ctx)
	err := o.apply(gen, func() error {
		if fetchErr != nil {
			return o.fail(StateConfigError, fetchErr)
		}
		o.publishableKey = key
		return nil
	})
	if err != nil {
		return err
	}

	handle, loadErr := o.deps.SDK.Load(ctx, key)
	err = o.apply(gen, func() error {
		if loadErr != nil {
			return o.fail(StateConfigError, fmt.Errorf("%w: %v", ErrSDKUnavailable, loadErr))
		}
		o.handle = handle
		o.state = StateIntentPending
		return nil
	})
	if err != nil {
		return err
	}

	secret, createErr := o.createIntent(ctx, amount)
	return o.apply(gen, func() error {
		if createErr != nil {
			return o.fail(StateIntentError, createErr)
		}
		o.clientSecret = secret
		o.state = StateIntentReady
		o.deps.Log.Info("payment_intent_pronto", map[string]interface{}{
			"amount":     amount.String(),
			"generation": gen,
		})
		return nil
	})
}

// apply runs fn under the lock unless the generation moved on.
func (o *Orchestrator) apply(gen uint64, fn func() error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.generation != gen {
		o.deps.Log.Info("resposta_descartada", map[string]interface{}{
			"generation": gen,
			"current":    o.generation,
		})
		return ErrStaleResponse
	}
	return fn()
}

// fail must be called with mu held.
func (o *Orchestrator) fail(state State, err error) error {
	o.state = state
	o.lastErr = err
	o.deps.Log.Error("checkout_falhou", map[string]interface{}{
		"state": string(state),
		"error": err.Error(),
	})
	return err
}

func (o *Orchestrator) fetchConfig(ctx context.Context) (string, error) {
	resp, err := o.deps.Config.Resolve(ctx, resolver.Request{Method: http.MethodGet, Path: ConfigPath})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEndpointUnreachable, err)
	}
	var out configResponse
	if err := resp.Decode(&out); err != nil || out.PublishableKey == "" {
		return "", ErrConfigMissing
	}
	return out.PublishableKey, nil
}

func (o *Orchestrator) createIntent(ctx context.Context, amount money.Amount) (string, error) {
	resp, err := o.deps.Intent.Resolve(ctx, resolver.Request{
		Method: http.MethodPost,
		Path:   IntentPath,
		Body: createIntentRequest{
			Amount:                  amount.MinorUnits(),
			Currency:                o.deps.Currency,
			AutomaticPaymentMethods: automaticPaymentMethods{Enabled: true},
			Metadata: map[string]string{
				"source":          metadataSource,
				"amount_original": amount.Original(),
			},
		},
	})
	if err != nil {
		if errors.Is(err, resolver.ErrResolutionFailure) {
			return "", fmt.Errorf("%w: %w", ErrIntentCreationFailed, ErrEndpointUnreachable)
		}
		return "", fmt.Errorf("%w: %v", ErrIntentCreationFailed, err)
	}
	var out createIntentResponse
	if err := resp.Decode(&out); err != nil || out.ClientSecret == "" {
		return "", fmt.Errorf("%w: client secret ausente", ErrIntentCreationFailed)
	}
	return out.ClientSecret, nil
}

func (o *Orchestrator) track(ctx context.Context, action string, amount *money.Amount) {
	if o.deps.Sink == nil {
		return
	}
	event := analytics.Event{Action: action, Category: analytics.CategoryDonation}
	if amount != nil {
		event.Value = analytics.Value(amount.Float64())
	}
	o.deps.Sink.Track(ctx, event)
}
