package modal

import (
	"context"
	"errors"
	"sync"

	"DONATION_CHECKOUT_GO/internal/analytics"
	"DONATION_CHECKOUT_GO/internal/checkout"
	"DONATION_CHECKOUT_GO/internal/config"
	"DONATION_CHECKOUT_GO/internal/confirm"
	"DONATION_CHECKOUT_GO/internal/flags"
	"DONATION_CHECKOUT_GO/internal/methods"
	"DONATION_CHECKOUT_GO/internal/utils"
)

var (
	ErrMethodUnavailable = errors.New("metodo de pagamento indisponivel")
	ErrMethodNotSelected = errors.New("metodo de pagamento nao selecionado")
	ErrModalClosed       = errors.New("modal fechado")
)

type Deps struct {
	Flags    flags.FeatureFlags
	Sink     analytics.Sink
	Log      *utils.Logger
	Bank     config.BankTransfer
	QR       config.QRAsset
	QRSource methods.AssetSource
	Wallet   methods.Catalogue
	// Checkout builds the orchestrator behind the Stripe view.
	Checkout checkout.Deps
	Confirm  confirm.Options
}

// Modal is one donation modal: the method list plus the views the donor
// has opened. Each view is created on first selection and kept until Close.
type Modal struct {
	deps Deps

	mu       sync.Mutex
	open     bool
	selected methods.Method
	views    map[methods.Method]methods.View
}

func New(deps Deps) *Modal {
	if deps.Log == nil {
		deps.Log = utils.NewLogger()
	}
	if deps.Flags == nil {
		deps.Flags = flags.Snapshot{}
	}
	if deps.Sink == nil {
		deps.Sink = analytics.LogSink{Log: deps.Log}
	}
	if deps.Checkout.Sink == nil {
		deps.Checkout.Sink = deps.Sink
	}
	if deps.Checkout.Log == nil {
		deps.Checkout.Log = deps.Log
	}
	if deps.Wallet.IsZero() {
		deps.Wallet = methods.DefaultCatalogue()
	}
	if deps.Confirm.Log == nil {
		deps.Confirm.Log = deps.Log
	}
	return &Modal{deps: deps, views: map[methods.Method]methods.View{}}
}

func (m *Modal) Open(ctx context.Context) {
	m.mu.Lock()
	if m.open {
		m.mu.Unlock()
		return
	}
	m.open = true
	m.mu.Unlock()

	m.deps.Sink.Track(ctx, analytics.Event{
		Action:   "donation_modal_open",
		Category: analytics.CategoryEngagement,
	})
}

func (m *Modal) Available(method methods.Method) bool {
	switch method {
	case methods.DuitNowTransfer, methods.DuitNowQR, methods.TNGEWallet:
		return true
	case methods.Stripe:
		return m.deps.Flags.Enabled(flags.StripePayment)
	default:
		return false
	}
}

// Methods lists the options offered to the donor.
func (m *Modal) Methods() []methods.Option {
	out := make([]methods.Option, 0, len(methods.All))
	for _, method := range methods.All {
		if m.Available(method) {
			out = append(out, methods.OptionFor(method))
		}
	}
	return out
}

func (m *Modal) Select(ctx context.Context, method methods.Method) (methods.View, error) {
	if !m.Available(method) {
		return nil, ErrMethodUnavailable
	}

	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return nil, ErrModalClosed
	}
	view, ok := m.views[method]
	if !ok {
		view = m.newView(method)
		m.views[method] = view
	}
	m.selected = method
	m.mu.Unlock()

	m.deps.Sink.Track(ctx, analytics.Event{
		Action:   "donation_method_select",
		Category: analytics.CategoryEngagement,
		Label:    string(method),
	})
	return view, nil
}

// Back returns to the method list. Views keep their state.
func (m *Modal) Back() {
	m.mu.Lock()
	m.selected = ""
	m.mu.Unlock()
}

func (m *Modal) Selected() methods.Method {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// View returns the view of method if it is the one on screen.
func (m *Modal) View(method methods.Method) (methods.View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return nil, ErrModalClosed
	}
	if m.selected != method {
		return nil, ErrMethodNotSelected
	}
	return m.views[method], nil
}

func (m *Modal) Stripe() (*StripeView, error) {
	view, err := m.View(methods.Stripe)
	if err != nil {
		return nil, err
	}
	return view.(*StripeView), nil
}

func (m *Modal) QR() (*methods.QR, error) {
	view, err := m.View(methods.DuitNowQR)
	if err != nil {
		return nil, err
	}
	return view.(*methods.QR), nil
}

// Close discards every view, including any in-progress Stripe checkout.
func (m *Modal) Close() {
	m.mu.Lock()
	views := m.views
	m.views = map[methods.Method]methods.View{}
	m.selected = ""
	m.open = false
	m.mu.Unlock()

	if stripe, ok := views[methods.Stripe].(*StripeView); ok {
		stripe.Discard()
	}
}

func (m *Modal) newView(method methods.Method) methods.View {
	switch method {
	case methods.DuitNowTransfer:
		return methods.NewBankTransfer(m.deps.Bank)
	case methods.DuitNowQR:
		return methods.NewQR(m.deps.QR.ImageURL, m.deps.QR.FileName, m.deps.QRSource)
	case methods.TNGEWallet:
		return methods.NewWallet(m.deps.Wallet, m.deps.Flags)
	default:
		return newStripeView(checkout.New(m.deps.Checkout), m.deps.Sink, m.deps.Confirm)
	}
}
