package stripeclient

import (
	"context"
	"errors"
	"strings"

	"DONATION_CHECKOUT_GO/internal/confirm"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

var (
	ErrInvalidPublishableKey = errors.New("publishable key invalida")
	ErrInvalidClientSecret   = errors.New("client secret invalido")
)

const incompleteDetailsMessage = "Your payment details are incomplete."

// Handle talks to the Stripe API with a publishable key, the same calls the
// browser SDK makes once it holds a client secret.
type Handle struct {
	api *client.API
}

func New(publishableKey string, backends *stripe.Backends) (*Handle, error) {
	if !strings.HasPrefix(publishableKey, "pk_") {
		return nil, ErrInvalidPublishableKey
	}
	return &Handle{api: client.New(publishableKey, backends)}, nil
}

// Loader builds handles for the checkout orchestrator.
type Loader struct {
	Backends *stripe.Backends
}

func (l Loader) Load(_ context.Context, publishableKey string) (confirm.Handle, error) {
	return New(publishableKey, l.Backends)
}

func (h *Handle) SubmitElements(_ context.Context, details confirm.PaymentDetails) (*confirm.SDKError, error) {
	if strings.TrimSpace(details.PaymentMethod) == "" {
		return &confirm.SDKError{Type: confirm.ErrorTypeValidation, Message: incompleteDetailsMessage}, nil
	}
	return nil, nil
}

func (h *Handle) ConfirmPayment(ctx context.Context, req confirm.ConfirmRequest) (confirm.Result, error) {
	id, err := IntentIDFromClientSecret(req.ClientSecret)
	if err != nil {
		return confirm.Result{}, err
	}

	params := &stripe.PaymentIntentConfirmParams{}
	params.Context = ctx
	params.AddExtra("client_secret", req.ClientSecret)
	if req.PaymentMethod != "" {
		params.PaymentMethod = stripe.String(req.PaymentMethod)
	}
	if req.ReturnURL != "" {
		params.ReturnURL = stripe.String(req.ReturnURL)
	}

	pi, err := h.api.PaymentIntents.Confirm(id, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return confirm.Result{Error: &confirm.SDKError{
				Type:    string(stripeErr.Type),
				Code:    string(stripeErr.Code),
				Message: stripeErr.Msg,
			}}, nil
		}
		return confirm.Result{}, err
	}

	res := confirm.Result{Status: string(pi.Status), IntentID: pi.ID}
	if pi.NextAction != nil && pi.NextAction.RedirectToURL != nil {
		res.RedirectURL = pi.NextAction.RedirectToURL.URL
	}
	return res, nil
}

// IntentIDFromClientSecret extracts "pi_123" from "pi_123_secret_abc".
func IntentIDFromClientSecret(secret string) (string, error) {
	idx := strings.Index(secret, "_secret_")
	if idx <= 0 || !strings.HasPrefix(secret, "pi_") {
		return "", ErrInvalidClientSecret
	}
	return secret[:idx], nil
}
