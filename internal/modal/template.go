package modal

import (
	"context"

	"DONATION_CHECKOUT_GO/internal/flags"
	"DONATION_CHECKOUT_GO/internal/resolver"
	"DONATION_CHECKOUT_GO/internal/utils"
)

// Template builds one Modal per donor session. Flags are read and endpoint
// resolvers created for every modal, so a winner memoised by one session
// never orders the candidates of another.
type Template struct {
	Deps            Deps
	FlagStore       flags.Store
	ConfigEndpoints []string
	IntentEndpoints []string
	Client          resolver.Doer
}

func (t Template) New(ctx context.Context) *Modal {
	deps := t.Deps
	logger := deps.Log
	if logger == nil {
		logger = utils.NewLogger()
		deps.Log = logger
	}
	if t.FlagStore != nil {
		deps.Flags = flags.Load(ctx, t.FlagStore, logger)
	}
	deps.Checkout.Config = resolver.New(t.ConfigEndpoints, t.Client, logger)
	deps.Checkout.Intent = resolver.New(t.IntentEndpoints, t.Client, logger)
	return New(deps)
}
