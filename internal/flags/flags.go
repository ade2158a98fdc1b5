package flags

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"DONATION_CHECKOUT_GO/internal/utils"
)

// StorageKey is the key the flag object is stored under.
const StorageKey = "featureFlags"

type Flag string

const (
	StripePayment        Flag = "STRIPE_PAYMENT"
	CambodianPaymentApps Flag = "CAMBODIAN_PAYMENT_APPS"
)

// FeatureFlags is the read-only view components use to gate optional features.
type FeatureFlags interface {
	Enabled(flag Flag) bool
}

// Store is a key-value source for the raw flag object.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// Snapshot holds flags read once; unknown flags are false.
type Snapshot map[Flag]bool

func (s Snapshot) Enabled(flag Flag) bool {
	return s[flag]
}

// Load reads the flag object from store. It never fails: a missing, unreadable
// or malformed object yields an empty snapshot.
func Load(ctx context.Context, store Store, logger *utils.Logger) Snapshot {
	raw, found, err := store.Get(ctx, StorageKey)
	if err != nil {
		logger.Error("erro_ler_feature_flags", map[string]interface{}{"error": err.Error()})
		return Snapshot{}
	}
	if !found || strings.TrimSpace(raw) == "" {
		return Snapshot{}
	}
	snap, err := Parse(raw)
	if err != nil {
		logger.Error("feature_flags_invalidas", map[string]interface{}{"error": err.Error()})
		return Snapshot{}
	}
	return snap
}

// Parse decodes a JSON object of flags. Only boolean true enables a flag.
func Parse(raw string) (Snapshot, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, err
	}
	snap := Snapshot{}
	for k, v := range fields {
		if b, ok := v.(bool); ok && b {
			snap[Flag(k)] = true
		}
	}
	return snap, nil
}

// EnvStore serves the flag object from an environment variable.
type EnvStore struct {
	Var    string
	Lookup func(string) (string, bool)
}

func NewEnvStore(name string) *EnvStore {
	return &EnvStore{Var: name, Lookup: os.LookupEnv}
}

func (e *EnvStore) Get(_ context.Context, key string) (string, bool, error) {
	if key != StorageKey {
		return "", false, nil
	}
	v, ok := e.Lookup(e.Var)
	return v, ok, nil
}

// StaticStore is an in-memory Store.
type StaticStore map[string]string

func (s StaticStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s[key]
	return v, ok, nil
}
