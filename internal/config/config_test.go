package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookup(map[string]string{
		"CONFIG_ENDPOINTS": " https://a.example.com/ , https://b.example.com ",
		"INTENT_ENDPOINTS": "https://a.example.com",
		"APP_ORIGIN":       "https://donate.example.com/",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.ConfigEndpoints)
	assert.Equal(t, []string{"https://a.example.com"}, cfg.IntentEndpoints)
	assert.Equal(t, "https://donate.example.com", cfg.AppOrigin)
	assert.Equal(t, "myr", cfg.Currency)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "image.png", cfg.QR.FileName)
	assert.False(t, cfg.NeedsAWS())
	assert.Equal(t, "https://donate.example.com/donate?payment_status=success", cfg.ReturnURL())
}

func TestFromLookupRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		values map[string]string
		want   string
	}{
		{
			name:   "sem config endpoints",
			values: map[string]string{"INTENT_ENDPOINTS": "https://a", "APP_ORIGIN": "https://o"},
			want:   "CONFIG_ENDPOINTS nao definido",
		},
		{
			name:   "sem intent endpoints",
			values: map[string]string{"CONFIG_ENDPOINTS": "https://a", "APP_ORIGIN": "https://o"},
			want:   "INTENT_ENDPOINTS nao definido",
		},
		{
			name:   "sem origin",
			values: map[string]string{"CONFIG_ENDPOINTS": "https://a", "INTENT_ENDPOINTS": "https://a"},
			want:   "APP_ORIGIN nao definido",
		},
		{
			name: "flags table sem regiao",
			values: map[string]string{
				"CONFIG_ENDPOINTS": "https://a", "INTENT_ENDPOINTS": "https://a", "APP_ORIGIN": "https://o",
				"FLAGS_TABLE_NAME": "flags",
			},
			want: "AWS_REGION nao definido",
		},
		{
			name: "timeout invalido",
			values: map[string]string{
				"CONFIG_ENDPOINTS": "https://a", "INTENT_ENDPOINTS": "https://a", "APP_ORIGIN": "https://o",
				"HTTP_TIMEOUT_SECONDS": "abc",
			},
			want: "HTTP_TIMEOUT_SECONDS invalido",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromLookup(lookup(tc.values))
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestFromLookupAWSCollaborators(t *testing.T) {
	cfg, err := FromLookup(lookup(map[string]string{
		"CONFIG_ENDPOINTS":      "https://a",
		"INTENT_ENDPOINTS":      "https://a",
		"APP_ORIGIN":            "https://o",
		"AWS_REGION":            "ap-southeast-1",
		"ANALYTICS_QUEUE_URL":   "https://sqs/queue",
		"HTTP_TIMEOUT_SECONDS":  "3",
		"WALLET_CATALOGUE_JSON": ` {"primary":{"name":"TNG"}} `,
	}))
	require.NoError(t, err)
	assert.True(t, cfg.NeedsAWS())
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, `{"primary":{"name":"TNG"}}`, cfg.WalletCatalogue)
}
