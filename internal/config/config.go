package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type BankTransfer struct {
	AccountHolder string
	BankName      string
	AccountNumber string
	DuitNowID     string
}

type QRAsset struct {
	Bucket   string
	Key      string
	ImageURL string
	FileName string
}

type Config struct {
	ConfigEndpoints   []string
	IntentEndpoints   []string
	AppOrigin         string
	Currency          string
	AwsRegion         string
	FlagsTableName    string
	FeatureFlagsJSON  string
	AnalyticsQueueURL string
	WalletCatalogue   string
	HTTPTimeout       time.Duration
	Env               string
	LocalAddr         string
	Bank              BankTransfer
	QR                QRAsset
}

func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.Getenv)
}

// FromLookup builds the config from any getenv-like function.
func FromLookup(getenv func(string) string) (Config, error) {
	get := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}

	cfg := Config{
		ConfigEndpoints:   splitList(get("CONFIG_ENDPOINTS")),
		IntentEndpoints:   splitList(get("INTENT_ENDPOINTS")),
		AppOrigin:         strings.TrimRight(get("APP_ORIGIN"), "/"),
		Currency:          strings.ToLower(get("CURRENCY")),
		AwsRegion:         get("AWS_REGION"),
		FlagsTableName:    get("FLAGS_TABLE_NAME"),
		FeatureFlagsJSON:  get("FEATURE_FLAGS"),
		AnalyticsQueueURL: get("ANALYTICS_QUEUE_URL"),
		WalletCatalogue:   get("WALLET_CATALOGUE_JSON"),
		Env:               get("ENV"),
		LocalAddr:         get("LOCAL_ADDR"),
		Bank: BankTransfer{
			AccountHolder: get("BANK_ACCOUNT_HOLDER"),
			BankName:      get("BANK_NAME"),
			AccountNumber: get("BANK_ACCOUNT_NUMBER"),
			DuitNowID:     get("DUITNOW_ID"),
		},
		QR: QRAsset{
			Bucket:   get("QR_ASSET_BUCKET"),
			Key:      get("QR_ASSET_KEY"),
			ImageURL: get("QR_IMAGE_URL"),
			FileName: get("QR_FILE_NAME"),
		},
	}

	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Currency == "" {
		cfg.Currency = "myr"
	}
	if cfg.QR.FileName == "" {
		cfg.QR.FileName = "image.png"
	}

	cfg.HTTPTimeout = 10 * time.Second
	if raw := get("HTTP_TIMEOUT_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return Config{}, errors.New("HTTP_TIMEOUT_SECONDS invalido")
		}
		cfg.HTTPTimeout = time.Duration(secs) * time.Second
	}

	if len(cfg.ConfigEndpoints) == 0 {
		return Config{}, errors.New("CONFIG_ENDPOINTS nao definido")
	}
	if len(cfg.IntentEndpoints) == 0 {
		return Config{}, errors.New("INTENT_ENDPOINTS nao definido")
	}
	if cfg.AppOrigin == "" {
		return Config{}, errors.New("APP_ORIGIN nao definido")
	}
	if cfg.FlagsTableName != "" && cfg.AwsRegion == "" {
		return Config{}, errors.New("AWS_REGION nao definido")
	}
	if cfg.AnalyticsQueueURL != "" && cfg.AwsRegion == "" {
		return Config{}, errors.New("AWS_REGION nao definido")
	}

	return cfg, nil
}

// NeedsAWS reports whether any configured collaborator lives in AWS.
func (c Config) NeedsAWS() bool {
	return c.FlagsTableName != "" || c.AnalyticsQueueURL != "" || c.QR.Bucket != ""
}

// ReturnURL is where bank-redirect payment methods send the donor back to.
func (c Config) ReturnURL() string {
	return c.AppOrigin + "/donate?payment_status=success"
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
