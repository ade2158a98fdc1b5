package methods

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"DONATION_CHECKOUT_GO/internal/flags"
)

var ErrCatalogueInvalid = errors.New("catalogo de carteiras invalido")

type PaymentApp struct {
	Name                string `json:"name"`
	AppURL              string `json:"appUrl"`
	IOSAppURL           string `json:"iosAppUrl,omitempty"`
	AndroidAppURL       string `json:"androidAppUrl,omitempty"`
	Icon                string `json:"icon"`
	IOSAppStoreURL      string `json:"iosAppStoreUrl"`
	AndroidPlayStoreURL string `json:"androidPlayStoreUrl"`
	WebURL              string `json:"webUrl"`
}

type Country string

const (
	Malaysia    Country = "Malaysia"
	Singapore   Country = "Singapore"
	Indonesia   Country = "Indonesia"
	Thailand    Country = "Thailand"
	Philippines Country = "Philippines"
	HongKong    Country = "Hong Kong"
	SouthKorea  Country = "South Korea"
	China       Country = "China"
	Cambodia    Country = "Cambodia"
)

type CountryApps struct {
	Country Country      `json:"country"`
	Apps    []PaymentApp `json:"apps"`
	// Flag hides the country unless it is enabled.
	Flag flags.Flag `json:"flag,omitempty"`
}

// Catalogue is the wallet app list behind the Touch 'n Go view.
type Catalogue struct {
	Primary   PaymentApp    `json:"primary"`
	Countries []CountryApps `json:"countries"`
}

// ParseCatalogue decodes a catalogue from JSON, as set in WALLET_CATALOGUE_JSON.
func ParseCatalogue(raw string) (Catalogue, error) {
	var cat Catalogue
	if err := json.Unmarshal([]byte(raw), &cat); err != nil {
		return Catalogue{}, fmt.Errorf("%w: %v", ErrCatalogueInvalid, err)
	}
	if cat.Primary.Name == "" {
		return Catalogue{}, fmt.Errorf("%w: primary sem nome", ErrCatalogueInvalid)
	}
	for _, c := range cat.Countries {
		if c.Country == "" {
			return Catalogue{}, fmt.Errorf("%w: pais sem nome", ErrCatalogueInvalid)
		}
	}
	return cat, nil
}

func (c Catalogue) IsZero() bool {
	return c.Primary.Name == "" && len(c.Countries) == 0
}

type Device string

const (
	Desktop Device = "desktop"
	Mobile  Device = "mobile"
	Tablet  Device = "tablet"
)

func playStore(pkg string) string {
	return "https://play.google.com/store/apps/details?id=" + pkg
}

var touchNGo = PaymentApp{
	Name:                "Touch 'n Go eWallet",
	AppURL:              "tngdwallet://",
	Icon:                "/images/wallets/tng.png",
	IOSAppStoreURL:      "https://www.touchngo.com.my/ewallet/",
	AndroidPlayStoreURL: playStore("my.com.tngdigital.ewallet"),
	WebURL:              "https://www.touchngo.com.my/ewallet/",
}

// DefaultCatalogue is sample data used when WALLET_CATALOGUE_JSON is unset.
// Deep links and store pages are placeholders to be replaced per deployment.
func DefaultCatalogue() Catalogue {
	countries := make([]CountryApps, 0, len(sampleCountries))
	countries = append(countries, sampleCountries...)
	return Catalogue{Primary: touchNGo, Countries: countries}
}

var sampleCountries = []CountryApps{
	{Country: Malaysia, Apps: []PaymentApp{touchNGo}},
	{Country: Singapore, Apps: []PaymentApp{{
		Name:                "GrabPay",
		AppURL:              "grab://",
		Icon:                "/images/wallets/grabpay.png",
		IOSAppStoreURL:      "https://www.grab.com/sg/pay/",
		AndroidPlayStoreURL: playStore("com.grabtaxi.passenger"),
		WebURL:              "https://www.grab.com/sg/pay/",
	}}},
	{Country: Indonesia, Apps: []PaymentApp{{
		Name:                "DANA",
		AppURL:              "dana://",
		Icon:                "/images/wallets/dana.png",
		IOSAppStoreURL:      "https://www.dana.id/",
		AndroidPlayStoreURL: playStore("id.dana"),
		WebURL:              "https://www.dana.id/",
	}}},
	{Country: Thailand, Apps: []PaymentApp{{
		Name:                "TrueMoney",
		AppURL:              "ascendmoney://",
		Icon:                "/images/wallets/truemoney.png",
		IOSAppStoreURL:      "https://www.truemoney.com/",
		AndroidPlayStoreURL: playStore("th.co.truemoney.wallet"),
		WebURL:              "https://www.truemoney.com/",
	}}},
	{Country: Philippines, Apps: []PaymentApp{{
		Name:                "GCash",
		AppURL:              "gcash://",
		Icon:                "/images/wallets/gcash.png",
		IOSAppStoreURL:      "https://www.gcash.com/",
		AndroidPlayStoreURL: playStore("com.globe.gcash.android"),
		WebURL:              "https://www.gcash.com/",
	}}},
	{Country: HongKong, Apps: []PaymentApp{{
		Name:                "AlipayHK",
		AppURL:              "alipayhk://",
		Icon:                "/images/wallets/alipayhk.png",
		IOSAppStoreURL:      "https://www.alipayhk.com/",
		AndroidPlayStoreURL: playStore("hk.alipay.wallet"),
		WebURL:              "https://www.alipayhk.com/",
	}}},
	{Country: SouthKorea, Apps: []PaymentApp{{
		Name:                "KakaoPay",
		AppURL:              "kakaotalk://kakaopay/home",
		Icon:                "/images/wallets/kakaopay.png",
		IOSAppStoreURL:      "https://www.kakaopay.com/",
		AndroidPlayStoreURL: playStore("com.kakaopay.app"),
		WebURL:              "https://www.kakaopay.com/",
	}}},
	{Country: China, Apps: []PaymentApp{{
		Name:                "Alipay",
		AppURL:              "alipays://",
		IOSAppURL:           "alipay://",
		AndroidAppURL:       "alipays://platformapi/startapp",
		Icon:                "/images/wallets/alipay.png",
		IOSAppStoreURL:      "https://global.alipay.com/",
		AndroidPlayStoreURL: playStore("com.eg.android.AlipayGphone"),
		WebURL:              "https://global.alipay.com/",
	}}},
	{Country: Cambodia, Flag: flags.CambodianPaymentApps, Apps: []PaymentApp{{
		Name:                "ABA Mobile",
		AppURL:              "abamobilebank://",
		Icon:                "/images/wallets/aba.png",
		IOSAppStoreURL:      "https://www.ababank.com/",
		AndroidPlayStoreURL: playStore("com.paygo24.ibank"),
		WebURL:              "https://www.ababank.com/",
	}}},
}

type Wallet struct {
	Primary   PaymentApp    `json:"primary"`
	Countries []CountryApps `json:"countries"`
}

// NewWallet builds the Touch 'n Go view. Countries carrying a flag are
// listed only when that flag is on.
func NewWallet(cat Catalogue, ff flags.FeatureFlags) *Wallet {
	countries := make([]CountryApps, 0, len(cat.Countries))
	for _, c := range cat.Countries {
		if c.Flag != "" && (ff == nil || !ff.Enabled(c.Flag)) {
			continue
		}
		countries = append(countries, c)
	}
	return &Wallet{Primary: cat.Primary, Countries: countries}
}

func (w *Wallet) Method() Method {
	return TNGEWallet
}

func (w *Wallet) Apps(country Country) []PaymentApp {
	for _, c := range w.Countries {
		if c.Country == country {
			return c.Apps
		}
	}
	return nil
}

func DetectDevice(userAgent string) Device {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "ipad"), strings.Contains(ua, "tablet"),
		strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		return Tablet
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipod"),
		strings.Contains(ua, "android"), strings.Contains(ua, "mobi"):
		return Mobile
	default:
		return Desktop
	}
}

func isIOS(ua string) bool {
	ua = strings.ToLower(ua)
	return strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad") || strings.Contains(ua, "ipod")
}

func isAndroid(ua string) bool {
	return strings.Contains(strings.ToLower(ua), "android")
}

// Link returns the URL that opens the app on the donor's device. Desktops
// get the web page; phones and tablets get the platform deep link.
func Link(app PaymentApp, userAgent string) string {
	if DetectDevice(userAgent) == Desktop {
		return app.WebURL
	}
	switch {
	case isIOS(userAgent) && app.IOSAppURL != "":
		return app.IOSAppURL
	case isAndroid(userAgent) && app.AndroidAppURL != "":
		return app.AndroidAppURL
	case app.AppURL != "":
		return app.AppURL
	default:
		return app.WebURL
	}
}

// StoreLink is where to install the app when the deep link does not open.
func StoreLink(app PaymentApp, userAgent string) string {
	switch {
	case isIOS(userAgent):
		return app.IOSAppStoreURL
	case isAndroid(userAgent):
		return app.AndroidPlayStoreURL
	default:
		return app.WebURL
	}
}
