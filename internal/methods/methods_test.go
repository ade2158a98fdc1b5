package methods

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DONATION_CHECKOUT_GO/internal/config"
	"DONATION_CHECKOUT_GO/internal/flags"
)

type mockGetObject struct {
	GetObjectFunc func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func (m *mockGetObject) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.GetObjectFunc(ctx, params, optFns...)
}

func TestParseMethod(t *testing.T) {
	m, ok := Parse("duitnow-qr")
	assert.True(t, ok)
	assert.Equal(t, DuitNowQR, m)

	_, ok = Parse("paypal")
	assert.False(t, ok)
}

func TestBankTransferFromConfig(t *testing.T) {
	view := NewBankTransfer(config.BankTransfer{
		AccountHolder: "Jane Doe",
		BankName:      "Maybank",
		AccountNumber: "1234567890",
		DuitNowID:     "0123456789",
	})
	assert.Equal(t, DuitNowTransfer, view.Method())
	assert.Equal(t, "Maybank", view.BankName)
	assert.Equal(t, "1234567890", view.AccountNumber)
}

func TestQRDownloadFromS3(t *testing.T) {
	var gotBucket, gotKey string
	client := &mockGetObject{
		GetObjectFunc: func(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			gotBucket = aws.ToString(params.Bucket)
			gotKey = aws.ToString(params.Key)
			return &s3.GetObjectOutput{
				Body:        io.NopCloser(strings.NewReader("png-bytes")),
				ContentType: aws.String("image/png"),
			}, nil
		},
	}

	qr := NewQR("", "", S3Source{Client: client, Bucket: "assets", Key: "qr/duitnow.png"})
	assert.Equal(t, "image.png", qr.FileName)

	var buf bytes.Buffer
	contentType, err := qr.Download(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, "png-bytes", buf.String())
	assert.Equal(t, "assets", gotBucket)
	assert.Equal(t, "qr/duitnow.png", gotKey)
}

func TestQRDownloadS3Failure(t *testing.T) {
	client := &mockGetObject{
		GetObjectFunc: func(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			return nil, errors.New("access denied")
		},
	}
	qr := NewQR("", "qr.png", S3Source{Client: client, Bucket: "b", Key: "k"})

	_, err := qr.Download(context.Background(), io.Discard)
	assert.ErrorIs(t, err, ErrAssetUnavailable)
}

func TestQRDownloadOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/qr.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	qr := NewQR(srv.URL+"/qr.jpg", "duitnow.jpg", HTTPSource{Client: srv.Client(), URL: srv.URL + "/qr.jpg"})
	var buf bytes.Buffer
	contentType, err := qr.Download(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, "jpeg-bytes", buf.String())

	missing := NewQR("", "", HTTPSource{Client: srv.Client(), URL: srv.URL + "/missing"})
	_, err = missing.Download(context.Background(), io.Discard)
	assert.ErrorIs(t, err, ErrAssetUnavailable)
}

func TestQRWithoutSource(t *testing.T) {
	_, err := NewQR("", "", nil).Download(context.Background(), io.Discard)
	assert.ErrorIs(t, err, ErrAssetUnavailable)
}

func TestWalletCambodiaGated(t *testing.T) {
	off := NewWallet(DefaultCatalogue(), flags.Snapshot{})
	assert.Nil(t, off.Apps(Cambodia))
	assert.NotEmpty(t, off.Apps(Philippines))
	assert.Equal(t, "Touch 'n Go eWallet", off.Primary.Name)

	on := NewWallet(DefaultCatalogue(), flags.Snapshot{flags.CambodianPaymentApps: true})
	require.Len(t, on.Apps(Cambodia), 1)
	assert.Equal(t, "ABA Mobile", on.Apps(Cambodia)[0].Name)
	assert.Len(t, on.Countries, len(off.Countries)+1)
}

func TestParseCatalogue(t *testing.T) {
	cat, err := ParseCatalogue(`{
		"primary": {"name": "Touch 'n Go eWallet", "webUrl": "https://tng.example.com"},
		"countries": [
			{"country": "Philippines", "apps": [{"name": "GCash", "appUrl": "gcash://"}]},
			{"country": "Cambodia", "flag": "CAMBODIAN_PAYMENT_APPS", "apps": [{"name": "Bakong"}]}
		]
	}`)
	require.NoError(t, err)
	assert.False(t, cat.IsZero())

	wallet := NewWallet(cat, nil)
	assert.Equal(t, "https://tng.example.com", wallet.Primary.WebURL)
	require.Len(t, wallet.Countries, 1)
	assert.Equal(t, "gcash://", wallet.Apps(Philippines)[0].AppURL)

	gated := NewWallet(cat, flags.Snapshot{flags.CambodianPaymentApps: true})
	assert.Equal(t, "Bakong", gated.Apps(Cambodia)[0].Name)
}

func TestParseCatalogueRejectsBadInput(t *testing.T) {
	cases := []string{
		`not json`,
		`{"countries": []}`,
		`{"primary": {"name": "TNG"}, "countries": [{"apps": []}]}`,
	}
	for _, raw := range cases {
		_, err := ParseCatalogue(raw)
		assert.ErrorIs(t, err, ErrCatalogueInvalid, raw)
	}
}

func TestDetectDevice(t *testing.T) {
	cases := []struct {
		ua   string
		want Device
	}{
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0", Desktop},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148", Mobile},
		{"Mozilla/5.0 (Linux; Android 14; Pixel 8) Mobile Safari/537.36", Mobile},
		{"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)", Tablet},
		{"Mozilla/5.0 (Linux; Android 13; SM-X700) Safari/537.36", Tablet},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectDevice(tc.ua), tc.ua)
	}
}

func TestLink(t *testing.T) {
	alipay := PaymentApp{
		AppURL:              "alipays://",
		IOSAppURL:           "alipay://",
		AndroidAppURL:       "alipays://platformapi/startapp",
		IOSAppStoreURL:      "https://ios.example.com",
		AndroidPlayStoreURL: "https://play.example.com",
		WebURL:              "https://web.example.com",
	}

	assert.Equal(t, "https://web.example.com", Link(alipay, "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0)"))
	assert.Equal(t, "alipay://", Link(alipay, "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0) Mobile"))
	assert.Equal(t, "alipays://platformapi/startapp", Link(alipay, "Mozilla/5.0 (Linux; Android 14) Mobile"))

	plain := PaymentApp{AppURL: "gcash://", WebURL: "https://gcash.example.com"}
	assert.Equal(t, "gcash://", Link(plain, "Mozilla/5.0 (iPhone) Mobile"))

	assert.Equal(t, "https://ios.example.com", StoreLink(alipay, "Mozilla/5.0 (iPhone) Mobile"))
	assert.Equal(t, "https://play.example.com", StoreLink(alipay, "Mozilla/5.0 (Linux; Android 14) Mobile"))
	assert.Equal(t, "https://web.example.com", StoreLink(alipay, "Mozilla/5.0 (Windows NT 10.0)"))
}
