// Package methods holds the views behind each donation method. The wallet
// app entries shipped in DefaultCatalogue are sample data; deployments set
// WALLET_CATALOGUE_JSON with their own list.
package methods

import "DONATION_CHECKOUT_GO/internal/config"

type Method string

const (
	DuitNowTransfer Method = "duitnow-transfer"
	DuitNowQR       Method = "duitnow-qr"
	TNGEWallet      Method = "tng-ewallet"
	Stripe          Method = "stripe"
)

// All is the closed set of payment methods, in display order.
var All = []Method{DuitNowTransfer, DuitNowQR, TNGEWallet, Stripe}

func Parse(raw string) (Method, bool) {
	for _, m := range All {
		if string(m) == raw {
			return m, true
		}
	}
	return "", false
}

type Option struct {
	Method      Method `json:"method"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var options = map[Method]Option{
	DuitNowTransfer: {Method: DuitNowTransfer, Title: "DuitNow Transfer", Description: "Transfer directly to my bank account"},
	DuitNowQR:       {Method: DuitNowQR, Title: "DuitNow QR", Description: "Scan QR code with your banking app"},
	TNGEWallet:      {Method: TNGEWallet, Title: "Touch 'n Go eWallet", Description: "Pay via Touch 'n Go eWallet"},
	Stripe:          {Method: Stripe, Title: "Card / FPX / GrabPay / Wallets", Description: "Credit/Debit Cards, Online Banking, Apple Pay, Google Pay"},
}

func OptionFor(m Method) Option {
	return options[m]
}

// View is the state behind one selected payment method.
type View interface {
	Method() Method
}

type BankTransfer struct {
	AccountHolder string `json:"accountHolder"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	DuitNowID     string `json:"duitNowId,omitempty"`
}

func NewBankTransfer(cfg config.BankTransfer) *BankTransfer {
	return &BankTransfer{
		AccountHolder: cfg.AccountHolder,
		BankName:      cfg.BankName,
		AccountNumber: cfg.AccountNumber,
		DuitNowID:     cfg.DuitNowID,
	}
}

func (b *BankTransfer) Method() Method {
	return DuitNowTransfer
}
