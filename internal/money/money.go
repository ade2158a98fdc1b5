package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrAmountInvalid = errors.New("amount invalido")

// Presets are the fixed donation amounts offered before the custom field, in MYR.
var Presets = []int64{10, 25, 50, 100}

var hundred = decimal.NewFromInt(100)

// Amount is a validated donation amount: positive, at most two decimal places.
type Amount struct {
	value    decimal.Decimal
	original string
	custom   bool
}

func Preset(value int64) (Amount, error) {
	for _, p := range Presets {
		if p == value {
			return Amount{value: decimal.NewFromInt(value), original: decimal.NewFromInt(value).String()}, nil
		}
	}
	return Amount{}, fmt.Errorf("%w: %d nao e um valor pre-definido", ErrAmountInvalid, value)
}

// Parse validates free-form amount text. Both "12.50" and "12,50" are accepted.
func Parse(raw string) (Amount, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Amount{}, fmt.Errorf("%w: amount vazio", ErrAmountInvalid)
	}
	if strings.Contains(value, ",") && strings.Contains(value, ".") {
		return Amount{}, fmt.Errorf("%w: use apenas um separador decimal", ErrAmountInvalid)
	}
	value = strings.ReplaceAll(value, ",", ".")

	intPart, fracPart := value, ""
	if strings.Contains(value, ".") {
		parts := strings.Split(value, ".")
		if len(parts) != 2 {
			return Amount{}, fmt.Errorf("%w: formato decimal invalido", ErrAmountInvalid)
		}
		intPart, fracPart = parts[0], parts[1]
	}
	if intPart == "" && fracPart == "" {
		return Amount{}, fmt.Errorf("%w: formato decimal invalido", ErrAmountInvalid)
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return Amount{}, fmt.Errorf("%w: valor deve conter apenas digitos", ErrAmountInvalid)
	}
	if len(fracPart) > 2 {
		return Amount{}, fmt.Errorf("%w: use no maximo 2 casas decimais", ErrAmountInvalid)
	}

	normalized := intPart
	if fracPart != "" {
		normalized += "." + fracPart
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: valor invalido", ErrAmountInvalid)
	}
	if !d.IsPositive() {
		return Amount{}, fmt.Errorf("%w: amount deve ser maior que zero", ErrAmountInvalid)
	}
	return Amount{value: d, original: normalized, custom: true}, nil
}

// ToMinorUnits converts a currency amount to cents, rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

func (a Amount) MinorUnits() int64 {
	return ToMinorUnits(a.value)
}

// Original is the amount as the donor chose it, sent along as intent metadata.
func (a Amount) Original() string {
	return a.original
}

func (a Amount) Custom() bool {
	return a.custom
}

func (a Amount) Float64() float64 {
	return a.value.InexactFloat64()
}

func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

// Label renders the amount the way the donate button shows it.
func (a Amount) Label() string {
	if !a.custom {
		return "RM" + a.value.String()
	}
	return "RM" + a.value.StringFixed(2)
}

func (a Amount) String() string {
	return a.value.String()
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
