// Package format renders amounts and dates the way the dashboard displays
// them (en-GB conventions).
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ErrUnknownCurrency is returned for a code outside the supported set.
var ErrUnknownCurrency = errors.New("unknown currency")

// Currency describes how one ISO 4217 code is displayed.
type Currency struct {
	Code     string
	Symbol   string
	Decimals int32
}

// currencies lists the codes offered for exchange rates. Symbols follow en-GB
// display; codes without a local symbol are prefixed with the code itself.
var currencies = map[string]Currency{
	"GBP": {"GBP", "£", 2},
	"USD": {"USD", "US$", 2},
	"EUR": {"EUR", "€", 2},
	"AUD": {"AUD", "A$", 2},
	"CAD": {"CAD", "CA$", 2},
	"NZD": {"NZD", "NZ$", 2},
	"CHF": {"CHF", "CHF ", 2},
	"JPY": {"JPY", "JP¥", 0},
	"CNY": {"CNY", "CN¥", 2},
	"HKD": {"HKD", "HK$", 2},
	"SGD": {"SGD", "SGD ", 2},
	"SEK": {"SEK", "SEK ", 2},
	"NOK": {"NOK", "NOK ", 2},
	"DKK": {"DKK", "DKK ", 2},
	"ZAR": {"ZAR", "ZAR ", 2},
	"INR": {"INR", "₹", 2},
	"BRL": {"BRL", "R$", 2},
	"MXN": {"MXN", "MX$", 2},
	"PLN": {"PLN", "PLN ", 2},
	"CZK": {"CZK", "CZK ", 2},
	"HUF": {"HUF", "HUF ", 2},
	"RON": {"RON", "RON ", 2},
	"BGN": {"BGN", "BGN ", 2},
	"HRK": {"HRK", "HRK ", 2},
	"ISK": {"ISK", "ISK ", 0},
	"TRY": {"TRY", "TRY ", 2},
	"AED": {"AED", "AED ", 2},
	"SAR": {"SAR", "SAR ", 2},
	"ILS": {"ILS", "₪", 2},
	"KRW": {"KRW", "₩", 0},
	"TWD": {"TWD", "NT$", 2},
	"THB": {"THB", "THB ", 2},
	"MYR": {"MYR", "MYR ", 2},
	"IDR": {"IDR", "IDR ", 2},
	"PHP": {"PHP", "₱", 2},
}

// LookupCurrency returns the display rules for code (case-insensitive).
func LookupCurrency(code string) (Currency, error) {
	c, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return c, nil
}

// IsCurrency reports whether code is a supported currency.
func IsCurrency(code string) bool {
	_, err := LookupCurrency(code)
	return err == nil
}

// Money renders amount in the currency's symbol and precision, e.g.
// "£1,234.50" or "-JP¥1,235". Amounts are rounded half away from zero.
func Money(amount decimal.Decimal, code string) (string, error) {
	c, err := LookupCurrency(code)
	if err != nil {
		return "", err
	}

	rounded := amount.Round(c.Decimals)
	fixed := rounded.Abs().StringFixed(c.Decimals)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(c.Symbol)
	b.WriteString(groupThousands(whole))
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String(), nil
}

// GBP renders amount in pounds sterling.
func GBP(amount decimal.Decimal) string {
	s, _ := Money(amount, "GBP")
	return s
}

func groupThousands(digits string) string {
	n, err := decimal.NewFromString(digits)
	if err != nil || !n.IsInteger() || len(digits) > 18 {
		return digits
	}
	return humanize.Comma(n.IntPart())
}
