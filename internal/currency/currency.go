package currency

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 code. Only the currencies the registers are
// configured for are supported.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
)

var symbols = map[Currency]string{
	USD: "$",
	EUR: "€",
	GBP: "£",
}

// Symbol returns the display symbol for a currency, falling back to the
// code itself for anything unknown.
func Symbol(c Currency) string {
	if s, ok := symbols[c]; ok {
		return s
	}
	return string(c)
}

var localeDefaults = map[string]Currency{
	"lt":    EUR,
	"en-gb": GBP,
	"gb":    GBP,
	"en":    GBP,
	"us":    USD,
}

// DefaultCurrencyForLocale maps a language tag to the currency a register
// should start with. Unknown locales default to USD.
func DefaultCurrencyForLocale(lang string) Currency {
	code := strings.ToLower(strings.TrimSpace(lang))
	if c, ok := localeDefaults[code]; ok {
		return c
	}
	base, _, _ := strings.Cut(code, "-")
	if c, ok := localeDefaults[base]; ok {
		return c
	}
	return USD
}

// Formatter renders integer cents as human-readable price strings for one
// currency/locale pairing.
type Formatter struct {
	currency Currency
	locale   string
}

func NewFormatter(c Currency, locale string) *Formatter {
	return &Formatter{currency: c, locale: locale}
}

func (f *Formatter) Currency() Currency {
	return f.currency
}

func (f *Formatter) SetCurrency(c Currency) {
	f.currency = c
}

// FormatPrice renders an amount of cents with two decimals and the currency
// symbol. Lithuanian EUR prices use a comma decimal separator and a trailing
// symbol; everything else is symbol-first with a dot.
func (f *Formatter) FormatPrice(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	amount := fmt.Sprintf("%d.%02d", cents/100, cents%100)
	if neg {
		amount = "-" + amount
	}

	symbol := Symbol(f.currency)
	if f.currency == EUR && strings.HasPrefix(strings.ToLower(f.locale), "lt") {
		return strings.Replace(amount, ".", ",", 1) + " " + symbol
	}
	return symbol + amount
}
