package lcp

import (
	"strings"
)

// Currency is an ISO 4217 code accepted for numeric currency fields.
type Currency string

const (
	CurrencyAUD Currency = "AUD"
	CurrencyBRL Currency = "BRL"
	CurrencyCAD Currency = "CAD"
	CurrencyCHF Currency = "CHF"
	CurrencyCNY Currency = "CNY"
	CurrencyCZK Currency = "CZK"
	CurrencyDKK Currency = "DKK"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyHKD Currency = "HKD"
	CurrencyHUF Currency = "HUF"
	CurrencyIDR Currency = "IDR"
	CurrencyILS Currency = "ILS"
	CurrencyINR Currency = "INR"
	CurrencyJPY Currency = "JPY"
	CurrencyKRW Currency = "KRW"
	CurrencyMXN Currency = "MXN"
	CurrencyMYR Currency = "MYR"
	CurrencyNOK Currency = "NOK"
	CurrencyNZD Currency = "NZD"
	CurrencyPHP Currency = "PHP"
	CurrencyPLN Currency = "PLN"
	CurrencySEK Currency = "SEK"
	CurrencySGD Currency = "SGD"
	CurrencyTHB Currency = "THB"
	CurrencyTRY Currency = "TRY"
	CurrencyTWD Currency = "TWD"
	CurrencyUSD Currency = "USD"
	CurrencyZAR Currency = "ZAR"
)

var validCurrencies = map[Currency]struct{}{
	CurrencyAUD: {}, CurrencyBRL: {}, CurrencyCAD: {}, CurrencyCHF: {}, CurrencyCNY: {},
	CurrencyCZK: {}, CurrencyDKK: {}, CurrencyEUR: {}, CurrencyGBP: {}, CurrencyHKD: {},
	CurrencyHUF: {}, CurrencyIDR: {}, CurrencyILS: {}, CurrencyINR: {}, CurrencyJPY: {},
	CurrencyKRW: {}, CurrencyMXN: {}, CurrencyMYR: {}, CurrencyNOK: {}, CurrencyNZD: {},
	CurrencyPHP: {}, CurrencyPLN: {}, CurrencySEK: {}, CurrencySGD: {}, CurrencyTHB: {},
	CurrencyTRY: {}, CurrencyTWD: {}, CurrencyUSD: {}, CurrencyZAR: {},
}

// Valid reports whether c is a supported currency code.
func (c Currency) Valid() bool {
	_, ok := validCurrencies[c]

	return ok
}

// ParseCurrency normalizes s to upper case and validates it.
func ParseCurrency(s string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))

	return c, c.Valid()
}
