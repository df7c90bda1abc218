package model

import "strings"

type Currency string

const (
	USD Currency = "USD"
	CNY Currency = "CNY"
	JPY Currency = "JPY"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	INR Currency = "INR"
)

// BaseCurrency is the currency every fetched rate is expressed against.
const BaseCurrency = USD

// CurrencyInfo is the presentation data for a currency.
type CurrencyInfo struct {
	Code   Currency `json:"code"`
	Name   string   `json:"name"`
	Symbol string   `json:"symbol"`
}

var currencyTable = map[Currency]CurrencyInfo{
	USD: {Code: USD, Name: "US Dollar", Symbol: "$"},
	CNY: {Code: CNY, Name: "Chinese Yuan", Symbol: "￥"},
	JPY: {Code: JPY, Name: "Japanese Yen", Symbol: "¥"},
	EUR: {Code: EUR, Name: "Euro", Symbol: "€"},
	GBP: {Code: GBP, Name: "British Pound", Symbol: "£"},
	INR: {Code: INR, Name: "Indian Rupee", Symbol: "₹"},
}

// DisplayCurrencies is the order currencies are offered in the UI.
var DisplayCurrencies = []Currency{CNY, USD, JPY, EUR, GBP, INR}

// ParseCurrency normalizes user input like " usd " to USD.
func ParseCurrency(s string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(s)))
}

// LookupCurrency returns the symbol table entry for c.
func LookupCurrency(c Currency) (CurrencyInfo, bool) {
	info, ok := currencyTable[c]
	return info, ok
}

// DisplayName falls back to the code for currencies outside the table.
func (c Currency) DisplayName() string {
	if info, ok := LookupCurrency(c); ok {
		return info.Name
	}
	return string(c)
}

func (c Currency) String() string {
	return string(c)
}

// KnownCurrencies returns the symbol table in display order.
func KnownCurrencies() []CurrencyInfo {
	out := make([]CurrencyInfo, 0, len(DisplayCurrencies))
	for _, c := range DisplayCurrencies {
		out = append(out, currencyTable[c])
	}
	return out
}
