package model

import (
	"math"
)

// RateSnapshot maps currency codes to their value relative to BaseCurrency.
// A snapshot is replaced wholesale and never modified once stored.
type RateSnapshot map[Currency]float64

// Rate reports the base-relative rate for c. Zero, negative and non-finite
// values are reported as missing.
func (s RateSnapshot) Rate(c Currency) (float64, bool) {
	rate, ok := s[c]
	if !ok || rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, false
	}
	return rate, true
}

func (s RateSnapshot) Clone() RateSnapshot {
	out := make(RateSnapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

type ConversionRequest struct {
	FromCurrency Currency `json:"from_currency"`
	ToCurrency   Currency `json:"to_currency"`
	Amount       float64  `json:"amount"`
}

type ConversionResult struct {
	FromCurrency    Currency `json:"from_currency"`
	ToCurrency      Currency `json:"to_currency"`
	Amount          float64  `json:"amount"`
	ConvertedAmount float64  `json:"converted_amount"`
	Rate            float64  `json:"rate"`
}

type LatestRates struct {
	Base  Currency     `json:"base"`
	Rates RateSnapshot `json:"rates"`
}
