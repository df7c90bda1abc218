package model

import "errors"

var (
	// ErrInvalidAmount rejects input before any rates are fetched.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUpstreamUnavailable covers transport failures and non-2xx responses.
	ErrUpstreamUnavailable = errors.New("exchange rate provider unavailable")
	// ErrMalformedRates means the provider answered but the body was unusable.
	ErrMalformedRates = errors.New("malformed exchange rate response")
	// ErrCurrencyNotFound means a requested code has no usable rate in the snapshot.
	ErrCurrencyNotFound = errors.New("currency not found in exchange rates")
)
