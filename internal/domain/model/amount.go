package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts raw user input into an amount, rejecting anything
// that is not a finite number >= 0.
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}

	if err := ValidateAmount(amount); err != nil {
		return 0, err
	}

	return amount, nil
}

func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: amount must be finite", ErrInvalidAmount)
	}
	if amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	}
	return nil
}
