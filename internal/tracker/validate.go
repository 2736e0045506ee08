package tracker

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError carries the exact message to show the user inline.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

const invalidNumberMessage = "Number is invalid or input was not a number.\nExample: 500; 503.81\nNo Symbols."

// ParseAmount validates a user-supplied amount. The input is trimmed,
// must parse as a plain decimal number, and must be strictly positive.
// No currency symbols, no thousands separators, no upper bound.
func ParseAmount(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, &ValidationError{Message: "No input provided."}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &ValidationError{Message: invalidNumberMessage}
	}
	if !d.IsPositive() {
		return 0, &ValidationError{Message: "Value must be greater than 0."}
	}
	return d.InexactFloat64(), nil
}
