package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Violations maps field names to short machine-readable reason codes.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Error carries field violations back to the caller. Nothing is persisted
// when an Error is returned.
type Error struct {
	Violations Violations
}

func (e *Error) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for field, reason := range e.Violations {
		parts = append(parts, field+": "+reason)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NewError wraps non-empty violations; returns nil when there is nothing to report.
func NewError(v Violations) error {
	if v.Empty() {
		return nil
	}
	return &Error{Violations: v}
}

// Errorf builds a single-field Error.
func Errorf(field, format string, args ...any) error {
	return &Error{Violations: Violations{field: fmt.Sprintf(format, args...)}}
}

// Basic validators

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveDecimal(field string, val decimal.Decimal, v Violations) {
	if val.LessThanOrEqual(decimal.Zero) {
		v[field] = "must_be_positive"
	}
}

func NonNegativeDecimal(field string, val decimal.Decimal, v Violations) {
	if val.IsNegative() {
		v[field] = "must_not_be_negative"
	}
}

func NonNegativeInt(field string, val int, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func MinInt(field string, val, minVal int, v Violations) {
	if val < minVal {
		v[field] = "below_minimum"
	}
}
