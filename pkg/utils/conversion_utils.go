package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// StrToInt64 converts a string to an int64.
// Returns 0 and an error if the conversion fails.
func StrToInt64(s string) (int64, error) {
	num, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	return num, nil
}

// QueryInt parses an optional integer parameter, returning fallback when s is empty.
func QueryInt(s string, fallback int) (int, error) {
	if IsEmpty(s) {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return n, nil
}

// FormatMoney renders an amount with a $ prefix and two decimals: $27.50.
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// FormatPercent renders a percentage with one decimal and a % suffix: 60.0%.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// FormatPercentDecimal is FormatPercent for decimal percentages.
func FormatPercentDecimal(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}
