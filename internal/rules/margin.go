// Package rules derives business facts from domain records. Every function
// is pure: it reads its arguments and returns a value, nothing else.
package rules

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when an argument makes a rule undefined,
// e.g. a non-positive price in a margin calculation.
var ErrInvalidInput = errors.New("invalid input")

var hundred = decimal.NewFromInt(100)

// MarginTier buckets a margin percentage for display.
type MarginTier string

const (
	MarginHigh   MarginTier = "high"
	MarginMedium MarginTier = "medium"
	MarginLow    MarginTier = "low"
)

// MarginCutoffs are the inclusive lower bounds of the high and medium tiers.
type MarginCutoffs struct {
	High   decimal.Decimal `yaml:"high" json:"high"`
	Medium decimal.Decimal `yaml:"medium" json:"medium"`
}

// DefaultMarginCutoffs: high from 70%, medium from 50%.
var DefaultMarginCutoffs = MarginCutoffs{
	High:   decimal.NewFromInt(70),
	Medium: decimal.NewFromInt(50),
}

// ComputeMargin returns ((price-cost)/price)*100 rounded to one decimal.
// It does not clamp: a cost above price yields a negative margin.
func ComputeMargin(price, cost decimal.Decimal) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: price must be greater than zero, got %s", ErrInvalidInput, price.String())
	}
	return price.Sub(cost).Div(price).Mul(hundred).Round(1), nil
}

// Tier classifies margin against the cutoffs.
func (c MarginCutoffs) Tier(margin decimal.Decimal) MarginTier {
	switch {
	case margin.GreaterThanOrEqual(c.High):
		return MarginHigh
	case margin.GreaterThanOrEqual(c.Medium):
		return MarginMedium
	default:
		return MarginLow
	}
}

// TierForMargin classifies margin with DefaultMarginCutoffs.
func TierForMargin(margin decimal.Decimal) MarginTier {
	return DefaultMarginCutoffs.Tier(margin)
}

// AverageMargin is the mean of the items' margins, rounded to one decimal.
// Items with a non-positive price are skipped; an empty input yields zero.
func AverageMargin(prices, costs []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	n := 0
	for i := range prices {
		if i >= len(costs) {
			break
		}
		m, err := ComputeMargin(prices[i], costs[i])
		if err != nil {
			continue
		}
		sum = sum.Add(m)
		n++
	}
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(1)
}
