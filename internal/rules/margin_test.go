package rules

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeMargin(t *testing.T) {
	tests := []struct {
		name        string
		price, cost string
		want        string
	}{
		{"pizza test", "10.00", "4.00", "60"},
		{"one third", "3", "1", "66.7"},
		{"cost above price", "10", "12", "-20"},
		{"zero cost", "8", "0", "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeMargin(dec(tt.price), dec(tt.cost))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ComputeMargin(%s, %s) = %s, want %s", tt.price, tt.cost, got, tt.want)
			}
		})
	}
}

func TestComputeMarginRejectsNonPositivePrice(t *testing.T) {
	for _, price := range []string{"0", "-5"} {
		if _, err := ComputeMargin(dec(price), dec("1")); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("price %s: got err %v, want ErrInvalidInput", price, err)
		}
	}
}

func TestTierForMarginBoundaries(t *testing.T) {
	tests := []struct {
		margin string
		want   MarginTier
	}{
		{"70.0", MarginHigh},
		{"69.9", MarginMedium},
		{"50.0", MarginMedium},
		{"49.9", MarginLow},
		{"95", MarginHigh},
		{"-10", MarginLow},
	}
	for _, tt := range tests {
		if got := TierForMargin(dec(tt.margin)); got != tt.want {
			t.Errorf("TierForMargin(%s) = %s, want %s", tt.margin, got, tt.want)
		}
	}
}

func TestMarginStaysInRangeAndTierIsMonotonic(t *testing.T) {
	rank := map[MarginTier]int{MarginHigh: 2, MarginMedium: 1, MarginLow: 0}
	price := dec("10")
	prev := MarginHigh
	for c := 1; c < 100; c++ {
		cost := decimal.NewFromInt(int64(c)).Div(decimal.NewFromInt(10))
		m, err := ComputeMargin(price, cost)
		if err != nil {
			t.Fatalf("cost %s: %v", cost, err)
		}
		if !m.IsPositive() || !m.LessThan(hundred) {
			t.Fatalf("cost %s: margin %s out of (0,100)", cost, m)
		}
		tier := TierForMargin(m)
		if rank[tier] > rank[prev] {
			t.Fatalf("cost %s: tier rose from %s to %s", cost, prev, tier)
		}
		prev = tier
	}
}

func TestMarginCutoffsCustom(t *testing.T) {
	c := MarginCutoffs{High: dec("60"), Medium: dec("30")}
	if got := c.Tier(dec("60")); got != MarginHigh {
		t.Errorf("got %s, want high", got)
	}
	if got := c.Tier(dec("29.9")); got != MarginLow {
		t.Errorf("got %s, want low", got)
	}
}

func TestAverageMargin(t *testing.T) {
	prices := []decimal.Decimal{dec("10"), dec("20"), dec("0")}
	costs := []decimal.Decimal{dec("4"), dec("5"), dec("1")}
	// 60 and 75; the zero price is skipped
	if got := AverageMargin(prices, costs); !got.Equal(dec("67.5")) {
		t.Errorf("AverageMargin = %s, want 67.5", got)
	}
	if got := AverageMargin(nil, nil); !got.IsZero() {
		t.Errorf("empty AverageMargin = %s, want 0", got)
	}
}
