package rules

import "github.com/shopspring/decimal"

// LineItem is anything priced per unit: order lines and purchase lines.
type LineItem interface {
	LineQuantity() int
	LineUnitPrice() decimal.Decimal
}

// LineTotal is quantity × unit price.
func LineTotal(l LineItem) decimal.Decimal {
	return l.LineUnitPrice().Mul(decimal.NewFromInt(int64(l.LineQuantity())))
}

// ComputeTotal sums LineTotal over items. Totals are never cached;
// call this again after any line changes.
func ComputeTotal[L LineItem](items []L) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item))
	}
	return total
}

// TotalQuantity sums the quantities of items.
func TotalQuantity[L LineItem](items []L) int {
	n := 0
	for _, item := range items {
		n += item.LineQuantity()
	}
	return n
}
