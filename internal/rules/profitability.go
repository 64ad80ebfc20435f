package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/models"
)

var commissionRates = map[models.Platform]decimal.Decimal{
	models.PlatformUberEats:  decimal.RequireFromString("0.30"),
	models.PlatformPedidosYa: decimal.RequireFromString("0.28"),
	models.PlatformBis:       decimal.RequireFromString("0.25"),
}

// CommissionRate is the fraction of revenue a delivery platform keeps.
// Direct channels pay no commission.
func CommissionRate(p models.Platform) decimal.Decimal {
	if r, ok := commissionRates[p]; ok {
		return r
	}
	return decimal.Zero
}

// Commission is revenue × CommissionRate(p), rounded to cents.
func Commission(p models.Platform, revenue decimal.Decimal) decimal.Decimal {
	return revenue.Mul(CommissionRate(p)).Round(2)
}

// PackagingCost estimates packaging for an order by its unit count.
func PackagingCost(units int) decimal.Decimal {
	switch {
	case units <= 2:
		return decimal.RequireFromString("0.15")
	case units <= 4:
		return decimal.RequireFromString("0.20")
	default:
		return decimal.RequireFromString("0.25")
	}
}

// Profitability breaks an order total down into costs and profit.
type Profitability struct {
	Revenue        decimal.Decimal `json:"revenue"`
	IngredientCost decimal.Decimal `json:"ingredient_cost"`
	PackagingCost  decimal.Decimal `json:"packaging_cost"`
	Commission     decimal.Decimal `json:"commission"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	ProfitMargin   decimal.Decimal `json:"profit_margin"`
}

// OrderProfitability costs an order. unitCost looks up the ingredient cost of
// a menu item by name; unknown items count as zero cost.
func OrderProfitability(o models.Order, unitCost func(name string) (decimal.Decimal, bool)) Profitability {
	revenue := ComputeTotal(o.Items)
	ingredients := decimal.Zero
	for _, line := range o.Items {
		if c, ok := unitCost(line.Name); ok {
			ingredients = ingredients.Add(c.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}
	packaging := PackagingCost(TotalQuantity(o.Items))
	commission := Commission(o.Platform, revenue)
	net := revenue.Sub(ingredients).Sub(packaging).Sub(commission)

	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = net.Div(revenue).Mul(hundred).Round(1)
	}
	return Profitability{
		Revenue:        revenue,
		IngredientCost: ingredients,
		PackagingCost:  packaging,
		Commission:     commission,
		NetProfit:      net.Round(2),
		ProfitMargin:   margin,
	}
}

// OptimalPrice is the price that yields targetMargin (a fraction in [0,1))
// over cost, rounded to cents.
func OptimalPrice(cost, targetMargin decimal.Decimal) (decimal.Decimal, error) {
	if targetMargin.IsNegative() || targetMargin.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("%w: target margin must be in [0,1), got %s", ErrInvalidInput, targetMargin.String())
	}
	return cost.Div(decimal.NewFromInt(1).Sub(targetMargin)).Round(2), nil
}

// BreakEvenQuantity is the number of units needed to cover fixedCosts.
func BreakEvenQuantity(fixedCosts, price, variableCost decimal.Decimal) (int, error) {
	contribution := price.Sub(variableCost)
	if !contribution.IsPositive() {
		return 0, fmt.Errorf("%w: price must exceed variable cost", ErrInvalidInput)
	}
	return int(fixedCosts.Div(contribution).Ceil().IntPart()), nil
}

// ReorderUrgency ranks a reorder suggestion.
type ReorderUrgency string

const (
	UrgencyHigh   ReorderUrgency = "high"
	UrgencyNormal ReorderUrgency = "normal"
)

// safetyFactor inflates lead-time demand to absorb usage spikes.
var safetyFactor = decimal.RequireFromString("1.5")

// Reorder is a purchasing suggestion for one inventory item.
type Reorder struct {
	ItemID            string          `json:"item_id"`
	ItemName          string          `json:"item_name"`
	CurrentStock      int             `json:"current_stock"`
	SafetyStock       int             `json:"safety_stock"`
	ReorderPoint      int             `json:"reorder_point"`
	SuggestedQuantity int             `json:"suggested_quantity"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
	Urgency           ReorderUrgency  `json:"urgency"`
}

// ReorderSuggestion sizes a restock for item given its average daily usage
// and the supplier lead time in days. The item should be reordered when
// ShouldReorder reports true.
func ReorderSuggestion(item models.InventoryItem, dailyUsage decimal.Decimal, leadTimeDays int) Reorder {
	lead := decimal.NewFromInt(int64(leadTimeDays))
	safety := int(dailyUsage.Mul(lead).Mul(safetyFactor).Ceil().IntPart())
	reorderPoint := int(dailyUsage.Mul(lead).Ceil().IntPart()) + safety
	if reorderPoint < item.MinStock {
		reorderPoint = item.MinStock
	}
	qty := item.MaxStock - item.CurrentStock
	if qty < 0 {
		qty = 0
	}
	urgency := UrgencyNormal
	if InventoryStatus(item).NeedsAttention() {
		urgency = UrgencyHigh
	}
	return Reorder{
		ItemID:            item.ID,
		ItemName:          item.Name,
		CurrentStock:      item.CurrentStock,
		SafetyStock:       safety,
		ReorderPoint:      reorderPoint,
		SuggestedQuantity: qty,
		EstimatedCost:     item.UnitCost.Mul(decimal.NewFromInt(int64(qty))).Round(2),
		Urgency:           urgency,
	}
}

// ShouldReorder reports whether stock has fallen to the reorder point.
func (r Reorder) ShouldReorder() bool {
	return r.SuggestedQuantity > 0 && r.CurrentStock <= r.ReorderPoint
}
