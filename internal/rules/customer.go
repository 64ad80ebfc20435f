package rules

import (
	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/models"
)

// Customer insight tags, in the order they are evaluated.
const (
	InsightLoyal                = "loyal"
	InsightHighValue            = "high-value"
	InsightRetentionOpportunity = "retention-opportunity"
)

// InsightThresholds configures when a customer earns the loyal and high-value tags.
type InsightThresholds struct {
	LoyalOrders      int             `yaml:"loyal_orders" json:"loyal_orders"`
	HighValueAverage decimal.Decimal `yaml:"high_value_average" json:"high_value_average"`
}

// DefaultInsightThresholds: loyal from 20 orders, high value above $20 per order.
var DefaultInsightThresholds = InsightThresholds{
	LoyalOrders:      20,
	HighValueAverage: decimal.NewFromInt(20),
}

// AverageOrder is totalSpent/totalOrders rounded to cents for display, or
// zero without orders. Insights compare the unrounded average.
func AverageOrder(c models.Customer) decimal.Decimal {
	if c.TotalOrders <= 0 {
		return decimal.Zero
	}
	return c.TotalSpent.Div(decimal.NewFromInt(int64(c.TotalOrders))).Round(2)
}

// Insights returns the tags that apply to c. Each tag is independent.
func (t InsightThresholds) Insights(c models.Customer) []string {
	insights := []string{}
	if c.TotalOrders >= t.LoyalOrders {
		insights = append(insights, InsightLoyal)
	}
	if c.TotalOrders > 0 && c.TotalSpent.Div(decimal.NewFromInt(int64(c.TotalOrders))).GreaterThan(t.HighValueAverage) {
		insights = append(insights, InsightHighValue)
	}
	if c.Type == models.CustomerTypeNew {
		insights = append(insights, InsightRetentionOpportunity)
	}
	return insights
}

// CustomerInsights applies DefaultInsightThresholds.
func CustomerInsights(c models.Customer) []string {
	return DefaultInsightThresholds.Insights(c)
}
