package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodBucket aggregates orders for one slice of a report period
// (an hour, a day or a week depending on the report).
type PeriodBucket struct {
	Label   string          `json:"label"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// PlatformBreakdown aggregates orders per sales channel.
type PlatformBreakdown struct {
	Platform          Platform        `json:"platform"`
	Orders            int             `json:"orders"`
	Revenue           decimal.Decimal `json:"revenue"`
	Commission        decimal.Decimal `json:"commission"`
	NetRevenue        decimal.Decimal `json:"net_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// TopItem is a menu item ranked by units sold.
type TopItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// OrderValueStats summarises the distribution of order totals.
type OrderValueStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	Max    float64 `json:"max"`
}

// SalesReport covers every non-cancelled order created in [PeriodStart, PeriodEnd).
type SalesReport struct {
	Kind              string              `json:"kind"` // daily, weekly, monthly
	PeriodStart       time.Time           `json:"period_start"`
	PeriodEnd         time.Time           `json:"period_end"`
	TotalOrders       int                 `json:"total_orders"`
	TotalRevenue      decimal.Decimal     `json:"total_revenue"`
	TotalCommission   decimal.Decimal     `json:"total_commission"`
	NetRevenue        decimal.Decimal     `json:"net_revenue"`
	AverageOrderValue decimal.Decimal     `json:"average_order_value"`
	ValueStats        OrderValueStats     `json:"value_stats"`
	Platforms         []PlatformBreakdown `json:"platforms"`
	Breakdown         []PeriodBucket      `json:"breakdown"`
	TopItems          []TopItem           `json:"top_items"`
}

// InventoryReportItem represents one row of the inventory report.
type InventoryReportItem struct {
	ItemID          string            `json:"item_id"`
	ItemName        string            `json:"item_name"`
	Category        InventoryCategory `json:"category"`
	CurrentStock    int               `json:"current_stock"`
	MinStock        int               `json:"min_stock"`
	MaxStock        int               `json:"max_stock"`
	Unit            InventoryUnit     `json:"unit"`
	StockPercentage float64           `json:"stock_percentage"`
	Status          string            `json:"status"`
	ExpiryState     string            `json:"expiry_state"`
	TotalValue      decimal.Decimal   `json:"total_value"`
}

// InventoryReport lists every stock item as of a given day.
type InventoryReport struct {
	AsOf          Date                  `json:"as_of"`
	Items         []InventoryReportItem `json:"items"`
	TotalValue    decimal.Decimal       `json:"total_value"`
	LowStockCount int                   `json:"low_stock_count"`
	OutOfStock    int                   `json:"out_of_stock_count"`
	ExpiringSoon  int                   `json:"expiring_soon_count"`
	Expired       int                   `json:"expired_count"`
}

// ForecastPoint is one projected day of revenue.
type ForecastPoint struct {
	Date             Date    `json:"date"`
	PredictedRevenue float64 `json:"predicted_revenue"`
}

// SalesForecast projects daily revenue from a linear trend over recent history.
type SalesForecast struct {
	HistoryDays int             `json:"history_days"`
	Slope       float64         `json:"slope"`
	Points      []ForecastPoint `json:"points"`
}

// DashboardSummary holds key metrics for the dashboard.
type DashboardSummary struct {
	DailySales      decimal.Decimal `json:"daily_sales"`
	ActiveOrders    int             `json:"active_orders"`
	CompletedOrders int             `json:"completed_orders"`
	StockAlerts     int             `json:"stock_alerts"`
	StaffOnDuty     int             `json:"staff_on_duty"`
	AvgOrderValue   decimal.Decimal `json:"avg_order_value"`
	GeneratedAt     time.Time       `json:"generated_at"`
}
