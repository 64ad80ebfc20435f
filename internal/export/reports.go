package export

import (
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/models"
)

type summaryRow struct {
	Metric string `csv:"metric"`
	Value  string `csv:"value"`
}

type bucketRow struct {
	Period  string `csv:"period"`
	Orders  int    `csv:"orders"`
	Revenue string `csv:"revenue"`
}

type platformRow struct {
	Platform   string `csv:"platform"`
	Orders     int    `csv:"orders"`
	Revenue    string `csv:"revenue"`
	Commission string `csv:"commission"`
	NetRevenue string `csv:"net_revenue"`
	Average    string `csv:"average_order_value"`
}

type topItemRow struct {
	Name     string `csv:"item"`
	Quantity int    `csv:"quantity"`
	Revenue  string `csv:"revenue"`
}

type inventoryRow struct {
	ID              string `csv:"id"`
	Name            string `csv:"name"`
	Category        string `csv:"category"`
	CurrentStock    int    `csv:"current_stock"`
	MinStock        int    `csv:"min_stock"`
	MaxStock        int    `csv:"max_stock"`
	Unit            string `csv:"unit"`
	StockPercentage string `csv:"stock_percentage"`
	Status          string `csv:"status"`
	ExpiryState     string `csv:"expiry_state"`
	TotalValue      string `csv:"total_value"`
}

type forecastRow struct {
	Date    string `csv:"date"`
	Revenue string `csv:"predicted_revenue"`
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func fixed(v float64, places int) string { return strconv.FormatFloat(v, 'f', places, 64) }

func salesSummary(r *models.SalesReport) []summaryRow {
	return []summaryRow{
		{"report", r.Kind},
		{"period_start", r.PeriodStart.Format(models.DateLayout)},
		{"period_end", r.PeriodEnd.Format(models.DateLayout)},
		{"total_orders", strconv.Itoa(r.TotalOrders)},
		{"total_revenue", money(r.TotalRevenue)},
		{"total_commission", money(r.TotalCommission)},
		{"net_revenue", money(r.NetRevenue)},
		{"average_order_value", money(r.AverageOrderValue)},
		{"median_order_value", fixed(r.ValueStats.Median, 2)},
		{"p90_order_value", fixed(r.ValueStats.P90, 2)},
		{"max_order_value", fixed(r.ValueStats.Max, 2)},
	}
}

func salesBuckets(r *models.SalesReport) []bucketRow {
	rows := make([]bucketRow, len(r.Breakdown))
	for i, b := range r.Breakdown {
		rows[i] = bucketRow{Period: b.Label, Orders: b.Orders, Revenue: money(b.Revenue)}
	}
	return rows
}

func salesPlatforms(r *models.SalesReport) []platformRow {
	rows := make([]platformRow, len(r.Platforms))
	for i, p := range r.Platforms {
		rows[i] = platformRow{
			Platform:   string(p.Platform),
			Orders:     p.Orders,
			Revenue:    money(p.Revenue),
			Commission: money(p.Commission),
			NetRevenue: money(p.NetRevenue),
			Average:    money(p.AverageOrderValue),
		}
	}
	return rows
}

func salesTopItems(r *models.SalesReport) []topItemRow {
	rows := make([]topItemRow, len(r.TopItems))
	for i, it := range r.TopItems {
		rows[i] = topItemRow{Name: it.Name, Quantity: it.Quantity, Revenue: money(it.Revenue)}
	}
	return rows
}

// SalesCSV writes the report's period breakdown, one row per bucket.
func SalesCSV(w io.Writer, r *models.SalesReport) error {
	return writeCSV(w, salesBuckets(r))
}

// SalesXLSX writes a workbook with summary, breakdown, platform and top item sheets.
func SalesXLSX(w io.Writer, r *models.SalesReport) error {
	return writeXLSX(w,
		sheet{"Summary", salesSummary(r)},
		sheet{"Breakdown", salesBuckets(r)},
		sheet{"Platforms", salesPlatforms(r)},
		sheet{"Top items", salesTopItems(r)},
	)
}

func inventoryRows(r models.InventoryReport) []inventoryRow {
	rows := make([]inventoryRow, len(r.Items))
	for i, it := range r.Items {
		rows[i] = inventoryRow{
			ID:              it.ItemID,
			Name:            it.ItemName,
			Category:        string(it.Category),
			CurrentStock:    it.CurrentStock,
			MinStock:        it.MinStock,
			MaxStock:        it.MaxStock,
			Unit:            string(it.Unit),
			StockPercentage: fixed(it.StockPercentage, 1),
			Status:          it.Status,
			ExpiryState:     it.ExpiryState,
			TotalValue:      money(it.TotalValue),
		}
	}
	return rows
}

func InventoryCSV(w io.Writer, r models.InventoryReport) error {
	return writeCSV(w, inventoryRows(r))
}

func InventoryXLSX(w io.Writer, r models.InventoryReport) error {
	summary := []summaryRow{
		{"as_of", r.AsOf.String()},
		{"total_value", money(r.TotalValue)},
		{"low_stock", strconv.Itoa(r.LowStockCount)},
		{"out_of_stock", strconv.Itoa(r.OutOfStock)},
		{"expiring_soon", strconv.Itoa(r.ExpiringSoon)},
		{"expired", strconv.Itoa(r.Expired)},
	}
	return writeXLSX(w, sheet{"Inventory", inventoryRows(r)}, sheet{"Summary", summary})
}

func forecastRows(f *models.SalesForecast) []forecastRow {
	rows := make([]forecastRow, len(f.Points))
	for i, p := range f.Points {
		rows[i] = forecastRow{Date: p.Date.String(), Revenue: fixed(p.PredictedRevenue, 2)}
	}
	return rows
}

func ForecastCSV(w io.Writer, f *models.SalesForecast) error {
	return writeCSV(w, forecastRows(f))
}

func ForecastXLSX(w io.Writer, f *models.SalesForecast) error {
	return writeXLSX(w, sheet{"Forecast", forecastRows(f)})
}
