package services

import (
	"errors"
	"testing"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/rules"
)

func (f *fixture) reports() ReportService {
	return NewReportService(f.orderRepo, f.inventoryRepo, f.clock, rules.ExpiryWindow{Days: 7}, 30, 7)
}

func TestDailySalesReport(t *testing.T) {
	f := newFixture(t)
	r, err := f.reports().GetDailySalesReport("2024-01-15")
	if err != nil {
		t.Fatalf("GetDailySalesReport: %v", err)
	}
	if r.Kind != ReportDaily || r.TotalOrders != 4 {
		t.Fatalf("report = %s with %d orders", r.Kind, r.TotalOrders)
	}
	checks := map[string][2]string{
		"revenue":    {r.TotalRevenue.String(), "77.25"},
		"commission": {r.TotalCommission.String(), "17.5"},
		"net":        {r.NetRevenue.String(), "59.75"},
		"average":    {r.AverageOrderValue.String(), "19.31"},
	}
	for name, c := range checks {
		if !dec(c[0]).Equal(dec(c[1])) {
			t.Errorf("%s = %s, want %s", name, c[0], c[1])
		}
	}
	if len(r.Breakdown) != 1 || r.Breakdown[0].Label != "14:00" || r.Breakdown[0].Orders != 4 {
		t.Errorf("breakdown = %+v", r.Breakdown)
	}
	if len(r.Platforms) != 4 || r.Platforms[0].Platform != models.PlatformInStore {
		t.Errorf("platforms = %+v", r.Platforms)
	}
	if len(r.TopItems) != 5 || r.TopItems[0].Name != "Coca Cola 500ml" || r.TopItems[1].Name != "Pizza Margherita" {
		t.Errorf("top items = %+v", r.TopItems)
	}
	if r.ValueStats.Median != 16 || r.ValueStats.Max != 30 || r.ValueStats.Mean != 19.31 {
		t.Errorf("value stats = %+v", r.ValueStats)
	}
}

func TestSalesReportSkipsCancelled(t *testing.T) {
	f := newFixture(t)
	if _, err := f.orders(false).UpdateOrderStatus("1", UpdateOrderStatusRequest{Status: models.OrderStatusCancelled}); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	r, err := f.reports().GetDailySalesReport("2024-01-15")
	if err != nil {
		t.Fatalf("GetDailySalesReport: %v", err)
	}
	if r.TotalOrders != 3 || !r.TotalRevenue.Equal(dec("47.25")) {
		t.Errorf("report = %d orders, %s revenue", r.TotalOrders, r.TotalRevenue)
	}
}

func TestEmptyDayReport(t *testing.T) {
	f := newFixture(t)
	r, err := f.reports().GetDailySalesReport("2024-02-01")
	if err != nil {
		t.Fatalf("GetDailySalesReport: %v", err)
	}
	if r.TotalOrders != 0 || !r.AverageOrderValue.IsZero() || r.ValueStats.Mean != 0 {
		t.Errorf("empty report = %+v", r)
	}
}

func TestWeeklyAndMonthlyBreakdown(t *testing.T) {
	f := newFixture(t)
	svc := f.reports()

	week, err := svc.GetWeeklySalesReport("2024-01-14")
	if err != nil {
		t.Fatalf("GetWeeklySalesReport: %v", err)
	}
	if len(week.Breakdown) != 7 || week.Breakdown[1].Label != "2024-01-15" || week.Breakdown[1].Orders != 4 {
		t.Errorf("weekly breakdown = %+v", week.Breakdown)
	}

	month, err := svc.GetMonthlySalesReport("2024-01")
	if err != nil {
		t.Fatalf("GetMonthlySalesReport: %v", err)
	}
	if len(month.Breakdown) != 5 || month.Breakdown[2].Label != "week 3" || month.Breakdown[2].Orders != 4 {
		t.Errorf("monthly breakdown = %+v", month.Breakdown)
	}
	if !month.PeriodEnd.Equal(month.PeriodStart.AddDate(0, 1, 0)) {
		t.Errorf("period = %v - %v", month.PeriodStart, month.PeriodEnd)
	}

	if _, err := svc.GetWeeklySalesReport("not a date"); !errors.Is(err, ErrDateFormat) {
		t.Errorf("bad start = %v", err)
	}
}

func TestInventoryReport(t *testing.T) {
	f := newFixture(t)
	r := f.reports().GetInventoryReport()
	if len(r.Items) != 5 || !r.TotalValue.Equal(dec("55.40")) {
		t.Errorf("report = %d items worth %s", len(r.Items), r.TotalValue)
	}
	if r.LowStockCount != 3 || r.OutOfStock != 1 || r.Expired != 0 {
		t.Errorf("counts = low %d out %d expired %d", r.LowStockCount, r.OutOfStock, r.Expired)
	}
}

func TestSalesForecast(t *testing.T) {
	f := newFixture(t)
	fc, err := f.reports().GetSalesForecast()
	if err != nil {
		t.Fatalf("GetSalesForecast: %v", err)
	}
	if fc.HistoryDays != 30 || len(fc.Points) != 7 {
		t.Fatalf("forecast = %d days history, %d points", fc.HistoryDays, len(fc.Points))
	}
	if fc.Slope <= 0 {
		t.Errorf("slope = %v, want positive after a busy today", fc.Slope)
	}
	if fc.Points[0].Date.String() != "2024-01-16" {
		t.Errorf("first point = %s", fc.Points[0].Date)
	}
	for i := 1; i < len(fc.Points); i++ {
		if fc.Points[i].PredictedRevenue < fc.Points[i-1].PredictedRevenue {
			t.Errorf("forecast not rising at %d: %+v", i, fc.Points)
		}
	}
}
