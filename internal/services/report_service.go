package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/repositories"
	"delizzia_backoffice/internal/rules"
)

// Report kinds.
const (
	ReportDaily   = "daily"
	ReportWeekly  = "weekly"
	ReportMonthly = "monthly"
)

const topItemsLimit = 5

// --- ReportService Interface ---
type ReportService interface {
	// GetDailySalesReport covers one day (YYYY-MM-DD, today when empty) by hour.
	GetDailySalesReport(day string) (*models.SalesReport, error)
	// GetWeeklySalesReport covers seven days from start (today when empty) by day.
	GetWeeklySalesReport(start string) (*models.SalesReport, error)
	// GetMonthlySalesReport covers a calendar month (YYYY-MM or any date in it) by week.
	GetMonthlySalesReport(month string) (*models.SalesReport, error)
	GetInventoryReport() models.InventoryReport
	GetSalesForecast() (*models.SalesForecast, error)
}

// --- reportService Implementation ---
type reportService struct {
	orderRepo     repositories.OrderRepository
	inventoryRepo repositories.InventoryRepository
	clock         Clock
	expiry        rules.ExpiryWindow
	historyDays   int
	horizonDays   int
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	or repositories.OrderRepository,
	ir repositories.InventoryRepository,
	clock Clock,
	expiry rules.ExpiryWindow,
	historyDays, horizonDays int,
) ReportService {
	return &reportService{
		orderRepo:     or,
		inventoryRepo: ir,
		clock:         clock,
		expiry:        expiry,
		historyDays:   historyDays,
		horizonDays:   horizonDays,
	}
}

// startOfDay is midnight of t's date in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func (s *reportService) location() *time.Location {
	return s.clock.Now().Location()
}

// dayInLocation parses a YYYY-MM-DD value as midnight in the restaurant's location.
func (s *reportService) dayInLocation(value string) (time.Time, error) {
	d, err := parseDay(value, s.clock)
	if err != nil {
		return time.Time{}, err
	}
	y, m, dd := d.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, s.location()), nil
}

// salesInPeriod returns non-cancelled orders created in [start, end).
func salesInPeriod(orders []models.Order, start, end time.Time) []models.Order {
	out := []models.Order{}
	for _, o := range orders {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// buildSalesReport aggregates orders into a report. Buckets named in labels
// appear even when empty; any other label is appended in sorted order.
func buildSalesReport(kind string, orders []models.Order, start, end time.Time, bucket func(time.Time) string, labels []string) *models.SalesReport {
	loc := start.Location()
	report := &models.SalesReport{
		Kind:            kind,
		PeriodStart:     start,
		PeriodEnd:       end,
		TotalRevenue:    decimal.Zero,
		TotalCommission: decimal.Zero,
		Platforms:       []models.PlatformBreakdown{},
		Breakdown:       []models.PeriodBucket{},
		TopItems:        []models.TopItem{},
	}

	buckets := map[string]*models.PeriodBucket{}
	for _, l := range labels {
		buckets[l] = &models.PeriodBucket{Label: l, Revenue: decimal.Zero}
	}
	platforms := map[models.Platform]*models.PlatformBreakdown{}
	items := map[string]*models.TopItem{}
	values := stats.Float64Data{}
	extra := []string{}

	for _, o := range orders {
		total := rules.ComputeTotal(o.Items)
		commission := rules.Commission(o.Platform, total)
		report.TotalOrders++
		report.TotalRevenue = report.TotalRevenue.Add(total)
		report.TotalCommission = report.TotalCommission.Add(commission)
		values = append(values, total.InexactFloat64())

		label := bucket(o.CreatedAt.In(loc))
		b, ok := buckets[label]
		if !ok {
			b = &models.PeriodBucket{Label: label, Revenue: decimal.Zero}
			buckets[label] = b
			extra = append(extra, label)
		}
		b.Orders++
		b.Revenue = b.Revenue.Add(total)

		p, ok := platforms[o.Platform]
		if !ok {
			p = &models.PlatformBreakdown{Platform: o.Platform, Revenue: decimal.Zero, Commission: decimal.Zero}
			platforms[o.Platform] = p
		}
		p.Orders++
		p.Revenue = p.Revenue.Add(total)
		p.Commission = p.Commission.Add(commission)

		for _, line := range o.Items {
			it, ok := items[line.Name]
			if !ok {
				it = &models.TopItem{Name: line.Name, Revenue: decimal.Zero}
				items[line.Name] = it
			}
			it.Quantity += line.Quantity
			it.Revenue = it.Revenue.Add(rules.LineTotal(line))
		}
	}

	report.NetRevenue = report.TotalRevenue.Sub(report.TotalCommission)
	report.AverageOrderValue = averageValue(report.TotalRevenue, report.TotalOrders)
	report.ValueStats = orderValueStats(values)

	sort.Strings(extra)
	for _, l := range append(append([]string(nil), labels...), extra...) {
		report.Breakdown = append(report.Breakdown, *buckets[l])
	}

	for _, platform := range models.Platforms {
		p, ok := platforms[platform]
		if !ok {
			continue
		}
		p.NetRevenue = p.Revenue.Sub(p.Commission)
		p.AverageOrderValue = averageValue(p.Revenue, p.Orders)
		report.Platforms = append(report.Platforms, *p)
	}

	for _, it := range items {
		report.TopItems = append(report.TopItems, *it)
	}
	sort.Slice(report.TopItems, func(i, j int) bool {
		a, b := report.TopItems[i], report.TopItems[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Name < b.Name
	})
	if len(report.TopItems) > topItemsLimit {
		report.TopItems = report.TopItems[:topItemsLimit]
	}
	return report
}

func averageValue(revenue decimal.Decimal, orders int) decimal.Decimal {
	if orders == 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(orders))).Round(2)
}

// orderValueStats is all zero for an empty period.
func orderValueStats(values stats.Float64Data) models.OrderValueStats {
	if values.Len() == 0 {
		return models.OrderValueStats{}
	}
	mean, _ := values.Mean()
	median, _ := values.Median()
	p90, _ := values.Percentile(90)
	maxValue, _ := values.Max()
	round := func(v float64) float64 {
		r, _ := stats.Round(v, 2)
		return r
	}
	return models.OrderValueStats{Mean: round(mean), Median: round(median), P90: round(p90), Max: round(maxValue)}
}

func (s *reportService) GetDailySalesReport(day string) (*models.SalesReport, error) {
	start, err := s.dayInLocation(day)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 0, 1)
	orders := salesInPeriod(s.orderRepo.List(), start, end)
	hour := func(t time.Time) string { return fmt.Sprintf("%02d:00", t.Hour()) }
	return buildSalesReport(ReportDaily, orders, start, end, hour, nil), nil
}

func (s *reportService) GetWeeklySalesReport(startDay string) (*models.SalesReport, error) {
	start, err := s.dayInLocation(startDay)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 0, 7)
	labels := make([]string, 0, 7)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		labels = append(labels, d.Format(models.DateLayout))
	}
	orders := salesInPeriod(s.orderRepo.List(), start, end)
	date := func(t time.Time) string { return t.Format(models.DateLayout) }
	return buildSalesReport(ReportWeekly, orders, start, end, date, labels), nil
}

func (s *reportService) GetMonthlySalesReport(month string) (*models.SalesReport, error) {
	var anchor time.Time
	if m, err := time.ParseInLocation("2006-01", month, s.location()); err == nil {
		anchor = m
	} else {
		d, err := s.dayInLocation(month)
		if err != nil {
			return nil, err
		}
		anchor = d
	}
	start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, s.location())
	end := start.AddDate(0, 1, 0)

	weeks := (end.AddDate(0, 0, -1).Day()-1)/7 + 1
	labels := make([]string, weeks)
	for i := range labels {
		labels[i] = fmt.Sprintf("week %d", i+1)
	}
	orders := salesInPeriod(s.orderRepo.List(), start, end)
	week := func(t time.Time) string { return fmt.Sprintf("week %d", (t.Day()-1)/7+1) }
	return buildSalesReport(ReportMonthly, orders, start, end, week, labels), nil
}

func (s *reportService) GetInventoryReport() models.InventoryReport {
	now := s.clock.Now()
	report := models.InventoryReport{
		AsOf:       models.NewDate(now),
		Items:      []models.InventoryReportItem{},
		TotalValue: decimal.Zero,
	}
	for _, item := range s.inventoryRepo.List() {
		v := inventoryView(item, s.expiry, now)
		report.Items = append(report.Items, models.InventoryReportItem{
			ItemID:          item.ID,
			ItemName:        item.Name,
			Category:        item.Category,
			CurrentStock:    item.CurrentStock,
			MinStock:        item.MinStock,
			MaxStock:        item.MaxStock,
			Unit:            item.Unit,
			StockPercentage: v.StockPercentage,
			Status:          string(v.Status),
			ExpiryState:     string(v.ExpiryState),
			TotalValue:      v.TotalValue,
		})
		report.TotalValue = report.TotalValue.Add(v.TotalValue)
		switch v.Status {
		case rules.StockOut:
			report.OutOfStock++
		case rules.StockLow:
			report.LowStockCount++
		}
		switch v.ExpiryState {
		case rules.ExpiryExpiringSoon:
			report.ExpiringSoon++
		case rules.ExpiryExpired:
			report.Expired++
		}
	}
	return report
}

// GetSalesForecast fits a line to daily revenue over the history window
// ending today and projects it over the horizon. Projections never go below zero.
func (s *reportService) GetSalesForecast() (*models.SalesForecast, error) {
	today := startOfDay(s.clock.Now(), s.location())
	first := today.AddDate(0, 0, -(s.historyDays - 1))
	orders := salesInPeriod(s.orderRepo.List(), first, today.AddDate(0, 0, 1))

	daily := map[string]decimal.Decimal{}
	for _, o := range orders {
		key := o.CreatedAt.In(s.location()).Format(models.DateLayout)
		daily[key] = daily[key].Add(rules.ComputeTotal(o.Items))
	}
	series := make(stats.Series, s.historyDays)
	for i := range series {
		key := first.AddDate(0, 0, i).Format(models.DateLayout)
		series[i] = stats.Coordinate{X: float64(i), Y: daily[key].InexactFloat64()}
	}

	fitted, err := stats.LinearRegression(series)
	if err != nil {
		return nil, fmt.Errorf("failed to fit sales trend: %w", err)
	}
	if len(fitted) < 2 {
		return nil, fmt.Errorf("failed to fit sales trend: need at least two days of history")
	}
	x0, y0 := fitted[0].X, fitted[0].Y
	last := fitted[len(fitted)-1]
	slope := (last.Y - y0) / (last.X - x0)

	forecast := &models.SalesForecast{HistoryDays: s.historyDays, Points: []models.ForecastPoint{}}
	forecast.Slope, _ = stats.Round(slope, 2)
	for k := 1; k <= s.horizonDays; k++ {
		x := float64(s.historyDays - 1 + k)
		predicted := y0 + slope*(x-x0)
		if predicted < 0 {
			predicted = 0
		}
		predicted, _ = stats.Round(predicted, 2)
		forecast.Points = append(forecast.Points, models.ForecastPoint{
			Date:             models.NewDate(today.AddDate(0, 0, k)),
			PredictedRevenue: predicted,
		})
	}
	return forecast, nil
}
