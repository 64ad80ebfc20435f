package services

import (
	"context"
	"errors"
	"testing"

	"delizzia_backoffice/internal/rules"
)

func (f *fixture) dashboard(t *testing.T) *dashboardService {
	t.Helper()
	alerts, err := NewAlertService(f.inventoryRepo, f.bus, f.clock, rules.ExpiryWindow{Days: 7})
	if err != nil {
		t.Fatalf("NewAlertService: %v", err)
	}
	t.Cleanup(func() { _ = alerts.Close() })
	return NewDashboardService(f.orderRepo, alerts, f.staff(), f.clock).(*dashboardService)
}

func TestDashboardRefresh(t *testing.T) {
	f := newFixture(t)
	d := f.dashboard(t)

	s, err := d.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if !s.DailySales.Equal(dec("77.25")) || !s.AvgOrderValue.Equal(dec("19.31")) {
		t.Errorf("sales = %s avg %s", s.DailySales, s.AvgOrderValue)
	}
	if s.ActiveOrders != 3 || s.CompletedOrders != 1 {
		t.Errorf("orders = %d active %d completed", s.ActiveOrders, s.CompletedOrders)
	}
	if s.StockAlerts != 4 || s.StaffOnDuty != 3 {
		t.Errorf("alerts %d staff %d", s.StockAlerts, s.StaffOnDuty)
	}
	if !s.GeneratedAt.Equal(testNow) {
		t.Errorf("generated at %v", s.GeneratedAt)
	}

	again, _ := d.GetSummary(context.Background())
	if again != s {
		t.Error("GetSummary should return the cached snapshot")
	}
}

func TestDashboardRefreshDoesNotOverlap(t *testing.T) {
	f := newFixture(t)
	d := f.dashboard(t)

	d.refreshMu.Lock()
	_, err := d.Refresh(context.Background())
	d.refreshMu.Unlock()
	if !errors.Is(err, ErrRefreshInProgress) {
		t.Fatalf("overlapping refresh = %v, want ErrRefreshInProgress", err)
	}
	if _, err := d.Refresh(context.Background()); err != nil {
		t.Errorf("refresh after release: %v", err)
	}
}

func TestDashboardRefreshCancelled(t *testing.T) {
	f := newFixture(t)
	d := f.dashboard(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Refresh(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled refresh = %v", err)
	}
	if d.latest.Load() != nil {
		t.Error("cancelled refresh stored a snapshot")
	}
}

func TestDashboardStartStop(t *testing.T) {
	f := newFixture(t)
	d := f.dashboard(t)

	if err := d.Start("every now and then"); err == nil {
		t.Error("expected error for bad schedule")
	}

	d = f.dashboard(t)
	if err := d.Start("@every 1h"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if d.latest.Load() == nil {
		t.Error("Start should publish an initial snapshot")
	}
	d.Stop()
}
