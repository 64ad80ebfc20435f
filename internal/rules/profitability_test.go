package rules

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/models"
)

func TestCommission(t *testing.T) {
	tests := []struct {
		platform models.Platform
		want     string
	}{
		{models.PlatformUberEats, "30"},
		{models.PlatformPedidosYa, "28"},
		{models.PlatformBis, "25"},
		{models.PlatformInStore, "0"},
		{models.PlatformPhone, "0"},
	}
	for _, tt := range tests {
		if got := Commission(tt.platform, dec("100")); !got.Equal(dec(tt.want)) {
			t.Errorf("Commission(%s) = %s, want %s", tt.platform, got, tt.want)
		}
	}
}

func TestPackagingCost(t *testing.T) {
	for units, want := range map[int]string{1: "0.15", 2: "0.15", 3: "0.20", 4: "0.20", 9: "0.25"} {
		if got := PackagingCost(units); !got.Equal(dec(want)) {
			t.Errorf("PackagingCost(%d) = %s, want %s", units, got, want)
		}
	}
}

func TestOrderProfitability(t *testing.T) {
	order := models.Order{
		Platform: models.PlatformUberEats,
		Items: []models.OrderItem{
			{Name: "Pizza Margherita", Quantity: 2, Price: dec("12.50")},
			{Name: "Coca Cola", Quantity: 1, Price: dec("2.50")},
		},
	}
	costs := map[string]decimal.Decimal{"Pizza Margherita": dec("4.50"), "Coca Cola": dec("0.80")}
	p := OrderProfitability(order, func(name string) (decimal.Decimal, bool) {
		c, ok := costs[name]
		return c, ok
	})
	// 27.50 - 9.80 - 0.20 - 8.25
	if !p.NetProfit.Equal(dec("9.25")) {
		t.Errorf("NetProfit = %s, want 9.25", p.NetProfit)
	}
	if !p.ProfitMargin.Equal(dec("33.6")) {
		t.Errorf("ProfitMargin = %s, want 33.6", p.ProfitMargin)
	}
}

func TestOptimalPrice(t *testing.T) {
	got, err := OptimalPrice(dec("4"), dec("0.6"))
	if err != nil || !got.Equal(dec("10")) {
		t.Errorf("OptimalPrice = %s, %v; want 10.00", got, err)
	}
	if _, err := OptimalPrice(dec("4"), dec("1")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("margin 1: got %v, want ErrInvalidInput", err)
	}
}

func TestBreakEvenQuantity(t *testing.T) {
	got, err := BreakEvenQuantity(dec("1000"), dec("10"), dec("4"))
	if err != nil || got != 167 {
		t.Errorf("BreakEvenQuantity = %d, %v; want 167", got, err)
	}
	if _, err := BreakEvenQuantity(dec("1000"), dec("4"), dec("4")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestReorderSuggestion(t *testing.T) {
	item := models.InventoryItem{ID: "1", Name: "Queso", CurrentStock: 4, MinStock: 5, MaxStock: 30, UnitCost: dec("8.50")}
	r := ReorderSuggestion(item, dec("2"), 3)
	if r.SafetyStock != 9 || r.ReorderPoint != 15 {
		t.Errorf("safety %d point %d, want 9 and 15", r.SafetyStock, r.ReorderPoint)
	}
	if r.SuggestedQuantity != 26 || !r.EstimatedCost.Equal(dec("221")) {
		t.Errorf("qty %d cost %s, want 26 and 221.00", r.SuggestedQuantity, r.EstimatedCost)
	}
	if r.Urgency != UrgencyHigh || !r.ShouldReorder() {
		t.Errorf("urgency %s reorder %v, want high and true", r.Urgency, r.ShouldReorder())
	}

	full := item
	full.CurrentStock = 30
	if ReorderSuggestion(full, dec("2"), 3).ShouldReorder() {
		t.Error("full shelf should not reorder")
	}
}
