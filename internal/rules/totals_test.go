package rules

import (
	"testing"

	"delizzia_backoffice/internal/models"
)

func TestComputeTotalRecomputesAfterChange(t *testing.T) {
	items := []models.OrderItem{
		{Name: "Pizza Margherita", Quantity: 2, Price: dec("12.50")},
		{Name: "Coca Cola", Quantity: 1, Price: dec("2.50")},
	}
	if got := ComputeTotal(items); !got.Equal(dec("27.50")) {
		t.Fatalf("ComputeTotal = %s, want 27.50", got)
	}
	items[1].Quantity = 3
	if got := ComputeTotal(items); !got.Equal(dec("32.50")) {
		t.Errorf("ComputeTotal after change = %s, want 32.50", got)
	}
	if got := TotalQuantity(items); got != 5 {
		t.Errorf("TotalQuantity = %d, want 5", got)
	}
}

func TestComputeTotalPurchase(t *testing.T) {
	items := []models.PurchaseItem{
		{Name: "Harina", Quantity: 10, Unit: models.UnitKilograms, UnitCost: dec("1.20")},
		{Name: "Queso", Quantity: 4, Unit: models.UnitKilograms, UnitCost: dec("8.75")},
	}
	if got := ComputeTotal(items); !got.Equal(dec("47")) {
		t.Errorf("ComputeTotal = %s, want 47.00", got)
	}
	if got := ComputeTotal([]models.PurchaseItem{}); !got.IsZero() {
		t.Errorf("empty total = %s", got)
	}
}
