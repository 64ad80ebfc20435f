package services

import (
	"errors"
	"testing"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/validation"
)

func (f *fixture) purchases(strict bool) PurchaseService {
	return NewPurchaseService(f.purchaseRepo, f.validator, StatusPolicy{Strict: strict}, f.clock)
}

func TestCreatePurchase(t *testing.T) {
	f := newFixture(t)
	svc := f.purchases(false)

	req := CreatePurchaseRequest{
		Supplier: "Empaques del Norte",
		Items: []models.PurchaseItem{
			{Name: "Cajas de Pizza", Quantity: 200, Unit: models.UnitUnits, UnitCost: dec("0.25")},
			{Name: "Servilletas", Quantity: 10, Unit: models.UnitPackages, UnitCost: dec("1.10")},
		},
		DeliveryDate: models.MustParseDate("2024-01-18"),
	}
	created, err := svc.CreatePurchase(req)
	if err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}
	if created.OrderNumber != "PUR-20240115-0001" || created.Status != models.PurchaseStatusPending {
		t.Errorf("created = %s %s", created.OrderNumber, created.Status)
	}
	if !created.Total.Equal(dec("61")) {
		t.Errorf("total = %s, want 61.00", created.Total)
	}

	req.DeliveryDate = models.Date{}
	_, err = svc.CreatePurchase(req)
	if verrs, ok := validation.As(err); !ok || !verrs.Has("delivery_date") {
		t.Errorf("expected delivery_date error, got %v", err)
	}
}

func TestPurchaseStatusAndFilters(t *testing.T) {
	f := newFixture(t)

	if _, err := f.purchases(true).UpdatePurchaseStatus("3", UpdatePurchaseStatusRequest{Status: models.PurchaseStatusOrdered}); !errors.Is(err, ErrStatusTransition) {
		t.Errorf("strict received->ordered = %v", err)
	}
	got, err := f.purchases(false).UpdatePurchaseStatus("1", UpdatePurchaseStatusRequest{Status: models.PurchaseStatusReceived})
	if err != nil {
		t.Fatalf("UpdatePurchaseStatus: %v", err)
	}
	if got.Status != models.PurchaseStatusReceived {
		t.Errorf("status = %s", got.Status)
	}
	// receiving does not touch inventory
	if item, _ := f.inventoryRepo.GetByID("1"); item.CurrentStock != 2 {
		t.Errorf("inventory changed to %d", item.CurrentStock)
	}

	list := f.purchases(false).GetPurchases(models.PurchaseFilters{Status: "received"})
	if len(list) != 2 {
		t.Errorf("received purchases = %d, want 2", len(list))
	}
	list = f.purchases(false).GetPurchases(models.PurchaseFilters{Search: "norte"})
	if len(list) != 1 || list[0].ID != "2" {
		t.Errorf("search norte = %+v", list)
	}
}
