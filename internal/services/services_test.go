package services

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/database"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/repositories"
	"delizzia_backoffice/internal/rules"
	"delizzia_backoffice/internal/validation"
)

// testNow falls on the day the seed orders were taken.
var testNow = time.Date(2024, time.January, 15, 15, 0, 0, 0, time.UTC)

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("new-%d", s.n)
}

type fixture struct {
	clock     Clock
	bus       EventBus.Bus
	validator *validation.Validator

	menuRepo      repositories.MenuRepository
	inventoryRepo repositories.InventoryRepository
	customerRepo  repositories.CustomerRepository
	orderRepo     repositories.OrderRepository
	purchaseRepo  repositories.PurchaseRepository
	staffRepo     repositories.StaffRepository
	scheduleRepo  repositories.ScheduleRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ds, err := database.LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	ids := &seqIDs{}
	return &fixture{
		clock:         FixedClock(testNow),
		bus:           EventBus.New(),
		validator:     validation.New(),
		menuRepo:      repositories.NewMenuRepository(ds, ids),
		inventoryRepo: repositories.NewInventoryRepository(ds, ids),
		customerRepo:  repositories.NewCustomerRepository(ds, ids),
		orderRepo:     repositories.NewOrderRepository(ds, ids),
		purchaseRepo:  repositories.NewPurchaseRepository(ds, ids),
		staffRepo:     repositories.NewStaffRepository(ds, ids),
		scheduleRepo:  repositories.NewScheduleRepository(ds, ids),
	}
}

func (f *fixture) menu() MenuService {
	return NewMenuService(f.menuRepo, f.validator, rules.DefaultMarginCutoffs)
}

func (f *fixture) inventory() InventoryService {
	return NewInventoryService(f.inventoryRepo, f.validator, f.bus, f.clock, rules.ExpiryWindow{Days: 7}, 3, 14)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func TestCreateMenuItemPizzaScenario(t *testing.T) {
	f := newFixture(t)
	svc := f.menu()

	created, err := svc.CreateMenuItem(CreateMenuItemRequest{
		Name: "Pizza Test", Category: "Pizzas", Price: dec("10.00"), Cost: dec("4.00"),
	})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	if !created.Margin.Equal(dec("60.0")) || created.MarginTier != rules.MarginMedium {
		t.Errorf("margin = %s %s, want 60.0 medium", created.Margin, created.MarginTier)
	}
	if !created.Available {
		t.Error("new menu items should default to available")
	}
	before := len(svc.GetMenuItems(models.MenuFilters{}))

	_, err = svc.CreateMenuItem(CreateMenuItemRequest{
		Name: "Pizza Test", Category: "Pizzas", Price: dec("10.00"), Cost: dec("12.00"),
	})
	verrs, ok := validation.As(err)
	if !ok || !verrs.Has("cost") {
		t.Fatalf("expected cost validation error, got %v", err)
	}
	if after := len(svc.GetMenuItems(models.MenuFilters{})); after != before {
		t.Errorf("menu grew from %d to %d after rejected create", before, after)
	}
}

func TestUpdateMenuItemKeepsStoredItemOnInvalidChange(t *testing.T) {
	f := newFixture(t)
	svc := f.menu()

	_, err := svc.UpdateMenuItem("1", UpdateMenuItemRequest{Cost: decPtr("20.00")})
	if !errors.Is(err, validation.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got, _ := svc.GetMenuItemByID("1")
	if !got.Cost.Equal(dec("4.20")) {
		t.Errorf("cost changed to %s", got.Cost)
	}

	updated, err := svc.UpdateMenuItem("1", UpdateMenuItemRequest{Price: decPtr("14.00")})
	if err != nil {
		t.Fatalf("UpdateMenuItem: %v", err)
	}
	if !updated.Margin.Equal(dec("70.0")) || updated.MarginTier != rules.MarginHigh {
		t.Errorf("margin = %s %s, want 70.0 high", updated.Margin, updated.MarginTier)
	}
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestMenuNotFoundAndToggle(t *testing.T) {
	f := newFixture(t)
	svc := f.menu()

	if _, err := svc.GetMenuItemByID("missing"); !errors.Is(err, ErrMenuItemNotFound) {
		t.Errorf("GetMenuItemByID = %v, want ErrMenuItemNotFound", err)
	}
	if err := svc.DeleteMenuItem("missing"); !errors.Is(err, ErrMenuItemNotFound) {
		t.Errorf("DeleteMenuItem = %v, want ErrMenuItemNotFound", err)
	}
	toggled, err := svc.ToggleAvailability("5")
	if err != nil {
		t.Fatalf("ToggleAvailability: %v", err)
	}
	if toggled.Available {
		t.Error("item 5 should now be unavailable")
	}
	summary := svc.GetSummary()
	if summary.TotalItems != 6 || summary.AvailableItems != 5 {
		t.Errorf("summary = %d/%d, want 6 total 5 available", summary.TotalItems, summary.AvailableItems)
	}
	if len(summary.Categories) != 2 || summary.Categories[0].Category != "Bebidas" {
		t.Errorf("categories = %+v", summary.Categories)
	}
}

func TestInventoryViewDerivesFacts(t *testing.T) {
	f := newFixture(t)
	item, err := f.inventory().GetItemByID("1")
	if err != nil {
		t.Fatalf("GetItemByID: %v", err)
	}
	if item.Status != rules.StockLow {
		t.Errorf("status = %s, want low", item.Status)
	}
	if item.StockPercentage != 10 {
		t.Errorf("stock percentage = %v, want 10", item.StockPercentage)
	}
	if !item.TotalValue.Equal(dec("17.00")) {
		t.Errorf("total value = %s, want 17.00", item.TotalValue)
	}
	if item.ExpiryState != rules.ExpiryNone {
		t.Errorf("expiry state = %s, want none 10 days out", item.ExpiryState)
	}
}

func TestAdjustStock(t *testing.T) {
	f := newFixture(t)
	svc := f.inventory()

	if _, _, err := svc.AdjustStock("2", AdjustStockRequest{}); !errors.Is(err, ErrZeroAdjustment) {
		t.Errorf("zero delta = %v, want ErrZeroAdjustment", err)
	}
	if _, _, err := svc.AdjustStock("missing", AdjustStockRequest{Delta: 1}); !errors.Is(err, ErrInventoryItemNotFound) {
		t.Errorf("missing item = %v, want ErrInventoryItemNotFound", err)
	}

	item, mv, err := svc.AdjustStock("5", AdjustStockRequest{Delta: -5, Reason: strPtr("broken")})
	if err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	if item.CurrentStock != 0 || mv.QuantityChanged != 0 || mv.RequestedDelta != -5 {
		t.Errorf("clamped adjustment = stock %d changed %d requested %d", item.CurrentStock, mv.QuantityChanged, mv.RequestedDelta)
	}
	if mv.MovementType != models.MovementAdjustmentOut {
		t.Errorf("movement type = %s", mv.MovementType)
	}

	item, mv, err = svc.AdjustStock("5", AdjustStockRequest{Delta: 100, Restock: true})
	if err != nil {
		t.Fatalf("AdjustStock restock: %v", err)
	}
	if item.CurrentStock != 100 || item.Status != rules.StockNormal {
		t.Errorf("after restock = %d %s", item.CurrentStock, item.Status)
	}
	if mv.MovementType != models.MovementRestock || item.LastRestocked.String() != "2024-01-15" {
		t.Errorf("restock = %s on %s", mv.MovementType, item.LastRestocked)
	}
	if !item.TotalValue.Equal(dec("25.00")) {
		t.Errorf("total value = %s, want 25.00", item.TotalValue)
	}

	id := "5"
	if n := len(svc.GetMovements(&id)); n != 2 {
		t.Errorf("movements for item 5 = %d, want 2", n)
	}
}

func TestAdjustStockRejectsOverflow(t *testing.T) {
	f := newFixture(t)
	svc := f.inventory()

	_, _, err := svc.AdjustStock("1", AdjustStockRequest{Delta: math.MaxInt, Restock: true})
	errs, ok := validation.As(err)
	if !ok || !errs.Has("delta") {
		t.Fatalf("overflowing restock = %v, want a delta validation error", err)
	}
	item, err := svc.GetItemByID("1")
	if err != nil {
		t.Fatal(err)
	}
	if item.CurrentStock == 0 || item.Status == rules.StockOut {
		t.Errorf("stock after rejected restock = %d %s", item.CurrentStock, item.Status)
	}
	id := "1"
	if n := len(svc.GetMovements(&id)); n != 0 {
		t.Errorf("movements for item 1 = %d, want 0", n)
	}
}

func TestUpdateInventoryItemRejectsInvertedBounds(t *testing.T) {
	f := newFixture(t)
	minStock := 60
	_, err := f.inventory().UpdateItem("4", UpdateInventoryItemRequest{MinStock: &minStock})
	verrs, ok := validation.As(err)
	if !ok || !verrs.Has("min_stock") {
		t.Fatalf("expected min_stock error, got %v", err)
	}
}

func TestReorderPlan(t *testing.T) {
	f := newFixture(t)
	plan := f.inventory().GetReorderPlan()
	if len(plan) != 4 {
		t.Fatalf("plan has %d items, want 4: %+v", len(plan), plan)
	}
	if plan[0].ItemID != "1" || plan[1].ItemID != "5" {
		t.Errorf("plan order = %s, %s; want 1, 5", plan[0].ItemID, plan[1].ItemID)
	}
	for _, r := range plan {
		if r.Urgency != rules.UrgencyHigh {
			t.Errorf("%s urgency = %s, want high", r.ItemName, r.Urgency)
		}
	}
	if plan[0].SuggestedQuantity != 18 || !plan[0].EstimatedCost.Equal(dec("153")) {
		t.Errorf("queso suggestion = %d for %s", plan[0].SuggestedQuantity, plan[0].EstimatedCost)
	}
}

func TestAlertsFollowStockChanges(t *testing.T) {
	f := newFixture(t)
	alerts, err := NewAlertService(f.inventoryRepo, f.bus, f.clock, rules.ExpiryWindow{Days: 7})
	if err != nil {
		t.Fatalf("NewAlertService: %v", err)
	}

	active := alerts.GetActiveAlerts()
	if len(active) != 4 {
		t.Fatalf("active alerts = %d, want 4", len(active))
	}
	if active[0].ItemID != "5" || active[0].Severity != SeverityHigh {
		t.Errorf("first alert = %+v, want item 5 high", active[0])
	}

	inv := f.inventory()
	if _, _, err := inv.AdjustStock("2", AdjustStockRequest{Delta: -3}); err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	if _, _, err := inv.AdjustStock("4", AdjustStockRequest{Delta: 1}); err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	recent := alerts.GetRecentAlerts()
	if len(recent) != 1 || recent[0].ItemID != "2" || recent[0].CurrentStock != 5 {
		t.Fatalf("recent alerts = %+v", recent)
	}

	if err := alerts.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, _, err := inv.AdjustStock("2", AdjustStockRequest{Delta: -1}); err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	if n := len(alerts.GetRecentAlerts()); n != 1 {
		t.Errorf("closed service recorded alerts: %d", n)
	}
}

func TestMenuPricing(t *testing.T) {
	svc := newFixture(t).menu()

	p, err := svc.GetPricing("1", dec("70"), dec("500"))
	if err != nil {
		t.Fatalf("GetPricing: %v", err)
	}
	if !p.OptimalPrice.Equal(dec("14")) {
		t.Errorf("optimal price = %s, want 14.00", p.OptimalPrice)
	}
	// 500 / (12.50 - 4.20) = 60.24
	if p.BreakEvenUnits != 61 {
		t.Errorf("break-even units = %d, want 61", p.BreakEvenUnits)
	}

	if _, err := svc.GetPricing("1", dec("100"), decimal.Zero); !errors.Is(err, rules.ErrInvalidInput) {
		t.Errorf("target 100%%: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.GetPricing("missing", dec("70"), decimal.Zero); !errors.Is(err, ErrMenuItemNotFound) {
		t.Errorf("missing item: err = %v, want ErrMenuItemNotFound", err)
	}
}
