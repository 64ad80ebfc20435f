package services

import (
	"errors"
	"testing"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/validation"
)

func (f *fixture) orders(strict bool) OrderService {
	return NewOrderService(f.orderRepo, f.menuRepo, f.validator, StatusPolicy{Strict: strict}, f.clock)
}

func newOrderRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerName:  "Juan Pérez",
		CustomerPhone: "0987654321",
		Items: []models.OrderItem{
			{Name: "Pizza Margherita", Quantity: 2, Price: dec("12.50")},
			{Name: "Coca Cola 500ml", Quantity: 1, Price: dec("2.50")},
		},
		PaymentMethod: models.PaymentCash,
		Platform:      models.PlatformInStore,
	}
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	svc := f.orders(false)

	first, err := svc.CreateOrder(newOrderRequest())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if first.OrderNumber != "ORD-20240115-0001" {
		t.Errorf("order number = %s", first.OrderNumber)
	}
	if first.Status != models.OrderStatusPending || !first.CreatedAt.Equal(testNow) {
		t.Errorf("defaults = %s %v", first.Status, first.CreatedAt)
	}
	if !first.Total.Equal(dec("27.50")) || first.ItemsCount != 3 {
		t.Errorf("total = %s items = %d, want 27.50 and 3", first.Total, first.ItemsCount)
	}

	second, err := svc.CreateOrder(newOrderRequest())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if second.OrderNumber != "ORD-20240115-0002" {
		t.Errorf("second order number = %s", second.OrderNumber)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	req := newOrderRequest()
	req.Items = nil
	req.Platform = "drone"

	_, err := f.orders(false).CreateOrder(req)
	verrs, ok := validation.As(err)
	if !ok {
		t.Fatalf("expected validation errors, got %v", err)
	}
	for _, field := range []string{"items", "platform"} {
		if !verrs.Has(field) {
			t.Errorf("missing %s error in %v", field, verrs)
		}
	}
}

func TestUpdateOrderRecomputesTotal(t *testing.T) {
	f := newFixture(t)
	svc := f.orders(false)

	updated, err := svc.UpdateOrder("1", UpdateOrderRequest{
		Items: []models.OrderItem{{Name: "Pizza Margherita", Quantity: 3, Price: dec("12.50")}},
	})
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if !updated.Total.Equal(dec("37.50")) {
		t.Errorf("total = %s, want 37.50", updated.Total)
	}
	if _, err := svc.UpdateOrder("missing", UpdateOrderRequest{}); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("UpdateOrder missing = %v", err)
	}
}

func TestGetOrdersFilters(t *testing.T) {
	f := newFixture(t)
	svc := f.orders(false)

	tests := []struct {
		name    string
		filters models.OrderFilters
		want    int
	}{
		{"all", models.OrderFilters{Status: "all"}, 4},
		{"status", models.OrderFilters{Status: "pending"}, 1},
		{"search number", models.OrderFilters{Search: "ord-002"}, 1},
		{"same day", models.OrderFilters{Date: "2024-01-15"}, 4},
		{"other day", models.OrderFilters{Date: "2024-01-16"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetOrders(tt.filters)
			if err != nil {
				t.Fatalf("GetOrders: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d orders, want %d", len(got), tt.want)
			}
		})
	}

	if _, err := svc.GetOrders(models.OrderFilters{Date: "someday"}); !errors.Is(err, ErrDateFormat) {
		t.Errorf("bad date = %v, want ErrDateFormat", err)
	}
}

func TestUpdateOrderStatusPolicy(t *testing.T) {
	tests := []struct {
		name    string
		strict  bool
		id      string
		status  models.OrderStatus
		wantErr error
	}{
		{"permissive leaves final", false, "3", models.OrderStatusPending, nil},
		{"strict forward", true, "4", models.OrderStatusPreparing, nil},
		{"strict leaves final", true, "3", models.OrderStatusPending, ErrStatusTransition},
		{"strict same final", true, "3", models.OrderStatusDelivered, nil},
		{"unknown status", false, "1", "lost", ErrInvalidStatus},
		{"missing order", false, "missing", models.OrderStatusReady, ErrOrderNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := f.orders(tt.strict)
			before, _ := f.orderRepo.GetByID(tt.id)

			got, err := svc.UpdateOrderStatus(tt.id, UpdateOrderStatusRequest{Status: tt.status})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				after, _ := f.orderRepo.GetByID(tt.id)
				if after.Status != before.Status {
					t.Errorf("status changed to %s despite error", after.Status)
				}
				return
			}
			if got.Status != tt.status {
				t.Errorf("status = %s, want %s", got.Status, tt.status)
			}
		})
	}
}

func TestOrderProfitability(t *testing.T) {
	f := newFixture(t)
	p, err := f.orders(false).GetProfitability("1")
	if err != nil {
		t.Fatalf("GetProfitability: %v", err)
	}
	if !p.Revenue.Equal(dec("30")) || !p.IngredientCost.Equal(dec("10.80")) {
		t.Errorf("revenue %s ingredients %s", p.Revenue, p.IngredientCost)
	}
	if !p.Commission.Equal(dec("9")) || !p.NetProfit.Equal(dec("10")) {
		t.Errorf("commission %s net %s", p.Commission, p.NetProfit)
	}
	if _, err := f.orders(false).GetProfitability("missing"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("missing = %v", err)
	}
}

func TestDeleteOrder(t *testing.T) {
	f := newFixture(t)
	svc := f.orders(false)
	if err := svc.DeleteOrder("2"); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if err := svc.DeleteOrder("2"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("second delete = %v", err)
	}
}
