package filters

import (
	"reflect"
	"testing"
	"time"

	"delizzia_backoffice/internal/models"
)

func customerNames(list []models.Customer) []string {
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name
	}
	return names
}

var customers = []models.Customer{
	{ID: "1", Name: "María González", Phone: "0991234567", Type: models.CustomerTypeVIP},
	{ID: "2", Name: "Carlos Mendoza", Phone: "0987654321", Type: models.CustomerTypeRegular},
	{ID: "3", Name: "Ana Rodríguez", Phone: "0976543210", Type: models.CustomerTypeNew},
	{ID: "4", Name: "Mario Castro", Phone: "0965432109", Type: models.CustomerTypeVIP},
}

func TestCustomersSearchIgnoresCase(t *testing.T) {
	got := Customers(customers, models.CustomerFilters{Search: "maría", Type: All})
	if want := []string{"María González"}; !reflect.DeepEqual(customerNames(got), want) {
		t.Errorf("got %v, want %v", customerNames(got), want)
	}
	got = Customers(customers, models.CustomerFilters{Search: "GONZ"})
	if len(got) != 1 {
		t.Errorf("upper-case search matched %d customers, want 1", len(got))
	}
}

func TestMatchesSearch(t *testing.T) {
	tests := []struct {
		term  string
		field string
		want  bool
	}{
		{"", "Lasagna", true},
		{"pizza", "Pizza Margherita", true},
		{"PIZZA", "Pizza Margherita", true},
		{"pizza ", "Pizza", false},
		{"pizza ", "Pizza Margherita", true},
		{" ", "Lasagna", false},
		{" ", "Ana Rodríguez", true},
	}
	for _, tt := range tests {
		if got := MatchesSearch(tt.term, tt.field); got != tt.want {
			t.Errorf("MatchesSearch(%q, %q) = %v, want %v", tt.term, tt.field, got, tt.want)
		}
	}
}

func TestCustomersAllKeepsOrder(t *testing.T) {
	got := Customers(customers, models.CustomerFilters{Type: All})
	want := []string{"María González", "Carlos Mendoza", "Ana Rodríguez", "Mario Castro"}
	if !reflect.DeepEqual(customerNames(got), want) {
		t.Errorf("got %v, want %v", customerNames(got), want)
	}
	got = Customers(customers, models.CustomerFilters{Search: "mar", Type: All})
	if want := []string{"María González", "Mario Castro"}; !reflect.DeepEqual(customerNames(got), want) {
		t.Errorf("got %v, want %v", customerNames(got), want)
	}
}

func TestCustomersSearchAndSelector(t *testing.T) {
	got := Customers(customers, models.CustomerFilters{Search: "09", Type: string(models.CustomerTypeVIP)})
	if want := []string{"María González", "Mario Castro"}; !reflect.DeepEqual(customerNames(got), want) {
		t.Errorf("got %v, want %v", customerNames(got), want)
	}
	got = Customers(customers, models.CustomerFilters{Search: "0987"})
	if want := []string{"Carlos Mendoza"}; !reflect.DeepEqual(customerNames(got), want) {
		t.Errorf("phone search: got %v, want %v", customerNames(got), want)
	}
}

func TestEntitiesDoesNotMutateInput(t *testing.T) {
	in := append([]models.Customer(nil), customers...)
	_ = Customers(in, models.CustomerFilters{Search: "ana"})
	if !reflect.DeepEqual(in, customers) {
		t.Error("input list changed")
	}
}

func TestOrdersFilters(t *testing.T) {
	orders := []models.Order{
		{ID: "1", OrderNumber: "ORD001", CustomerName: "María González", Status: models.OrderStatusPending,
			CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{ID: "2", OrderNumber: "ORD002", CustomerName: "Carlos Mendoza", Status: models.OrderStatusDelivered,
			CreatedAt: time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC)},
		{ID: "3", OrderNumber: "ORD003", CustomerName: "Ana Rodríguez", Status: models.OrderStatusPending,
			CreatedAt: time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)},
	}
	if got := Orders(orders, models.OrderFilters{Search: "ord002", Status: All}); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("order number search: %+v", got)
	}
	if got := Orders(orders, models.OrderFilters{Status: string(models.OrderStatusPending)}); len(got) != 2 {
		t.Errorf("status filter matched %d, want 2", len(got))
	}
	got := Orders(orders, models.OrderFilters{Status: All, Date: "2024-01-15"})
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("date filter: %+v", got)
	}
}

func TestMenuCategoryIsExact(t *testing.T) {
	menu := []models.MenuItem{
		{ID: "1", Name: "Pizza Margherita", Category: "Pizzas"},
		{ID: "2", Name: "Coca Cola", Category: "Bebidas"},
	}
	if got := Menu(menu, models.MenuFilters{Category: "pizzas"}); len(got) != 0 {
		t.Errorf("category selector should be exact, got %d", len(got))
	}
	if got := Menu(menu, models.MenuFilters{Search: "bebi"}); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("search over category: %+v", got)
	}
}

func TestStaffTwoSelectors(t *testing.T) {
	staff := []models.StaffMember{
		{ID: "1", Name: "Roberto Silva", Position: models.PositionHeadCook, Status: models.StaffWorking},
		{ID: "2", Name: "Lucía Fernández", Position: models.PositionCashier, Status: models.StaffBreak},
		{ID: "3", Name: "Diego Morales", Position: models.PositionDelivery, Status: models.StaffWorking},
	}
	got := Staff(staff, models.StaffFilters{Position: All, Status: string(models.StaffWorking)})
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("got %+v", got)
	}
	got = Staff(staff, models.StaffFilters{Search: "lucía", Position: string(models.PositionCashier), Status: All})
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("got %+v", got)
	}
}

func TestWeekDaysStartsSunday(t *testing.T) {
	// 2024-01-17 is a Wednesday
	days := WeekDays(time.Date(2024, 1, 17, 15, 0, 0, 0, time.UTC))
	if len(days) != 7 {
		t.Fatalf("got %d days", len(days))
	}
	if days[0].Weekday() != time.Sunday || days[0].Day() != 14 || days[6].Day() != 20 {
		t.Errorf("week is %s..%s", days[0].Format("2006-01-02"), days[6].Format("2006-01-02"))
	}
}

func TestScheduleForDay(t *testing.T) {
	entries := []models.ScheduleEntry{
		{ID: "1", Date: models.MustParseDate("2024-01-15")},
		{ID: "2", Date: models.MustParseDate("2024-01-16")},
		{ID: "3", Date: models.MustParseDate("2024-01-15")},
	}
	got := ScheduleForDay(entries, time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC))
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("got %+v", got)
	}
}
