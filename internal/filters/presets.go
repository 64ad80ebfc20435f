package filters

import (
	"time"

	"delizzia_backoffice/internal/models"
)

// Orders matches customer name or order number, by status, and optionally
// by creation day (YYYY-MM-DD). An unparsable day is ignored.
func Orders(list []models.Order, f models.OrderFilters) []models.Order {
	out := Entities(list, f.Search, f.Status,
		func(o models.Order) []string { return []string{o.CustomerName, o.OrderNumber} },
		func(o models.Order) string { return string(o.Status) })
	if f.Date == "" {
		return out
	}
	day, err := models.ParseDate(f.Date)
	if err != nil {
		return out
	}
	return Where(out, func(o models.Order) bool { return SameDay(o.CreatedAt, day.Time) })
}

func Purchases(list []models.Purchase, f models.PurchaseFilters) []models.Purchase {
	return Entities(list, f.Search, f.Status,
		func(p models.Purchase) []string { return []string{p.Supplier, p.OrderNumber} },
		func(p models.Purchase) string { return string(p.Status) })
}

func Customers(list []models.Customer, f models.CustomerFilters) []models.Customer {
	return Entities(list, f.Search, f.Type,
		func(c models.Customer) []string { return []string{c.Name, c.Phone} },
		func(c models.Customer) string { return string(c.Type) })
}

func Inventory(list []models.InventoryItem, f models.InventoryFilters) []models.InventoryItem {
	return Entities(list, f.Search, f.Category,
		func(i models.InventoryItem) []string { return []string{i.Name} },
		func(i models.InventoryItem) string { return string(i.Category) })
}

// Menu searches name and category; the category selector is exact.
func Menu(list []models.MenuItem, f models.MenuFilters) []models.MenuItem {
	return Entities(list, f.Search, f.Category,
		func(m models.MenuItem) []string { return []string{m.Name, m.Category} },
		func(m models.MenuItem) string { return m.Category })
}

// Staff has two selectors, position and status, both exact.
func Staff(list []models.StaffMember, f models.StaffFilters) []models.StaffMember {
	out := Entities(list, f.Search, f.Position,
		func(s models.StaffMember) []string { return []string{s.Name, s.Phone} },
		func(s models.StaffMember) string { return string(s.Position) })
	return Where(out, func(s models.StaffMember) bool { return MatchesSelector(f.Status, string(s.Status)) })
}

// SameDay compares calendar dates, ignoring time of day and location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ScheduleForDay returns the shifts on day in stored order.
func ScheduleForDay(entries []models.ScheduleEntry, day time.Time) []models.ScheduleEntry {
	return Where(entries, func(e models.ScheduleEntry) bool { return SameDay(e.Date.Time, day) })
}

// WeekDays returns the seven dates of the Sunday-started week containing day.
func WeekDays(day time.Time) []time.Time {
	d := models.NewDate(day).Time
	start := d.AddDate(0, 0, -int(d.Weekday()))
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
