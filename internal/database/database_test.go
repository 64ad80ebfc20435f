package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/models"
)

func TestEmbeddedSeed(t *testing.T) {
	ds, err := LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if len(ds.MenuItems) != 6 || len(ds.Inventory) != 5 || len(ds.Orders) != 4 || len(ds.Schedule) != 3 {
		t.Fatalf("unexpected counts: %d menu, %d inventory, %d orders, %d shifts",
			len(ds.MenuItems), len(ds.Inventory), len(ds.Orders), len(ds.Schedule))
	}

	cheese := ds.Inventory[0]
	if !cheese.UnitCost.Equal(decimal.RequireFromString("8.5")) || cheese.ExpiryDate == nil {
		t.Errorf("cheese decoded as %+v", cheese)
	}
	if got := cheese.ExpiryDate.String(); got != "2024-01-25" {
		t.Errorf("expiry = %s", got)
	}
	if ds.Inventory[1].ExpiryDate != nil {
		t.Error("dough should have no expiry date")
	}
	if ds.Staff[3].Status != models.StaffOff {
		t.Errorf("staff status = %q", ds.Staff[3].Status)
	}
	if !ds.Schedule[0].Hours.Equal(decimal.NewFromInt(8)) {
		t.Errorf("hours = %s, want 8", ds.Schedule[0].Hours)
	}
	if ds.Orders[0].CreatedAt.Hour() != 14 || len(ds.Orders[0].Items) != 2 {
		t.Errorf("order decoded as %+v", ds.Orders[0])
	}
}

func TestLoadSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := []byte(`
schedule:
  - id: "9"
    staff_id: "1"
    staff_name: Night Shift
    position: limpieza
    date: "2024-01-15"
    start_time: "22:00"
    end_time: "02:30"
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	ds, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if !ds.Schedule[0].Hours.Equal(decimal.RequireFromString("4.5")) {
		t.Errorf("hours = %s, want 4.5", ds.Schedule[0].Hours)
	}
}

func TestLoadSeedErrors(t *testing.T) {
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := ParseSeed([]byte("schedule:\n  - start_time: late\n    end_time: \"10:00\"\n")); err == nil {
		t.Error("expected error for bad shift time")
	}
}
