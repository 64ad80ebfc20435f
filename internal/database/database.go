package database

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/rules"
	"delizzia_backoffice/pkg/utils"
)

//go:embed seed.yaml
var defaultSeed []byte

// Dataset is the full set of records the back office starts with.
type Dataset struct {
	MenuItems []models.MenuItem      `yaml:"menu_items"`
	Inventory []models.InventoryItem `yaml:"inventory"`
	Customers []models.Customer      `yaml:"customers"`
	Orders    []models.Order         `yaml:"orders"`
	Purchases []models.Purchase      `yaml:"purchases"`
	Staff     []models.StaffMember   `yaml:"staff"`
	Schedule  []models.ScheduleEntry `yaml:"schedule"`
}

var DB *Dataset

// InitDB loads the seed dataset. An empty path uses the built-in demo data.
func InitDB(seedPath string) error {
	ds, err := LoadSeed(seedPath)
	if err != nil {
		return err
	}
	DB = ds
	utils.LogInfo("Seed data loaded", map[string]interface{}{
		"source":     seedSource(seedPath),
		"menu_items": len(ds.MenuItems),
		"inventory":  len(ds.Inventory),
		"customers":  len(ds.Customers),
		"orders":     len(ds.Orders),
		"purchases":  len(ds.Purchases),
		"staff":      len(ds.Staff),
		"schedule":   len(ds.Schedule),
	})
	return nil
}

func seedSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// LoadSeed reads a YAML dataset from path, or the embedded one when path is empty.
func LoadSeed(path string) (*Dataset, error) {
	data := defaultSeed
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read seed file %s: %w", path, err)
		}
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML dataset and fills in shift hours left blank.
func ParseSeed(data []byte) (*Dataset, error) {
	ds := &Dataset{}
	if err := yaml.Unmarshal(data, ds); err != nil {
		return nil, fmt.Errorf("could not parse seed data: %w", err)
	}
	for i, e := range ds.Schedule {
		if !e.Hours.IsZero() {
			continue
		}
		hours, err := rules.ScheduleHours(e.StartTime, e.EndTime)
		if err != nil {
			return nil, fmt.Errorf("schedule entry %s: %w", e.ID, err)
		}
		ds.Schedule[i].Hours = hours
	}
	return ds, nil
}

// GetDB returns the loaded dataset, or an empty one before InitDB.
func GetDB() *Dataset {
	if DB == nil {
		return &Dataset{}
	}
	return DB
}
