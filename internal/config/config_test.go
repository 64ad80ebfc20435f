package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadSettingsOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := []byte("margin:\n  high: 65\n  medium: 45\nexpiry:\n  days: 3\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if !s.Margin.High.Equal(decimal.NewFromInt(65)) || s.Expiry.Days != 3 {
		t.Errorf("settings = %+v", s)
	}
	if s.Insights.LoyalOrders != 20 || s.Reorder.LeadTimeDays != 3 {
		t.Errorf("defaults lost: %+v", s)
	}
}

func TestLoadSettingsRejectsInvertedCutoffs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("margin:\n  high: 40\n  medium: 60\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("expected error")
	}
}

func TestDefaultSettingsAreValid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Error(err)
	}
	if s, err := LoadSettings(""); err != nil || s.Forecast.Horizon != 7 {
		t.Errorf("LoadSettings(\"\") = %+v, %v", s, err)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("STRICT_STATUS_TRANSITIONS", "true")
	t.Setenv("TIMEZONE", "UTC")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || len(cfg.AllowedOrigins) != 2 || !cfg.StrictStatusTransitions {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DashboardRefresh != "@every 30s" || cfg.NodeID != 1 {
		t.Errorf("defaults: %+v", cfg)
	}

	t.Setenv("TIMEZONE", "Mars/Olympus")
	if _, err := Load(); err == nil {
		t.Error("expected invalid timezone error")
	}
}
