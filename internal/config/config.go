// Package config gathers process configuration from the environment and
// business settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"delizzia_backoffice/internal/rules"
	"delizzia_backoffice/pkg/utils"
)

// AppConfig is read once at startup.
type AppConfig struct {
	Port                    string
	AllowedOrigins          []string
	SeedPath                string
	SettingsPath            string
	LogLevel                string
	LogFile                 string
	DashboardRefresh        string
	StrictStatusTransitions bool
	Location                *time.Location
	NodeID                  int64
}

// Load reads AppConfig from the environment after merging .env, if present.
func Load() (AppConfig, error) {
	if err := utils.LoadDotEnv(); err != nil {
		return AppConfig{}, fmt.Errorf("could not load .env: %w", err)
	}
	tzName := utils.Getenv("TIMEZONE", "America/Guayaquil")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}
	return AppConfig{
		Port:                    utils.Getenv("PORT", "8080"),
		AllowedOrigins:          splitList(utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		SeedPath:                utils.Getenv("SEED_PATH", ""),
		SettingsPath:            utils.Getenv("SETTINGS_PATH", ""),
		LogLevel:                utils.Getenv("LOG_LEVEL", "info"),
		LogFile:                 utils.Getenv("LOG_FILE", ""),
		DashboardRefresh:        utils.Getenv("DASHBOARD_REFRESH", "@every 30s"),
		StrictStatusTransitions: utils.GetenvBool("STRICT_STATUS_TRANSITIONS", false),
		Location:                loc,
		NodeID:                  utils.GetenvInt64("NODE_ID", 1),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Settings are the tunable business thresholds.
type Settings struct {
	Margin   rules.MarginCutoffs     `yaml:"margin" json:"margin"`
	Expiry   rules.ExpiryWindow      `yaml:"expiry" json:"expiry"`
	Insights rules.InsightThresholds `yaml:"insights" json:"insights"`
	Reorder  ReorderSettings         `yaml:"reorder" json:"reorder"`
	Forecast ForecastSettings        `yaml:"forecast" json:"forecast"`
}

// ReorderSettings size restock suggestions.
type ReorderSettings struct {
	LeadTimeDays int `yaml:"lead_time_days" json:"lead_time_days"`
	// UsageWindowDays is how far back movements are averaged into daily usage.
	UsageWindowDays int `yaml:"usage_window_days" json:"usage_window_days"`
}

type ForecastSettings struct {
	HistoryDays int `yaml:"history_days" json:"history_days"`
	Horizon     int `yaml:"horizon_days" json:"horizon_days"`
}

// DefaultSettings match the thresholds the dashboard has always shown.
func DefaultSettings() Settings {
	return Settings{
		Margin:   rules.DefaultMarginCutoffs,
		Expiry:   rules.ExpiryWindow{Days: rules.DefaultExpiringSoonDays},
		Insights: rules.DefaultInsightThresholds,
		Reorder:  ReorderSettings{LeadTimeDays: 3, UsageWindowDays: 14},
		Forecast: ForecastSettings{HistoryDays: 30, Horizon: 7},
	}
}

// LoadSettings overlays the YAML file at path on DefaultSettings.
// An empty path returns the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("could not read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("could not parse settings file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate rejects settings that would make the rules meaningless.
func (s Settings) Validate() error {
	if s.Margin.Medium.GreaterThan(s.Margin.High) {
		return fmt.Errorf("margin.medium (%s) must not exceed margin.high (%s)", s.Margin.Medium, s.Margin.High)
	}
	if s.Expiry.Days < 0 {
		return fmt.Errorf("expiry.days must not be negative")
	}
	if s.Insights.LoyalOrders < 0 || s.Insights.HighValueAverage.LessThan(decimal.Zero) {
		return fmt.Errorf("insight thresholds must not be negative")
	}
	if s.Reorder.LeadTimeDays < 0 || s.Reorder.UsageWindowDays <= 0 {
		return fmt.Errorf("reorder.lead_time_days must be >= 0 and reorder.usage_window_days > 0")
	}
	if s.Forecast.HistoryDays < 2 || s.Forecast.Horizon <= 0 {
		return fmt.Errorf("forecast.history_days must be >= 2 and forecast.horizon_days > 0")
	}
	return nil
}
