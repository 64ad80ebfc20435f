package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--timezone", "UTC"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDailyJSON(t *testing.T) {
	out, err := run(t, "daily", "2024-01-15")
	if err != nil {
		t.Fatalf("daily: %v\n%s", err, out)
	}
	var report struct {
		TotalOrders  int     `json:"total_orders"`
		TotalRevenue float64 `json:"total_revenue"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if report.TotalOrders != 4 || report.TotalRevenue != 77.25 {
		t.Errorf("report = %+v", report)
	}
}

func TestInventoryCSV(t *testing.T) {
	out, err := run(t, "inventory", "--format", "csv")
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[0], "id,name,") {
		t.Errorf("unexpected csv:\n%s", out)
	}
}

func TestRejectsBadInput(t *testing.T) {
	tests := [][]string{
		{"daily", "not-a-date"},
		{"daily", "2024-01-15", "--format", "pdf"},
		{"inventory", "extra"},
	}
	for _, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}
