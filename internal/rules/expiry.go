package rules

import (
	"math"
	"time"
)

// ExpiryState describes how close an item is to its expiry date.
type ExpiryState string

const (
	ExpiryNone         ExpiryState = "none"
	ExpiryExpiringSoon ExpiryState = "expiring_soon"
	ExpiryExpired      ExpiryState = "expired"
)

// DefaultExpiringSoonDays is the window used by ExpiryStateFor.
const DefaultExpiringSoonDays = 7

// ExpiryWindow holds the number of days ahead that counts as expiring soon.
type ExpiryWindow struct {
	Days int `yaml:"days" json:"days"`
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil is the whole number of calendar days from today to target.
func DaysUntil(target, today time.Time) int {
	diff := dateOnly(target).Sub(dateOnly(today))
	return int(math.Ceil(diff.Hours() / 24))
}

// State classifies expiry relative to today. A date equal to today is
// neither expired nor expiring soon.
func (w ExpiryWindow) State(expiry *time.Time, today time.Time) ExpiryState {
	if expiry == nil || expiry.IsZero() {
		return ExpiryNone
	}
	if dateOnly(*expiry).Before(dateOnly(today)) {
		return ExpiryExpired
	}
	days := DaysUntil(*expiry, today)
	if days > 0 && days <= w.Days {
		return ExpiryExpiringSoon
	}
	return ExpiryNone
}

// ExpiryStateFor uses a seven day window.
func ExpiryStateFor(expiry *time.Time, today time.Time) ExpiryState {
	return ExpiryWindow{Days: DefaultExpiringSoonDays}.State(expiry, today)
}
