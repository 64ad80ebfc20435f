package services

import (
	"errors"
	"fmt"
	"time"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/repositories"
)

var (
	// ErrStatusTransition is returned when strict transitions forbid a status change.
	ErrStatusTransition = errors.New("status transition not allowed")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrDateFormat       = errors.New("invalid date format, please use YYYY-MM-DD")
)

// Clock supplies the current time in the restaurant's location.
type Clock interface {
	Now() time.Time
}

type systemClock struct{ loc *time.Location }

// NewSystemClock returns a Clock reading the wall clock in loc (UTC when nil).
func NewSystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time { return time.Now().In(c.loc) }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// StatusPolicy decides whether a record may leave its current status.
// The permissive policy allows any change, including out of final states.
type StatusPolicy struct {
	Strict bool
}

type lifecycleStatus interface {
	~string
	IsFinal() bool
	IsValid() bool
}

func checkTransition[S lifecycleStatus](p StatusPolicy, from, to S) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(to))
	}
	if p.Strict && from.IsFinal() && from != to {
		return fmt.Errorf("%w: %s is final", ErrStatusTransition, string(from))
	}
	return nil
}

// OrderGuard enforces the policy for an order moving to status.
func (p StatusPolicy) OrderGuard(status models.OrderStatus) repositories.StatusGuard[models.Order] {
	return func(current models.Order) error {
		return checkTransition(p, current.Status, status)
	}
}

// PurchaseGuard enforces the policy for a purchase moving to status.
func (p StatusPolicy) PurchaseGuard(status models.PurchaseStatus) repositories.StatusGuard[models.Purchase] {
	return func(current models.Purchase) error {
		return checkTransition(p, current.Status, status)
	}
}

// nextNumber builds prefix-YYYYMMDD-NNNN, picking the first sequence not yet taken.
func nextNumber(prefix string, day time.Time, taken func(string) bool) string {
	stem := fmt.Sprintf("%s-%s-", prefix, day.Format("20060102"))
	for seq := 1; ; seq++ {
		candidate := fmt.Sprintf("%s%04d", stem, seq)
		if !taken(candidate) {
			return candidate
		}
	}
}

// parseDay parses a YYYY-MM-DD query value, defaulting to today's date.
func parseDay(s string, clock Clock) (time.Time, error) {
	if s == "" {
		return models.NewDate(clock.Now()).Time, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrDateFormat, err)
	}
	return d.Time, nil
}
