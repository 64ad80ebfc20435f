package rules

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const clockLayout = "15:04"

// WeeklySalary is hourlyRate × hoursThisWeek rounded to cents.
func WeeklySalary(hourlyRate, hoursThisWeek decimal.Decimal) decimal.Decimal {
	return hourlyRate.Mul(hoursThisWeek).Round(2)
}

// ScheduleHours is the length of a shift given HH:MM start and end times.
// An end earlier than the start is an overnight shift and wraps past midnight.
func ScheduleHours(start, end string) (decimal.Decimal, error) {
	s, err := time.Parse(clockLayout, start)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: start time %q must be HH:MM", ErrInvalidInput, start)
	}
	e, err := time.Parse(clockLayout, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: end time %q must be HH:MM", ErrInvalidInput, end)
	}
	d := e.Sub(s)
	if d < 0 {
		d += 24 * time.Hour
	}
	minutes := decimal.NewFromInt(int64(d / time.Minute))
	return minutes.Div(decimal.NewFromInt(60)).Round(2), nil
}

// shiftSpan returns the shift as minutes from midnight, end exclusive.
func shiftSpan(start, end string) (int, int, error) {
	s, err := time.Parse(clockLayout, start)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: start time %q must be HH:MM", ErrInvalidInput, start)
	}
	hours, err := ScheduleHours(start, end)
	if err != nil {
		return 0, 0, err
	}
	from := s.Hour()*60 + s.Minute()
	return from, from + int(hours.Mul(decimal.NewFromInt(60)).IntPart()), nil
}

// ShiftsOverlap reports whether two shifts on the same date share any minute.
// Touching shifts (one ends when the other starts) do not overlap.
func ShiftsOverlap(aStart, aEnd, bStart, bEnd string) (bool, error) {
	af, at, err := shiftSpan(aStart, aEnd)
	if err != nil {
		return false, err
	}
	bf, bt, err := shiftSpan(bStart, bEnd)
	if err != nil {
		return false, err
	}
	return af < bt && bf < at, nil
}
