package utils

import (
	"fmt"
	"math"
	"time"

	"carrental-backoffice/internal/domain"
)

const millisPerDay = 24 * 60 * 60 * 1000

// ParseDate converts a yyyy-mm-dd formatted string into a time.Time.
// Dates are naive calendar dates; one rental day is a 24h boundary-to-boundary
// span for billing purposes.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd: %w", dateStr, err)
	}
	return t, nil
}

// CalculateRentalCost computes the billable days and total cost for renting
// between start and end at the given per-day rate. Any partial day rounds up
// to a full billable day. The total is days * pricePerDay with no currency
// rounding.
func CalculateRentalCost(start, end time.Time, pricePerDay float64) (int32, float64, error) {
	millis := end.Sub(start).Milliseconds()
	rentalDays := int32(math.Ceil(float64(millis) / millisPerDay))

	if rentalDays <= 0 {
		return 0, 0, &domain.InvalidRangeError{Start: start, End: end}
	}

	return rentalDays, float64(rentalDays) * pricePerDay, nil
}

// DateRange is a half-open interval [Start, End).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// share at least one instant: s1 < e2 && s2 < e1. Ranges that only touch at
// an endpoint do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// HasConflict scans existing ranges for one overlapping [start, end) and
// returns the index of the first match, or -1. Inverted or zero-length
// candidate ranges must be rejected upstream by validation; they are not
// treated as non-conflicting here.
func HasConflict(existing []DateRange, start, end time.Time) int {
	for i, r := range existing {
		if Overlaps(start, end, r.Start, r.End) {
			return i
		}
	}
	return -1
}
