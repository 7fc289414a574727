package booking

import (
	"math"
	"time"
)

// NightsBetween returns the number of billable nights between check-in and
// check-out: ceil((checkOut - checkIn) / 24h). Zero or negative when the
// range is empty or inverted.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// ComputeTotal calculates nights × nightlyPrice rounded to 2 decimal places.
// The second return value is false when the range yields no billable nights
// (inverted or empty mid-edit); the caller keeps its prior amount.
func ComputeTotal(nightlyPrice float64, checkIn, checkOut time.Time) (float64, bool) {
	nights := NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return 0, false
	}
	total := float64(nights) * nightlyPrice
	return math.Round(total*100) / 100, true
}

// nightKeys enumerates the calendar nights occupied by [checkIn, checkOut)
// as "2006-01-02" strings, one per night held. The check-out date itself is
// excluded, matching the half-open interval rule. A non-empty range always
// holds at least the check-in date, so a stay within a single calendar day
// still claims its night.
func nightKeys(checkIn, checkOut time.Time) []string {
	start := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)

	var nights []string
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d.Format("2006-01-02"))
	}
	if len(nights) == 0 && checkIn.Before(checkOut) {
		nights = append(nights, start.Format("2006-01-02"))
	}
	return nights
}
