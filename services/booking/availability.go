package booking

import (
	"context"
	"time"

	bookingRepo "rentora/database/repository/booking"
	"rentora/models"
)

// AvailabilityResult is the outcome of a conflict scan for one property and
// date range.
type AvailabilityResult struct {
	Available   bool            `json:"available"`
	Conflicting *models.Booking `json:"conflictingBooking,omitempty"`
}

// AvailabilityChecker decides whether a date range can be booked on a property.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, propertyID string, checkIn, checkOut time.Time, excludeBookingID string) (AvailabilityResult, error)
}

// DefaultAvailabilityChecker scans a property's non-cancelled bookings for
// interval overlap.
type DefaultAvailabilityChecker struct {
	Repo bookingRepo.BookingRepository
}

// CheckAvailability fetches all non-cancelled bookings for the property and
// tests each against the requested [checkIn, checkOut) interval. The first
// overlap found is reported; candidates arrive sorted ascending by check-in,
// so the earliest conflicting booking wins. When excludeBookingID is set,
// that booking is skipped so an edit never conflicts with itself.
//
// Ordering of checkIn/checkOut is the caller's responsibility; an inverted
// range simply matches nothing.
func (c *DefaultAvailabilityChecker) CheckAvailability(ctx context.Context, propertyID string, checkIn, checkOut time.Time, excludeBookingID string) (AvailabilityResult, error) {
	candidates, err := c.Repo.GetActiveByPropertyID(ctx, propertyID)
	if err != nil {
		return AvailabilityResult{}, NewCheckFailed(err)
	}

	for i := range candidates {
		if excludeBookingID != "" && candidates[i].ID == excludeBookingID {
			continue
		}
		if rangesOverlap(checkIn, checkOut, candidates[i].CheckIn, candidates[i].CheckOut) {
			return AvailabilityResult{Available: false, Conflicting: &candidates[i]}, nil
		}
	}
	return AvailabilityResult{Available: true}, nil
}

// rangesOverlap reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) overlap: aStart < bEnd && bStart < aEnd. Adjacent intervals
// sharing a boundary do not overlap, so a check-out day can be the next
// booking's check-in day.
func rangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
