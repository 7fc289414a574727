package booking

import (
	"context"
	"errors"
	"testing"

	bookingRepo "rentora/database/repository/booking"
	"rentora/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingRepo overrides just the methods a test needs; calling anything
// else panics through the embedded nil interface.
type fakeBookingRepo struct {
	bookingRepo.BookingRepository

	active    []models.Booking
	activeErr error

	byID      map[string]*models.Booking
	created   []*models.Booking
	createErr error
	updateErr error
}

func (f *fakeBookingRepo) GetActiveByPropertyID(ctx context.Context, propertyID string) ([]models.Booking, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	var out []models.Booking
	for _, b := range f.active {
		if b.PropertyID == propertyID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if b, ok := f.byID[id]; ok {
		copy := *b
		return &copy, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byID == nil {
		f.byID = make(map[string]*models.Booking)
	}
	copy := *booking
	f.byID[booking.ID] = &copy
	f.created = append(f.created, &copy)
	return nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	copy := *booking
	f.byID[booking.ID] = &copy
	return nil
}

func activeBooking(id, propertyID string, checkInDay, checkOutDay int) models.Booking {
	return models.Booking{
		ID:         id,
		PropertyID: propertyID,
		ClientID:   "client-1",
		CheckIn:    date(checkInDay),
		CheckOut:   date(checkOutDay),
		Status:     models.BookingStatusConfirmed,
	}
}

func TestCheckAvailabilityNoBookings(t *testing.T) {
	checker := &DefaultAvailabilityChecker{Repo: &fakeBookingRepo{}}

	result, err := checker.CheckAvailability(context.Background(), "prop-1", date(1), date(5), "")
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Nil(t, result.Conflicting)
}

func TestCheckAvailabilityDetectsOverlap(t *testing.T) {
	repo := &fakeBookingRepo{active: []models.Booking{activeBooking("b1", "prop-1", 3, 8)}}
	checker := &DefaultAvailabilityChecker{Repo: repo}

	cases := []struct {
		name              string
		checkIn, checkOut int
		wantAvailable     bool
	}{
		{"identical range", 3, 8, false},
		{"request contains booking", 1, 10, false},
		{"booking contains request", 4, 6, false},
		{"overlaps start", 1, 4, false},
		{"overlaps end", 7, 12, false},
		{"entirely before", 1, 3, true},
		{"entirely after", 8, 12, true},
		{"adjacent before shares boundary", 1, 3, true},
		{"adjacent after shares boundary", 8, 10, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := checker.CheckAvailability(context.Background(), "prop-1", date(tc.checkIn), date(tc.checkOut), "")
			require.NoError(t, err)
			assert.Equal(t, tc.wantAvailable, result.Available)
			if !tc.wantAvailable {
				require.NotNil(t, result.Conflicting)
				assert.Equal(t, "b1", result.Conflicting.ID)
			}
		})
	}
}

func TestCheckAvailabilityOverlapIsSymmetric(t *testing.T) {
	repo := &fakeBookingRepo{active: []models.Booking{activeBooking("b1", "prop-1", 5, 10)}}
	checker := &DefaultAvailabilityChecker{Repo: repo}

	a, err := checker.CheckAvailability(context.Background(), "prop-1", date(8), date(12), "")
	require.NoError(t, err)

	repo.active = []models.Booking{activeBooking("b1", "prop-1", 8, 12)}
	b, err := checker.CheckAvailability(context.Background(), "prop-1", date(5), date(10), "")
	require.NoError(t, err)

	assert.Equal(t, a.Available, b.Available)
	assert.False(t, a.Available)
}

func TestCheckAvailabilityIgnoresOtherProperties(t *testing.T) {
	repo := &fakeBookingRepo{active: []models.Booking{activeBooking("b1", "prop-2", 3, 8)}}
	checker := &DefaultAvailabilityChecker{Repo: repo}

	result, err := checker.CheckAvailability(context.Background(), "prop-1", date(3), date(8), "")
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheckAvailabilityExcludesOwnBooking(t *testing.T) {
	repo := &fakeBookingRepo{active: []models.Booking{activeBooking("b1", "prop-1", 3, 8)}}
	checker := &DefaultAvailabilityChecker{Repo: repo}

	// Editing b1 over its own dates must not self-conflict.
	result, err := checker.CheckAvailability(context.Background(), "prop-1", date(3), date(8), "b1")
	require.NoError(t, err)
	assert.True(t, result.Available)

	// But another booking in range still conflicts.
	repo.active = append(repo.active, activeBooking("b2", "prop-1", 6, 9))
	result, err = checker.CheckAvailability(context.Background(), "prop-1", date(3), date(8), "b1")
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, "b2", result.Conflicting.ID)
}

func TestCheckAvailabilityReportsEarliestConflict(t *testing.T) {
	// Candidates arrive sorted ascending by check-in.
	repo := &fakeBookingRepo{active: []models.Booking{
		activeBooking("b1", "prop-1", 2, 5),
		activeBooking("b2", "prop-1", 6, 9),
	}}
	checker := &DefaultAvailabilityChecker{Repo: repo}

	result, err := checker.CheckAvailability(context.Background(), "prop-1", date(4), date(8), "")
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, "b1", result.Conflicting.ID)
}

func TestCheckAvailabilityInvertedRangeMatchesNothing(t *testing.T) {
	repo := &fakeBookingRepo{active: []models.Booking{activeBooking("b1", "prop-1", 3, 8)}}
	checker := &DefaultAvailabilityChecker{Repo: repo}

	result, err := checker.CheckAvailability(context.Background(), "prop-1", date(8), date(3), "")
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheckAvailabilityStorageFailure(t *testing.T) {
	repo := &fakeBookingRepo{activeErr: errors.New("connection reset")}
	checker := &DefaultAvailabilityChecker{Repo: repo}

	_, err := checker.CheckAvailability(context.Background(), "prop-1", date(1), date(5), "")
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeAvailabilityCheckFailed, be.Code)
}
