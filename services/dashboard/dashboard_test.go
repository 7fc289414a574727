package dashboard

import (
	"context"
	"testing"
	"time"

	bookingRepo "rentora/database/repository/booking"
	clientRepo "rentora/database/repository/client"
	propertyRepo "rentora/database/repository/property"
	"rentora/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	bookingRepo.BookingRepository
	bookings []models.Booking
}

func (f *fakeBookingRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	return f.bookings, nil
}

type fakePropertyRepo struct {
	propertyRepo.PropertyRepository
	properties []models.Property
}

func (f *fakePropertyRepo) GetAll(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	return f.properties, nil
}

type fakeClientRepo struct {
	clientRepo.ClientRepository
	count int64
}

func (f *fakeClientRepo) Count(ctx context.Context) (int64, error) {
	return f.count, nil
}

func day(offset int) time.Time {
	return time.Now().AddDate(0, 0, offset).Truncate(time.Hour)
}

func TestStatsRollup(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b1", PropertyID: "p1", Status: models.BookingStatusConfirmed, CheckIn: day(1), CheckOut: day(4), TotalAmount: 450},
		{ID: "b2", PropertyID: "p1", Status: models.BookingStatusCancelled, CheckIn: day(2), CheckOut: day(5), TotalAmount: 300},
		{ID: "b3", PropertyID: "p2", Status: models.BookingStatusCompleted, CheckIn: day(-10), CheckOut: day(-7), TotalAmount: 600},
	}
	svc := &DefaultDashboardService{
		Bookings: &fakeBookingRepo{bookings: bookings},
		Clients:  &fakeClientRepo{count: 12},
		Properties: &fakePropertyRepo{properties: []models.Property{
			{ID: "p1", Name: "Seaview Cottage"},
			{ID: "p2", Name: "Hillside Villa"},
			{ID: "p3", Name: "City Studio"},
		}},
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalProperties)
	assert.Equal(t, 12, stats.TotalClients)
	assert.Equal(t, 3, stats.TotalBookings)
	// Only b1 holds the calendar with a future check-out.
	assert.Equal(t, 1, stats.ActiveBookings)
	// Cancelled bookings never count toward revenue.
	assert.Equal(t, 1050.0, stats.TotalRevenue)
	assert.Len(t, stats.RecentBookings, 3)

	require.Len(t, stats.PropertyStats, 3)
	byID := make(map[string]PropertyStats)
	for _, ps := range stats.PropertyStats {
		byID[ps.PropertyID] = ps
	}
	assert.Equal(t, 2, byID["p1"].Bookings)
	assert.Equal(t, 450.0, byID["p1"].Revenue)
	assert.Equal(t, 1, byID["p2"].Bookings)
	assert.Equal(t, 600.0, byID["p2"].Revenue)
	assert.Equal(t, 0, byID["p3"].Bookings)
}

func TestStatsRecentBookingsCapped(t *testing.T) {
	var bookings []models.Booking
	for i := 0; i < 8; i++ {
		bookings = append(bookings, models.Booking{
			ID: string(rune('a' + i)), PropertyID: "p1",
			Status: models.BookingStatusConfirmed, CheckIn: day(-i), CheckOut: day(-i + 2),
		})
	}
	svc := &DefaultDashboardService{
		Bookings:   &fakeBookingRepo{bookings: bookings},
		Clients:    &fakeClientRepo{},
		Properties: &fakePropertyRepo{},
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats.RecentBookings, 5)
	assert.Equal(t, "a", stats.RecentBookings[0].ID)
}
