package booking

import (
	"context"
	"testing"

	clientRepo "rentora/database/repository/client"
	"rentora/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fakeBookingRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	out := make([]models.Booking, 0, len(f.byID))
	for _, b := range f.byID {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingRepo) SetStatus(ctx context.Context, id, status string) error {
	b, ok := f.byID[id]
	if !ok {
		return nil
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

type fakeClientRepo struct {
	clientRepo.ClientRepository
	clients map[string]*models.Client
}

func (f *fakeClientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	return f.clients[id], nil
}

func newServiceFixture(bookings ...models.Booking) (*DefaultService, *fakeBookingRepo, *fakeReservationRepo) {
	repo := &fakeBookingRepo{byID: make(map[string]*models.Booking)}
	for i := range bookings {
		b := bookings[i]
		repo.byID[b.ID] = &b
	}
	reservations := newFakeReservationRepo()
	svc := &DefaultService{
		Bookings: repo,
		Clients: &fakeClientRepo{clients: map[string]*models.Client{
			"client-1": {ID: "client-1", FirstName: "Ada", LastName: "Moreno"},
		}},
		Properties: &fakePropertyRepo{properties: map[string]*models.Property{
			"prop-1": {ID: "prop-1", Name: "Seaview Cottage", Price: 150},
		}},
		Reservations: reservations,
	}
	return svc, repo, reservations
}

func TestListEnrichesBookings(t *testing.T) {
	svc, _, _ := newServiceFixture(activeBooking("b1", "prop-1", 3, 8))

	details, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.NotNil(t, details[0].Client)
	assert.Equal(t, "Ada", details[0].Client.FirstName)
	require.NotNil(t, details[0].Property)
	assert.Equal(t, "Seaview Cottage", details[0].Property.Name)
}

func TestListToleratesMissingReferences(t *testing.T) {
	orphan := activeBooking("b1", "prop-gone", 3, 8)
	orphan.ClientID = "client-gone"
	svc, _, _ := newServiceFixture(orphan)

	details, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Nil(t, details[0].Client)
	assert.Nil(t, details[0].Property)
}

func TestGetUnknownBooking(t *testing.T) {
	svc, _, _ := newServiceFixture()

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, be.Code)
}

func TestCancelRetainsBookingAndReleasesNights(t *testing.T) {
	svc, repo, reservations := newServiceFixture(activeBooking("b1", "prop-1", 3, 8))
	reservations.hold("prop-1", "b1", "2026-09-03", "2026-09-04")

	require.NoError(t, svc.Cancel(context.Background(), "b1"))

	b, err := repo.GetByID(context.Background(), "b1")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, models.BookingStatusCancelled, b.Status)
	assert.False(t, b.HoldsCalendar())
	assert.Contains(t, reservations.releaseCalls, "b1")
}

func TestCancelUnknownBooking(t *testing.T) {
	svc, _, _ := newServiceFixture()

	err := svc.Cancel(context.Background(), "missing")
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, be.Code)
}

func TestDeleteRemovesBookingAndReleasesNights(t *testing.T) {
	svc, repo, reservations := newServiceFixture(activeBooking("b1", "prop-1", 3, 8))
	reservations.hold("prop-1", "b1", "2026-09-03")

	require.NoError(t, svc.Delete(context.Background(), "b1"))

	b, err := repo.GetByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Nil(t, b)
	assert.Contains(t, reservations.releaseCalls, "b1")
}
