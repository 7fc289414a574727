package booking

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	propertyRepo "rentora/database/repository/property"
	reservationRepo "rentora/database/repository/reservation"
	"rentora/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSessionStore struct {
	sessions map[string]*models.BookingEditSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*models.BookingEditSession)}
}

func (m *memSessionStore) Save(ctx context.Context, session *models.BookingEditSession) error {
	cp := *session
	m.sessions[session.ID] = &cp
	return nil
}

func (m *memSessionStore) Get(ctx context.Context, id string) (*models.BookingEditSession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (m *memSessionStore) Delete(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// fakeReservationRepo mimics the unique (propertyId, night) index with an
// in-memory calendar keyed by "propertyID/night".
type fakeReservationRepo struct {
	cal          map[string]string // "propertyID/night" -> bookingID
	syncErr      error
	releaseCalls []string
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{cal: make(map[string]string)}
}

func calKey(propertyID, night string) string { return propertyID + "/" + night }

func (f *fakeReservationRepo) hold(propertyID, bookingID string, nights ...string) {
	for _, n := range nights {
		f.cal[calKey(propertyID, n)] = bookingID
	}
}

func (f *fakeReservationRepo) Sync(ctx context.Context, propertyID, bookingID string, nights []string) error {
	if f.syncErr != nil {
		return f.syncErr
	}
	for _, n := range nights {
		if holder, ok := f.cal[calKey(propertyID, n)]; ok && holder != bookingID {
			return reservationRepo.ErrNightConflict
		}
	}
	want := make(map[string]bool, len(nights))
	for _, n := range nights {
		want[n] = true
		f.cal[calKey(propertyID, n)] = bookingID
	}
	for key, holder := range f.cal {
		if holder != bookingID {
			continue
		}
		prop, night, _ := strings.Cut(key, "/")
		if prop != propertyID || !want[night] {
			delete(f.cal, key)
		}
	}
	return nil
}

func (f *fakeReservationRepo) Release(ctx context.Context, bookingID string) error {
	f.releaseCalls = append(f.releaseCalls, bookingID)
	for key, holder := range f.cal {
		if holder == bookingID {
			delete(f.cal, key)
		}
	}
	return nil
}

func (f *fakeReservationRepo) NightsHeld(ctx context.Context, bookingID string) (string, []string, error) {
	var propertyID string
	var nights []string
	for key, holder := range f.cal {
		if holder != bookingID {
			continue
		}
		prop, night, _ := strings.Cut(key, "/")
		propertyID = prop
		nights = append(nights, night)
	}
	sort.Strings(nights)
	return propertyID, nights, nil
}

type fakePropertyRepo struct {
	propertyRepo.PropertyRepository
	properties map[string]*models.Property
}

func (f *fakePropertyRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	return f.properties[id], nil
}

type sessionFixture struct {
	svc          *DefaultSessionService
	store        *memSessionStore
	bookings     *fakeBookingRepo
	reservations *fakeReservationRepo
}

func newSessionFixture(active ...models.Booking) *sessionFixture {
	bookings := &fakeBookingRepo{
		active: active,
		byID:   make(map[string]*models.Booking),
	}
	for i := range active {
		b := active[i]
		bookings.byID[b.ID] = &b
	}
	store := newMemSessionStore()
	reservations := newFakeReservationRepo()
	svc := &DefaultSessionService{
		Store:      store,
		Checker:    &DefaultAvailabilityChecker{Repo: bookings},
		Bookings:   bookings,
		Properties: &fakePropertyRepo{properties: map[string]*models.Property{
			"prop-1": {ID: "prop-1", Name: "Seaview Cottage", Price: 150},
			"prop-2": {ID: "prop-2", Name: "Harbour Loft", Price: 200},
		}},
		Reservations: reservations,
	}
	return &sessionFixture{svc: svc, store: store, bookings: bookings, reservations: reservations}
}

func strPtr(s string) *string { return &s }

func TestOpenSessionForCreate(t *testing.T) {
	f := newSessionFixture()

	session, err := f.svc.Open(context.Background(), "admin-1", "")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Empty(t, session.BookingID)
	assert.Equal(t, models.SessionStateEditing, session.State)
	assert.Equal(t, "admin-1", session.CreatedBy)

	saved, err := f.store.Get(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
}

func TestOpenSessionSeededFromBooking(t *testing.T) {
	existing := activeBooking("b1", "prop-1", 3, 8)
	existing.TotalAmount = 750
	existing.Notes = "late arrival"
	f := newSessionFixture(existing)

	session, err := f.svc.Open(context.Background(), "admin-1", "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", session.BookingID)
	assert.Equal(t, "prop-1", session.PropertyID)
	assert.Equal(t, date(3), session.CheckIn)
	assert.Equal(t, date(8), session.CheckOut)
	assert.Equal(t, 750.0, session.TotalAmount)
	assert.Equal(t, "late arrival", session.Notes)
	assert.Equal(t, models.SessionStateEditing, session.State)
}

func TestOpenSessionUnknownBooking(t *testing.T) {
	f := newSessionFixture()

	_, err := f.svc.Open(context.Background(), "admin-1", "missing")
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, be.Code)
}

func TestUpdateBlocksOnConflictButKeepsEditing(t *testing.T) {
	f := newSessionFixture(activeBooking("b1", "prop-1", 3, 8))
	session, err := f.svc.Open(context.Background(), "admin-1", "")
	require.NoError(t, err)

	in, out := date(4), date(6)
	session, err = f.svc.Update(context.Background(), session.ID, models.BookingEdit{
		PropertyID: strPtr("prop-1"),
		CheckIn:    &in,
		CheckOut:   &out,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionStateBlocked, session.State)
	require.NotNil(t, session.Conflict)
	assert.Equal(t, "b1", session.Conflict.ID)

	// A blocked session accepts further edits; moving the dates clears it.
	in, out = date(10), date(12)
	session, err = f.svc.Update(context.Background(), session.ID, models.BookingEdit{
		CheckIn:  &in,
		CheckOut: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionStateEditing, session.State)
	assert.Nil(t, session.Conflict)
}

func TestUpdateRecomputesTotalWhenClear(t *testing.T) {
	f := newSessionFixture()
	session, err := f.svc.Open(context.Background(), "admin-1", "")
	require.NoError(t, err)

	in, out := date(1), date(4)
	session, err = f.svc.Update(context.Background(), session.ID, models.BookingEdit{
		PropertyID: strPtr("prop-1"),
		CheckIn:    &in,
		CheckOut:   &out,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionStateEditing, session.State)
	assert.Equal(t, 450.0, session.TotalAmount) // 3 nights at 150
}

func TestUpdateWithoutDateChangeSkipsCheck(t *testing.T) {
	f := newSessionFixture()
	session, err := f.svc.Open(context.Background(), "admin-1", "")
	require.NoError(t, err)

	f.bookings.activeErr = errors.New("unreachable")
	session, err = f.svc.Update(context.Background(), session.ID, models.BookingEdit{
		Notes: strPtr("ground floor please"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ground floor please", session.Notes)
}

func TestUpdateUnknownSession(t *testing.T) {
	f := newSessionFixture()

	_, err := f.svc.Update(context.Background(), "missing", models.BookingEdit{})
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, be.Code)
}

func commitReadySession(t *testing.T, f *sessionFixture, checkInDay, checkOutDay int) *models.BookingEditSession {
	t.Helper()
	session, err := f.svc.Open(context.Background(), "admin-1", "")
	require.NoError(t, err)
	in, out := date(checkInDay), date(checkOutDay)
	session, err = f.svc.Update(context.Background(), session.ID, models.BookingEdit{
		PropertyID: strPtr("prop-1"),
		ClientID:   strPtr("client-1"),
		CheckIn:    &in,
		CheckOut:   &out,
	})
	require.NoError(t, err)
	return session
}

func TestCommitCreatesBooking(t *testing.T) {
	f := newSessionFixture()
	session := commitReadySession(t, f, 1, 4)

	created, err := f.svc.Commit(context.Background(), session.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "prop-1", created.PropertyID)
	assert.Equal(t, models.BookingStatusPending, created.Status)
	assert.Equal(t, 450.0, created.TotalAmount)

	// The nights are held under the new booking's ID.
	prop, nights, err := f.reservations.NightsHeld(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "prop-1", prop)
	assert.Equal(t, []string{"2026-09-01", "2026-09-02", "2026-09-03"}, nights)

	saved, err := f.store.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStateCommitted, saved.State)
	assert.Equal(t, created.ID, saved.BookingID)
}

func TestCommitUpdatesExistingBooking(t *testing.T) {
	existing := activeBooking("b1", "prop-1", 3, 8)
	f := newSessionFixture(existing)

	session, err := f.svc.Open(context.Background(), "admin-1", "b1")
	require.NoError(t, err)

	// Shift within its own original window; no self-conflict.
	in, out := date(4), date(9)
	_, err = f.svc.Update(context.Background(), session.ID, models.BookingEdit{
		CheckIn:  &in,
		CheckOut: &out,
	})
	require.NoError(t, err)

	updated, err := f.svc.Commit(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "b1", updated.ID)
	assert.Equal(t, date(4), updated.CheckIn)
	assert.Equal(t, date(9), updated.CheckOut)
}

func TestCommitRejectsInvertedDates(t *testing.T) {
	f := newSessionFixture()
	session, err := f.svc.Open(context.Background(), "admin-1", "")
	require.NoError(t, err)
	in, out := date(9), date(4)
	_, err = f.svc.Update(context.Background(), session.ID, models.BookingEdit{
		PropertyID: strPtr("prop-1"),
		ClientID:   strPtr("client-1"),
		CheckIn:    &in,
		CheckOut:   &out,
	})
	require.NoError(t, err)

	_, err = f.svc.Commit(context.Background(), session.ID)
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidDateRange, be.Code)
}

func TestCommitRequiresClientAndProperty(t *testing.T) {
	f := newSessionFixture()
	session, err := f.svc.Open(context.Background(), "admin-1", "")
	require.NoError(t, err)

	_, err = f.svc.Commit(context.Background(), session.ID)
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidInput, be.Code)
}

func TestCommitBlocksOnConflict(t *testing.T) {
	f := newSessionFixture()
	session := commitReadySession(t, f, 1, 4)

	// Another booking lands on the same dates before commit.
	f.bookings.active = append(f.bookings.active, activeBooking("rival", "prop-1", 2, 6))

	_, err := f.svc.Commit(context.Background(), session.ID)
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeAvailabilityConflict, be.Code)
	require.NotNil(t, be.Conflict)
	assert.Equal(t, "rival", be.Conflict.ID)

	saved, err := f.store.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStateBlocked, saved.State)
	assert.Empty(t, f.bookings.created)
}

func TestCommitLosesReservationRace(t *testing.T) {
	f := newSessionFixture()
	session := commitReadySession(t, f, 1, 4)

	// The availability check passes but another commit grabs the nights first.
	f.reservations.syncErr = reservationRepo.ErrNightConflict

	_, err := f.svc.Commit(context.Background(), session.ID)
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeAvailabilityConflict, be.Code)

	saved, err := f.store.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStateBlocked, saved.State)
	assert.Empty(t, f.bookings.created)
}

func TestCommitRollsBackNightsWhenPersistFails(t *testing.T) {
	f := newSessionFixture()
	session := commitReadySession(t, f, 1, 4)

	f.bookings.createErr = errors.New("write concern failed")

	_, err := f.svc.Commit(context.Background(), session.ID)
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodePersistenceFailed, be.Code)

	// The claimed nights were released again.
	assert.Len(t, f.reservations.releaseCalls, 1)
	assert.Empty(t, f.reservations.cal)
}

func TestCommitMovesNightsWhenPropertyChanges(t *testing.T) {
	existing := activeBooking("b1", "prop-1", 1, 4)
	f := newSessionFixture(existing)
	f.reservations.hold("prop-1", "b1", "2026-09-01", "2026-09-02", "2026-09-03")

	session, err := f.svc.Open(context.Background(), "admin-1", "b1")
	require.NoError(t, err)
	_, err = f.svc.Update(context.Background(), session.ID, models.BookingEdit{
		PropertyID: strPtr("prop-2"),
	})
	require.NoError(t, err)

	_, err = f.svc.Commit(context.Background(), session.ID)
	require.NoError(t, err)

	// The hold follows the booking to its new property.
	prop, nights, err := f.reservations.NightsHeld(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "prop-2", prop)
	assert.Equal(t, []string{"2026-09-01", "2026-09-02", "2026-09-03"}, nights)

	// Nothing lingers on the old property: the same dates there are free
	// for a fresh booking.
	f.bookings.active = nil
	second := commitReadySession(t, f, 1, 4)
	created, err := f.svc.Commit(context.Background(), second.ID)
	require.NoError(t, err)
	prop, nights, err = f.reservations.NightsHeld(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "prop-1", prop)
	assert.Len(t, nights, 3)
}

func TestCommitRestoresPriorNightsWhenUpdateFails(t *testing.T) {
	existing := activeBooking("b1", "prop-1", 1, 4)
	f := newSessionFixture(existing)
	f.reservations.hold("prop-1", "b1", "2026-09-01", "2026-09-02", "2026-09-03")

	session, err := f.svc.Open(context.Background(), "admin-1", "b1")
	require.NoError(t, err)
	_, err = f.svc.Update(context.Background(), session.ID, models.BookingEdit{
		PropertyID: strPtr("prop-2"),
	})
	require.NoError(t, err)

	f.bookings.updateErr = errors.New("write concern failed")

	_, err = f.svc.Commit(context.Background(), session.ID)
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodePersistenceFailed, be.Code)

	// The rollback put the hold back on the property it came from.
	prop, nights, err := f.reservations.NightsHeld(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "prop-1", prop)
	assert.Equal(t, []string{"2026-09-01", "2026-09-02", "2026-09-03"}, nights)
}

func TestCommitCancellationReleasesNights(t *testing.T) {
	existing := activeBooking("b1", "prop-1", 3, 8)
	f := newSessionFixture(existing)
	f.reservations.hold("prop-1", "b1", "2026-09-03", "2026-09-04")

	session, err := f.svc.Open(context.Background(), "admin-1", "b1")
	require.NoError(t, err)
	_, err = f.svc.Update(context.Background(), session.ID, models.BookingEdit{
		Status: strPtr(models.BookingStatusCancelled),
	})
	require.NoError(t, err)

	// Even with the calendar fully booked elsewhere, cancelling never
	// runs an availability check.
	f.bookings.activeErr = errors.New("unreachable")

	updated, err := f.svc.Commit(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, updated.Status)
	assert.Contains(t, f.reservations.releaseCalls, "b1")
	_, nights, err := f.reservations.NightsHeld(context.Background(), "b1")
	require.NoError(t, err)
	assert.Empty(t, nights)
}

func TestCommitTwiceFails(t *testing.T) {
	f := newSessionFixture()
	session := commitReadySession(t, f, 1, 4)

	_, err := f.svc.Commit(context.Background(), session.ID)
	require.NoError(t, err)

	_, err = f.svc.Commit(context.Background(), session.ID)
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeSessionClosed, be.Code)
}

func TestAbortDiscardsSession(t *testing.T) {
	f := newSessionFixture()
	session, err := f.svc.Open(context.Background(), "admin-1", "")
	require.NoError(t, err)

	require.NoError(t, f.svc.Abort(context.Background(), session.ID))

	saved, err := f.store.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Nil(t, saved)

	// Aborting an already-gone session is a no-op.
	require.NoError(t, f.svc.Abort(context.Background(), session.ID))
}

func TestAbortCommittedSessionFails(t *testing.T) {
	f := newSessionFixture()
	session := commitReadySession(t, f, 1, 4)

	_, err := f.svc.Commit(context.Background(), session.ID)
	require.NoError(t, err)

	err = f.svc.Abort(context.Background(), session.ID)
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeSessionClosed, be.Code)
}
