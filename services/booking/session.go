package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "rentora/database/repository/booking"
	propertyRepo "rentora/database/repository/property"
	reservationRepo "rentora/database/repository/reservation"
	"rentora/models"
	"rentora/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService drives one booking create/edit flow: reactive availability
// checks while the user edits, an authoritative check plus an atomic night
// reservation at commit time.
type SessionService interface {
	// Open starts a session, optionally seeded from an existing booking.
	Open(ctx context.Context, createdBy, bookingID string) (*models.BookingEditSession, error)
	// Update applies field edits. Date or property changes trigger the
	// reactive availability check and, when clear, a price recomputation.
	Update(ctx context.Context, sessionID string, edits models.BookingEdit) (*models.BookingEditSession, error)
	// Commit performs the authoritative check, reserves the nights, and
	// persists the booking.
	Commit(ctx context.Context, sessionID string) (*models.Booking, error)
	// Abort discards the session.
	Abort(ctx context.Context, sessionID string) error
}

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	Store        SessionStore
	Checker      AvailabilityChecker
	Bookings     bookingRepo.BookingRepository
	Properties   propertyRepo.PropertyRepository
	Reservations reservationRepo.ReservationRepository
}

// Open starts a new edit session. When bookingID is set the session is
// seeded from that booking and all checks exclude it (no self-conflict).
func (s *DefaultSessionService) Open(ctx context.Context, createdBy, bookingID string) (*models.BookingEditSession, error) {
	now := time.Now()
	session := &models.BookingEditSession{
		ID:            uuid.New().String(),
		State:         models.SessionStateEditing,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		CheckIn:       now,
		CheckOut:      now.AddDate(0, 0, 7),
		CreatedBy:     createdBy,
		OpenedAt:      now,
	}

	if bookingID != "" {
		existing, err := s.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return nil, NewPersistenceFailed(err)
		}
		if existing == nil {
			return nil, &Error{Code: CodeNotFound, Message: fmt.Sprintf("booking %s not found", bookingID)}
		}
		session.BookingID = existing.ID
		session.PropertyID = existing.PropertyID
		session.ClientID = existing.ClientID
		session.CheckIn = existing.CheckIn
		session.CheckOut = existing.CheckOut
		session.Status = existing.Status
		session.TotalAmount = existing.TotalAmount
		session.PaymentStatus = existing.PaymentStatus
		session.Notes = existing.Notes
	}

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, NewPersistenceFailed(err)
	}
	return session, nil
}

// Update applies partial edits and runs the reactive availability check when
// the property or dates changed. A conflict moves the session to blocked but
// never hard-blocks further edits.
func (s *DefaultSessionService) Update(ctx context.Context, sessionID string, edits models.BookingEdit) (*models.BookingEditSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	needsCheck := false
	if edits.PropertyID != nil && *edits.PropertyID != session.PropertyID {
		session.PropertyID = *edits.PropertyID
		needsCheck = true
	}
	if edits.CheckIn != nil && !edits.CheckIn.Equal(session.CheckIn) {
		session.CheckIn = *edits.CheckIn
		needsCheck = true
	}
	if edits.CheckOut != nil && !edits.CheckOut.Equal(session.CheckOut) {
		session.CheckOut = *edits.CheckOut
		needsCheck = true
	}
	if edits.ClientID != nil {
		session.ClientID = *edits.ClientID
	}
	if edits.Status != nil {
		session.Status = *edits.Status
	}
	if edits.PaymentStatus != nil {
		session.PaymentStatus = *edits.PaymentStatus
	}
	if edits.Notes != nil {
		session.Notes = *edits.Notes
	}

	if needsCheck && session.PropertyID != "" {
		result, err := s.Checker.CheckAvailability(ctx, session.PropertyID, session.CheckIn, session.CheckOut, session.BookingID)
		if err != nil {
			return nil, err
		}
		if !result.Available {
			session.State = models.SessionStateBlocked
			session.Conflict = result.Conflicting
		} else {
			session.State = models.SessionStateEditing
			session.Conflict = nil
			s.recomputeTotal(ctx, session)
		}
	}

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, NewPersistenceFailed(err)
	}
	return session, nil
}

// recomputeTotal refreshes the session's total from the property's nightly
// price. Inverted ranges mid-edit leave the prior amount untouched.
func (s *DefaultSessionService) recomputeTotal(ctx context.Context, session *models.BookingEditSession) {
	property, err := s.Properties.GetByID(ctx, session.PropertyID)
	if err != nil || property == nil {
		utils.GetLogger().Warn("could not load property for price calculation",
			zap.String("propertyID", session.PropertyID), zap.Error(err))
		return
	}
	if total, ok := ComputeTotal(property.Price, session.CheckIn, session.CheckOut); ok {
		session.TotalAmount = total
	}
}

// Commit runs the authoritative availability check, claims the property's
// nights through the reservation unique index, and persists the booking.
// The reservation insert, not the check, is what decides racing commits.
func (s *DefaultSessionService) Commit(ctx context.Context, sessionID string) (*models.Booking, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.PropertyID == "" || session.ClientID == "" {
		return nil, &Error{Code: CodeInvalidInput, Message: "property and client are required"}
	}
	if session.CheckIn.IsZero() || session.CheckOut.IsZero() {
		return nil, NewInvalidDateRange("check-in and check-out are required")
	}
	if !session.CheckIn.Before(session.CheckOut) {
		return nil, NewInvalidDateRange("check-out date must be after check-in date")
	}

	cancelling := session.Status == models.BookingStatusCancelled

	if !cancelling {
		result, err := s.Checker.CheckAvailability(ctx, session.PropertyID, session.CheckIn, session.CheckOut, session.BookingID)
		if err != nil {
			return nil, err
		}
		if !result.Available {
			s.block(ctx, session, result.Conflicting)
			return nil, NewConflict(result.Conflicting)
		}
	}

	bookingID := session.BookingID
	isCreate := bookingID == ""
	if isCreate {
		bookingID = uuid.New().String()
	}

	var priorProperty string
	var priorNights []string
	if !isCreate {
		if priorProperty, priorNights, err = s.Reservations.NightsHeld(ctx, bookingID); err != nil {
			return nil, NewPersistenceFailed(err)
		}
	}

	if cancelling {
		// Cancelled bookings no longer hold the calendar.
		if err := s.Reservations.Release(ctx, bookingID); err != nil {
			return nil, NewPersistenceFailed(err)
		}
	} else {
		err := s.Reservations.Sync(ctx, session.PropertyID, bookingID, nightKeys(session.CheckIn, session.CheckOut))
		if errors.Is(err, reservationRepo.ErrNightConflict) {
			// Lost the race after a clean check; report whoever holds it now.
			conflict := s.findConflict(ctx, session)
			s.block(ctx, session, conflict)
			return nil, NewConflict(conflict)
		}
		if err != nil {
			return nil, NewPersistenceFailed(err)
		}
	}

	booking, err := s.persist(ctx, session, bookingID, isCreate)
	if err != nil {
		s.rollbackNights(ctx, bookingID, isCreate, priorProperty, priorNights)
		return nil, err
	}

	session.BookingID = booking.ID
	session.State = models.SessionStateCommitted
	session.Conflict = nil
	if err := s.Store.Save(ctx, session); err != nil {
		utils.GetLogger().Warn("failed to mark session committed", zap.String("sessionID", session.ID), zap.Error(err))
	}
	return booking, nil
}

// Abort discards the session. Idempotent for already-expired sessions.
func (s *DefaultSessionService) Abort(ctx context.Context, sessionID string) error {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return NewPersistenceFailed(err)
	}
	if session == nil {
		return nil
	}
	if session.Terminal() {
		return &Error{Code: CodeSessionClosed, Message: "session is already closed"}
	}
	return s.Store.Delete(ctx, sessionID)
}

func (s *DefaultSessionService) load(ctx context.Context, sessionID string) (*models.BookingEditSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, NewPersistenceFailed(err)
	}
	if session == nil {
		return nil, &Error{Code: CodeNotFound, Message: "booking session not found or expired"}
	}
	if session.Terminal() {
		return nil, &Error{Code: CodeSessionClosed, Message: "session is already closed"}
	}
	return session, nil
}

func (s *DefaultSessionService) block(ctx context.Context, session *models.BookingEditSession, conflict *models.Booking) {
	session.State = models.SessionStateBlocked
	session.Conflict = conflict
	if err := s.Store.Save(ctx, session); err != nil {
		utils.GetLogger().Warn("failed to save blocked session", zap.String("sessionID", session.ID), zap.Error(err))
	}
}

// findConflict re-scans after a lost reservation race to name the winner.
func (s *DefaultSessionService) findConflict(ctx context.Context, session *models.BookingEditSession) *models.Booking {
	result, err := s.Checker.CheckAvailability(ctx, session.PropertyID, session.CheckIn, session.CheckOut, session.BookingID)
	if err != nil || result.Available {
		return nil
	}
	return result.Conflicting
}

func (s *DefaultSessionService) persist(ctx context.Context, session *models.BookingEditSession, bookingID string, isCreate bool) (*models.Booking, error) {
	status := session.Status
	if status == "" {
		status = models.BookingStatusPending
	}
	paymentStatus := session.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusPending
	}

	if isCreate {
		booking := &models.Booking{
			ID:            bookingID,
			PropertyID:    session.PropertyID,
			ClientID:      session.ClientID,
			CheckIn:       session.CheckIn,
			CheckOut:      session.CheckOut,
			Status:        status,
			TotalAmount:   session.TotalAmount,
			PaymentStatus: paymentStatus,
			Notes:         session.Notes,
			CreatedBy:     session.CreatedBy,
		}
		if err := s.Bookings.Create(ctx, booking); err != nil {
			return nil, NewPersistenceFailed(err)
		}
		return booking, nil
	}

	existing, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, NewPersistenceFailed(err)
	}
	if existing == nil {
		return nil, &Error{Code: CodeNotFound, Message: fmt.Sprintf("booking %s not found", bookingID)}
	}

	existing.PropertyID = session.PropertyID
	existing.ClientID = session.ClientID
	existing.CheckIn = session.CheckIn
	existing.CheckOut = session.CheckOut
	existing.Status = status
	existing.TotalAmount = session.TotalAmount
	existing.PaymentStatus = paymentStatus
	existing.Notes = session.Notes

	if err := s.Bookings.Update(ctx, existing); err != nil {
		return nil, NewPersistenceFailed(err)
	}
	return existing, nil
}

// rollbackNights undoes the reservation claim after a failed booking write,
// restoring what the booking held before the commit started. The prior
// property matters: an edit may have moved the booking elsewhere.
func (s *DefaultSessionService) rollbackNights(ctx context.Context, bookingID string, isCreate bool, priorProperty string, priorNights []string) {
	logger := utils.GetLogger()
	var err error
	if isCreate || len(priorNights) == 0 {
		err = s.Reservations.Release(ctx, bookingID)
	} else {
		err = s.Reservations.Sync(ctx, priorProperty, bookingID, priorNights)
	}
	if err != nil {
		logger.Error("failed to roll back night reservations after persistence failure",
			zap.String("bookingID", bookingID), zap.Error(err))
	}
}
