package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "rentora/database/repository/booking"
	clientRepo "rentora/database/repository/client"
	propertyRepo "rentora/database/repository/property"
	reservationRepo "rentora/database/repository/reservation"
	"rentora/models"
	"rentora/utils"

	"go.uber.org/zap"
)

// Service exposes booking list/detail views and lifecycle operations outside
// the edit-session flow.
type Service interface {
	List(ctx context.Context) ([]models.BookingDetail, error)
	Get(ctx context.Context, id string) (*models.BookingDetail, error)
	ListByClient(ctx context.Context, clientID string) ([]models.BookingDetail, error)
	ListByProperty(ctx context.Context, propertyID string) ([]models.BookingDetail, error)
	ListByCheckInRange(ctx context.Context, start, end time.Time) ([]models.BookingDetail, error)
	// Cancel marks the booking cancelled and releases its nights. The record
	// is retained for history.
	Cancel(ctx context.Context, id string) error
	// Delete removes the booking entirely and releases its nights.
	Delete(ctx context.Context, id string) error
}

// DefaultService implements Service.
type DefaultService struct {
	Bookings     bookingRepo.BookingRepository
	Clients      clientRepo.ClientRepository
	Properties   propertyRepo.PropertyRepository
	Reservations reservationRepo.ReservationRepository
}

func (s *DefaultService) List(ctx context.Context) ([]models.BookingDetail, error) {
	bookings, err := s.Bookings.GetAll(ctx)
	if err != nil {
		return nil, NewPersistenceFailed(err)
	}
	return s.enrich(ctx, bookings), nil
}

func (s *DefaultService) Get(ctx context.Context, id string) (*models.BookingDetail, error) {
	booking, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, NewPersistenceFailed(err)
	}
	if booking == nil {
		return nil, &Error{Code: CodeNotFound, Message: fmt.Sprintf("booking %s not found", id)}
	}
	detail := s.enrich(ctx, []models.Booking{*booking})
	return &detail[0], nil
}

func (s *DefaultService) ListByClient(ctx context.Context, clientID string) ([]models.BookingDetail, error) {
	bookings, err := s.Bookings.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, NewPersistenceFailed(err)
	}
	return s.enrich(ctx, bookings), nil
}

func (s *DefaultService) ListByProperty(ctx context.Context, propertyID string) ([]models.BookingDetail, error) {
	bookings, err := s.Bookings.GetByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, NewPersistenceFailed(err)
	}
	return s.enrich(ctx, bookings), nil
}

func (s *DefaultService) ListByCheckInRange(ctx context.Context, start, end time.Time) ([]models.BookingDetail, error) {
	bookings, err := s.Bookings.GetByCheckInRange(ctx, start, end)
	if err != nil {
		return nil, NewPersistenceFailed(err)
	}
	return s.enrich(ctx, bookings), nil
}

func (s *DefaultService) Cancel(ctx context.Context, id string) error {
	booking, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return NewPersistenceFailed(err)
	}
	if booking == nil {
		return &Error{Code: CodeNotFound, Message: fmt.Sprintf("booking %s not found", id)}
	}
	if err := s.Bookings.SetStatus(ctx, id, models.BookingStatusCancelled); err != nil {
		return NewPersistenceFailed(err)
	}
	if err := s.Reservations.Release(ctx, id); err != nil {
		return NewPersistenceFailed(err)
	}
	return nil
}

func (s *DefaultService) Delete(ctx context.Context, id string) error {
	if err := s.Bookings.Delete(ctx, id); err != nil {
		return NewPersistenceFailed(err)
	}
	if err := s.Reservations.Release(ctx, id); err != nil {
		return NewPersistenceFailed(err)
	}
	return nil
}

// enrich attaches each booking's client and property documents. Missing
// references are tolerated and left nil.
func (s *DefaultService) enrich(ctx context.Context, bookings []models.Booking) []models.BookingDetail {
	logger := utils.GetLogger()
	details := make([]models.BookingDetail, 0, len(bookings))

	clients := make(map[string]*models.Client)
	properties := make(map[string]*models.Property)

	for _, b := range bookings {
		detail := models.BookingDetail{Booking: b}

		if b.ClientID != "" {
			client, ok := clients[b.ClientID]
			if !ok {
				var err error
				client, err = s.Clients.GetByID(ctx, b.ClientID)
				if err != nil {
					logger.Warn("failed to load client for booking", zap.String("bookingID", b.ID), zap.Error(err))
				}
				clients[b.ClientID] = client
			}
			detail.Client = client
		}

		if b.PropertyID != "" {
			property, ok := properties[b.PropertyID]
			if !ok {
				var err error
				property, err = s.Properties.GetByID(ctx, b.PropertyID)
				if err != nil {
					logger.Warn("failed to load property for booking", zap.String("bookingID", b.ID), zap.Error(err))
				}
				properties[b.PropertyID] = property
			}
			detail.Property = property
		}

		details = append(details, detail)
	}
	return details
}
