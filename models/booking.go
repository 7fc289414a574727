package models

import "time"

// Booking status values. Cancelled bookings no longer hold the calendar.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Payment status values. Informational only; not an input to availability.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Booking represents a stay on a property over the half-open
// interval [checkIn, checkOut).
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	PropertyID    string    `bson:"propertyId" json:"propertyId"`
	ClientID      string    `bson:"clientId" json:"clientId"`
	CheckIn       time.Time `bson:"checkIn" json:"checkIn"`
	CheckOut      time.Time `bson:"checkOut" json:"checkOut"`
	Status        string    `bson:"status" json:"status"`
	TotalAmount   float64   `bson:"totalAmount" json:"totalAmount"`
	PaymentStatus string    `bson:"paymentStatus" json:"paymentStatus"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy     string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HoldsCalendar reports whether the booking blocks its property's calendar.
func (b *Booking) HoldsCalendar() bool {
	return b.Status != BookingStatusCancelled
}

// BookingDetail is a booking enriched with its related documents for list views.
type BookingDetail struct {
	Booking
	Client   *Client   `json:"client,omitempty"`
	Property *Property `json:"property,omitempty"`
}
