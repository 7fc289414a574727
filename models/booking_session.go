package models

import "time"

// Booking edit session states. Committed and aborted are terminal.
const (
	SessionStateEditing   = "editing"
	SessionStateBlocked   = "blocked"
	SessionStateCommitted = "committed"
	SessionStateAborted   = "aborted"
)

// BookingEditSession is the server-side state of one booking create/edit flow.
// It lives in Redis for the duration of the editing session.
type BookingEditSession struct {
	ID        string `json:"id"`
	BookingID string `json:"bookingId,omitempty"` // empty for a create flow

	PropertyID    string    `json:"propertyId"`
	ClientID      string    `json:"clientId"`
	CheckIn       time.Time `json:"checkIn"`
	CheckOut      time.Time `json:"checkOut"`
	Status        string    `json:"status"`
	TotalAmount   float64   `json:"totalAmount"`
	PaymentStatus string    `json:"paymentStatus"`
	Notes         string    `json:"notes,omitempty"`

	State     string    `json:"state"`
	Conflict  *Booking  `json:"conflict,omitempty"` // set while blocked
	CreatedBy string    `json:"createdBy"`
	OpenedAt  time.Time `json:"openedAt"`
}

// Terminal reports whether the session can no longer accept edits.
func (s *BookingEditSession) Terminal() bool {
	return s.State == SessionStateCommitted || s.State == SessionStateAborted
}

// BookingEdit carries partial field updates for an edit session.
// Nil fields are left untouched.
type BookingEdit struct {
	PropertyID    *string    `json:"propertyId,omitempty"`
	ClientID      *string    `json:"clientId,omitempty"`
	CheckIn       *time.Time `json:"checkIn,omitempty"`
	CheckOut      *time.Time `json:"checkOut,omitempty"`
	Status        *string    `json:"status,omitempty"`
	PaymentStatus *string    `json:"paymentStatus,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}
