package models

import "time"

// Message is an inbound inquiry from the marketing site's contact form.
type Message struct {
	ID          string    `bson:"id" json:"id"`
	SenderName  string    `bson:"senderName" json:"senderName"`
	SenderEmail string    `bson:"senderEmail" json:"senderEmail"`
	Content     string    `bson:"content" json:"content"`
	Read        bool      `bson:"read" json:"read"`
	PropertyID  string    `bson:"propertyId,omitempty" json:"propertyId,omitempty"`
	BookingID   string    `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
