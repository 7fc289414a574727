package models

import "time"

// Property status values.
const (
	PropertyStatusAvailable   = "available"
	PropertyStatusRented      = "rented"
	PropertyStatusMaintenance = "maintenance"
)

// Coordinates is a simple lat/lng pair for map display.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Property represents a rental unit listed on the marketing site.
type Property struct {
	ID          string      `bson:"id" json:"id"`
	Name        string      `bson:"name" json:"name"`
	Type        string      `bson:"type" json:"type"`   // e.g. "apartment", "villa", "studio"
	Price       float64     `bson:"price" json:"price"` // nightly price
	Bedrooms    int         `bson:"bedrooms" json:"bedrooms"`
	Bathrooms   int         `bson:"bathrooms" json:"bathrooms"`
	Size        string      `bson:"size,omitempty" json:"size,omitempty"`
	Location    string      `bson:"location,omitempty" json:"location,omitempty"`
	Coordinates Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Images      []string    `bson:"images,omitempty" json:"images,omitempty"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Status      string      `bson:"status" json:"status"`
	Featured    bool        `bson:"featured,omitempty" json:"featured,omitempty"`
	CreatedBy   string      `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// PropertyFilter narrows public property listings.
type PropertyFilter struct {
	Status       string
	Type         string
	MinPrice     float64
	MaxPrice     float64
	MinBedrooms  int
	MinBathrooms int
}
