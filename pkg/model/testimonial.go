package model

import "time"

// Testimonial is a client review. Public submissions start unapproved
// and only appear on the site once an admin approves them.
type Testimonial struct {
	ID         string `json:"id,omitempty" bson:"_id,omitempty"`
	ClientName string `json:"clientName" bson:"client_name" validate:"required,min=2,max=100"`
	EventType  string `json:"eventType" bson:"event_type" validate:"required"`
	Rating     int    `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Text       string `json:"text" bson:"text" validate:"required,min=10,max=1000"`

	Approved  bool      `json:"approved" bson:"approved"`
	Featured  bool      `json:"featured" bson:"featured"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
