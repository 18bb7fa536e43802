package model

import "time"

// Contact statuses, admin-driven like booking statuses.
const (
	ContactNew       = "new"
	ContactRead      = "read"
	ContactResponded = "responded"
	ContactArchived  = "archived"
)

var (
	ContactStatuses = []string{ContactNew, ContactRead, ContactResponded, ContactArchived}
	Urgencies       = []string{"low", "normal", "high"}
)

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID      string `json:"id,omitempty" bson:"_id,omitempty"`
	Name    string `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" bson:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Subject string `json:"subject" bson:"subject" validate:"required,min=3,max=200"`
	Message string `json:"message" bson:"message" validate:"required,min=10,max=2000"`
	Urgency string `json:"urgency,omitempty" bson:"urgency,omitempty" validate:"omitempty,oneof=low normal high"`

	Status    string    `json:"status" bson:"status" validate:"required,oneof=new read responded archived"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
	IPAddress string    `json:"-" bson:"ip_address,omitempty"`
}
