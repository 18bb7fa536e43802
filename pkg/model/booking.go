package model

import (
	"time"
)

// Booking statuses. All four are mutually reachable through status
// updates; there is no enforced ordering or terminal state.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Event types offered on the public booking form.
const (
	EventWedding      = "wedding"
	EventCorporate    = "corporate"
	EventPrivateParty = "private-party"
	EventBirthday     = "birthday"
	EventAnniversary  = "anniversary"
	EventOther        = "other"
)

// Contact method preferences.
const (
	ContactByEmail = "email"
	ContactByPhone = "phone"
	ContactByBoth  = "both"
)

var (
	Statuses       = []string{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}
	EventTypes     = []string{EventWedding, EventCorporate, EventPrivateParty, EventBirthday, EventAnniversary, EventOther}
	GuestBuckets   = []string{"1-25", "26-50", "51-100", "101-200", "201-500", "500+"}
	BudgetBuckets  = []string{"under-1000", "1000-2500", "2500-5000", "5000-10000", "10000+", "discuss"}
	ContactMethods = []string{ContactByEmail, ContactByPhone, ContactByBoth}
)

// Booking is the durable entity created from an accepted draft.
type Booking struct {
	ID string `json:"id,omitempty" bson:"_id,omitempty"`

	// Client info
	Name          string `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email         string `json:"email" bson:"email" validate:"required,email"`
	Phone         string `json:"phone" bson:"phone" validate:"required"`
	ContactMethod string `json:"contactMethod" bson:"contact_method" validate:"required,oneof=email phone both"`

	// Event info
	EventType     string    `json:"eventType" bson:"event_type" validate:"required"`
	EventDate     time.Time `json:"eventDate" bson:"event_date" validate:"required"`
	EventLocation string    `json:"eventLocation" bson:"event_location" validate:"required,min=5,max=200"`
	GuestCount    string    `json:"guestCount" bson:"guest_count" validate:"required"`
	Budget        string    `json:"budget,omitempty" bson:"budget,omitempty"`

	// Preferences
	MusicPreferences string `json:"musicPreferences,omitempty" bson:"music_preferences,omitempty" validate:"omitempty,max=500"`
	SpecialRequests  string `json:"specialRequests,omitempty" bson:"special_requests,omitempty" validate:"omitempty,max=1000"`

	// Admin fields
	Status      string     `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	AdminNotes  string     `json:"adminNotes,omitempty" bson:"admin_notes,omitempty" validate:"omitempty,max=1000"`
	QuotedPrice *float64   `json:"quotedPrice,omitempty" bson:"quoted_price,omitempty" validate:"omitempty,min=0"`
	RespondedAt *time.Time `json:"respondedAt,omitempty" bson:"responded_at,omitempty"`

	// Audit
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
	IPAddress string    `json:"-" bson:"ip_address,omitempty"`
	UserAgent string    `json:"-" bson:"user_agent,omitempty"`
}

// StatusUpdate is the admin mutation payload. Status is written
// unconditionally; optional fields only when supplied.
type StatusUpdate struct {
	Status      string   `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	AdminNotes  string   `json:"adminNotes,omitempty" validate:"omitempty,max=1000"`
	QuotedPrice *float64 `json:"quotedPrice,omitempty" validate:"omitempty,min=0"`
}

// BookingStats is a grouped count over all bookings. Every bucket is
// present even when zero.
type BookingStats struct {
	Total     int64 `json:"total" bson:"total"`
	Pending   int64 `json:"pending" bson:"pending"`
	Confirmed int64 `json:"confirmed" bson:"confirmed"`
	Cancelled int64 `json:"cancelled" bson:"cancelled"`
	Completed int64 `json:"completed" bson:"completed"`
}

// Pagination metadata returned with booking lists.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}
