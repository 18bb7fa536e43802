package model

import "time"

// BookingDraft mirrors the Booking fields, all optional while editing.
// It is the wizard's working state, the autosaved document, and the
// create-booking request body. EventDate stays a string (ISO date,
// 2006-01-02) until the server accepts the submission.
type BookingDraft struct {
	// Event details (step 1)
	EventType     string `json:"eventType,omitempty"`
	EventDate     string `json:"eventDate,omitempty"`
	EventLocation string `json:"eventLocation,omitempty"`
	GuestCount    string `json:"guestCount,omitempty"`
	Budget        string `json:"budget,omitempty"`

	// Client info (step 2)
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	ContactMethod string `json:"contactMethod,omitempty"`

	// Preferences (step 3)
	MusicPreferences string `json:"musicPreferences,omitempty"`
	SpecialRequests  string `json:"specialRequests,omitempty"`

	// Wizard bookkeeping, not sent to the server
	CurrentStep int       `json:"currentStep,omitempty"`
	LastSavedAt time.Time `json:"lastSavedAt,omitempty"`
}

// IsEmpty reports whether the user has entered anything at all.
// Bookkeeping fields don't count.
func (d BookingDraft) IsEmpty() bool {
	return d.EventType == "" &&
		d.EventDate == "" &&
		d.EventLocation == "" &&
		d.GuestCount == "" &&
		d.Budget == "" &&
		d.Name == "" &&
		d.Email == "" &&
		d.Phone == "" &&
		d.MusicPreferences == "" &&
		d.SpecialRequests == ""
}

// Field returns the named draft field value. Names match the JSON keys.
func (d BookingDraft) Field(name string) string {
	switch name {
	case "eventType":
		return d.EventType
	case "eventDate":
		return d.EventDate
	case "eventLocation":
		return d.EventLocation
	case "guestCount":
		return d.GuestCount
	case "budget":
		return d.Budget
	case "name":
		return d.Name
	case "email":
		return d.Email
	case "phone":
		return d.Phone
	case "contactMethod":
		return d.ContactMethod
	case "musicPreferences":
		return d.MusicPreferences
	case "specialRequests":
		return d.SpecialRequests
	}
	return ""
}

// WithField returns a copy of the draft with the named field set.
// Unknown names return the draft unchanged.
func (d BookingDraft) WithField(name, value string) BookingDraft {
	switch name {
	case "eventType":
		d.EventType = value
	case "eventDate":
		d.EventDate = value
	case "eventLocation":
		d.EventLocation = value
	case "guestCount":
		d.GuestCount = value
	case "budget":
		d.Budget = value
	case "name":
		d.Name = value
	case "email":
		d.Email = value
	case "phone":
		d.Phone = value
	case "contactMethod":
		d.ContactMethod = value
	case "musicPreferences":
		d.MusicPreferences = value
	case "specialRequests":
		d.SpecialRequests = value
	}
	return d
}
