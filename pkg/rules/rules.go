// Package rules holds the field-level validation rules for the booking
// form. The wizard's step gates and the server-side create validation
// both call these same functions, so the two boundaries cannot drift.
// Each rule returns "" when the value is valid, or a human-readable
// message otherwise.
package rules

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/model"
	"nuffjamz/pkg/sanitizer"
)

// The public form asks for a "detailed" location (venue plus address),
// while the stored entity only requires 5 characters. Both gates are
// intentional and must stay separate; unifying them would change
// observable validation behavior.
const (
	ClientMinLocationLength = 10
	ServerMinLocationLength = 5

	MinNameLength     = 2
	MaxNameLength     = 100
	MaxLocationLength = 200
	MinPhoneDigits    = 10
	MaxMusicLength    = 500
	MaxRequestsLength = 1000
)

// Gate selects which location minimum applies.
type Gate int

const (
	ClientGate Gate = iota
	ServerGate
)

var (
	validate  = validator.New()
	nameChars = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

	eventTypeOneOf     = "required,oneof=" + strings.Join(model.EventTypes, " ")
	guestCountOneOf    = "required,oneof=" + strings.Join(model.GuestBuckets, " ")
	budgetOneOf        = "omitempty,oneof=" + strings.Join(model.BudgetBuckets, " ")
	contactMethodOneOf = "omitempty,oneof=" + strings.Join(model.ContactMethods, " ")
)

func Name(v string) string {
	trimmed := strings.TrimSpace(v)
	if len(trimmed) < MinNameLength || len(trimmed) > MaxNameLength {
		return fmt.Sprintf("Name must be between %d and %d characters", MinNameLength, MaxNameLength)
	}
	if !nameChars.MatchString(trimmed) {
		return "Name can only contain letters, spaces, hyphens, and apostrophes"
	}
	return ""
}

func Email(v string) string {
	if err := validate.Var(strings.TrimSpace(v), "required,email"); err != nil {
		return "Please provide a valid email address"
	}
	return ""
}

func Phone(v string) string {
	if len(sanitizer.DigitsOnly(v)) < MinPhoneDigits {
		return fmt.Sprintf("Phone number must contain at least %d digits", MinPhoneDigits)
	}
	return ""
}

func EventType(v string) string {
	if err := validate.Var(v, eventTypeOneOf); err != nil {
		return "Please select a valid event type"
	}
	return ""
}

// EventDate requires an ISO date no earlier than tomorrow: a booking
// for later today is already too late to staff.
func EventDate(v string) string {
	parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		return "Please provide a valid event date (YYYY-MM-DD)"
	}

	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, 1)
	if parsed.Before(tomorrow) {
		return "Event date must be at least tomorrow"
	}
	return ""
}

func EventLocation(v string, gate Gate) string {
	minLen := ServerMinLocationLength
	if gate == ClientGate {
		minLen = ClientMinLocationLength
	}

	trimmed := strings.TrimSpace(v)
	if len(trimmed) < minLen || len(trimmed) > MaxLocationLength {
		return fmt.Sprintf("Event location must be between %d and %d characters", minLen, MaxLocationLength)
	}
	return ""
}

func GuestCount(v string) string {
	if err := validate.Var(v, guestCountOneOf); err != nil {
		return "Please select a valid guest count range"
	}
	return ""
}

func Budget(v string) string {
	if err := validate.Var(v, budgetOneOf); err != nil {
		return "Please select a valid budget range"
	}
	return ""
}

func ContactMethod(v string) string {
	if err := validate.Var(v, contactMethodOneOf); err != nil {
		return "Please select a valid contact method"
	}
	return ""
}

func MusicPreferences(v string) string {
	if len(v) > MaxMusicLength {
		return fmt.Sprintf("Music preferences cannot exceed %d characters", MaxMusicLength)
	}
	return ""
}

func SpecialRequests(v string) string {
	if len(v) > MaxRequestsLength {
		return fmt.Sprintf("Special requests cannot exceed %d characters", MaxRequestsLength)
	}
	return ""
}

// Field sets per validation site. Step gates cover required fields only;
// optional fields are still checked when present.
var (
	Step1Fields  = []string{"eventType", "eventDate", "eventLocation", "guestCount"}
	Step2Fields  = []string{"name", "email", "phone"}
	CreateFields = []string{
		"name", "email", "phone", "contactMethod",
		"eventType", "eventDate", "eventLocation", "guestCount",
		"budget", "musicPreferences", "specialRequests",
	}
)

// Check runs the rule for a single named field against the draft.
func Check(field string, draft model.BookingDraft, gate Gate) string {
	switch field {
	case "name":
		return Name(draft.Name)
	case "email":
		return Email(draft.Email)
	case "phone":
		return Phone(draft.Phone)
	case "contactMethod":
		return ContactMethod(draft.ContactMethod)
	case "eventType":
		return EventType(draft.EventType)
	case "eventDate":
		return EventDate(draft.EventDate)
	case "eventLocation":
		return EventLocation(draft.EventLocation, gate)
	case "guestCount":
		return GuestCount(draft.GuestCount)
	case "budget":
		return Budget(draft.Budget)
	case "musicPreferences":
		return MusicPreferences(draft.MusicPreferences)
	case "specialRequests":
		return SpecialRequests(draft.SpecialRequests)
	}
	return ""
}

// Apply validates the named fields, returning one FieldError per
// failing field in field-set order.
func Apply(draft model.BookingDraft, fields []string, gate Gate) []apperrors.FieldError {
	var errs []apperrors.FieldError
	for _, field := range fields {
		if msg := Check(field, draft, gate); msg != "" {
			errs = append(errs, apperrors.FieldError{Field: field, Message: msg})
		}
	}
	return errs
}
