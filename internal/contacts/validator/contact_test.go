package validator

import (
	"strings"
	"testing"

	"nuffjamz/pkg/model"
)

func validContact() *model.Contact {
	return &model.Contact{
		Name:    "John Smith",
		Email:   "john@example.com",
		Subject: "Wedding inquiry",
		Message: "Hi, are you available next June for a wedding reception?",
		Urgency: "normal",
		Status:  model.ContactNew,
	}
}

func TestValidateAcceptsValidContact(t *testing.T) {
	v := NewContactValidator()

	if errs := v.Validate(validContact()); len(errs) != 0 {
		t.Errorf("valid contact rejected: %v", errs)
	}
}

func TestValidateOptionalFields(t *testing.T) {
	v := NewContactValidator()

	contact := validContact()
	contact.Phone = ""
	contact.Urgency = ""

	if errs := v.Validate(contact); len(errs) != 0 {
		t.Errorf("optional fields empty should pass: %v", errs)
	}
}

func TestValidateFieldErrors(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *model.Contact)
		wantField   string
		wantMessage string
	}{
		{
			name:        "missing name",
			mutate:      func(c *model.Contact) { c.Name = "" },
			wantField:   "name",
			wantMessage: "This field is required",
		},
		{
			name:        "name too short",
			mutate:      func(c *model.Contact) { c.Name = "J" },
			wantField:   "name",
			wantMessage: "Too short (minimum 2 characters)",
		},
		{
			name:        "bad email",
			mutate:      func(c *model.Contact) { c.Email = "nope" },
			wantField:   "email",
			wantMessage: "Please provide a valid email address",
		},
		{
			name:        "subject too short",
			mutate:      func(c *model.Contact) { c.Subject = "Hi" },
			wantField:   "subject",
			wantMessage: "Too short (minimum 3 characters)",
		},
		{
			name:        "message too long",
			mutate:      func(c *model.Contact) { c.Message = strings.Repeat("a", 2001) },
			wantField:   "message",
			wantMessage: "Too long (maximum 2000 characters)",
		},
		{
			name:        "unknown urgency",
			mutate:      func(c *model.Contact) { c.Urgency = "asap" },
			wantField:   "urgency",
			wantMessage: "Must be one of: low normal high",
		},
		{
			name:        "unknown status",
			mutate:      func(c *model.Contact) { c.Status = "pending" },
			wantField:   "status",
			wantMessage: "Must be one of: new read responded archived",
		},
	}

	v := NewContactValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contact := validContact()
			tt.mutate(contact)

			errs := v.Validate(contact)
			if len(errs) != 1 {
				t.Fatalf("expected one error, got %v", errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("field = %q, want %q", errs[0].Field, tt.wantField)
			}
			if errs[0].Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", errs[0].Message, tt.wantMessage)
			}
		})
	}
}

func TestValidateReportsAllFailures(t *testing.T) {
	v := NewContactValidator()

	errs := v.Validate(&model.Contact{})
	fields := map[string]bool{}
	for _, fe := range errs {
		fields[fe.Field] = true
	}
	for _, want := range []string{"name", "email", "subject", "message", "status"} {
		if !fields[want] {
			t.Errorf("missing error for %q: %v", want, errs)
		}
	}
}
