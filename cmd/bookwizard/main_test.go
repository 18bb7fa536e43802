package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"nuffjamz/pkg/model"
)

func TestRenderConfirmationShowsSummary(t *testing.T) {
	booking := &model.Booking{
		ID:            "65a1b2c3d4e5f6a7b8c9d0e1",
		Name:          "John Smith",
		EventDate:     time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC),
		ContactMethod: model.ContactByPhone,
	}

	var out bytes.Buffer
	renderConfirmation(&out, booking)

	got := out.String()
	for _, want := range []string{
		"John Smith",
		"Saturday, June 20, 2026",
		model.ContactByPhone,
		"65a1b2c3d4e5f6a7b8c9d0e1",
		"What happens next:",
		"within 24 hours",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("confirmation missing %q:\n%s", want, got)
		}
	}
}

// A submit result without a booking still renders the next-steps list.
func TestRenderConfirmationWithoutBooking(t *testing.T) {
	var out bytes.Buffer
	renderConfirmation(&out, nil)

	got := out.String()
	if !strings.Contains(got, "Your booking request is in!") {
		t.Errorf("missing headline:\n%s", got)
	}
	if !strings.Contains(got, "What happens next:") {
		t.Errorf("missing next steps:\n%s", got)
	}
}
