package mailer

import (
	"strings"
	"text/template"

	"nuffjamz/pkg/model"
)

var bookingConfirmationTmpl = template.Must(template.New("bookingConfirmation").Parse(
	`Hi {{.Name}},

Thanks for your booking request! Here's what we have on file:

  Event type:  {{.EventType}}
  Date:        {{.EventDate}}
  Location:    {{.EventLocation}}
  Guests:      {{.GuestCount}}
{{- if .Budget}}
  Budget:      {{.Budget}}
{{- end}}

We'll review your request and get back to you within 24 hours at
{{.ContactLine}}.

Talk soon,
DJ NuffJamz
`))

var adminAlertTmpl = template.Must(template.New("adminAlert").Parse(
	`New booking request received.

  Name:        {{.Name}}
  Email:       {{.Email}}
  Phone:       {{.Phone}}
  Contact via: {{.ContactMethod}}

  Event type:  {{.EventType}}
  Date:        {{.EventDate}}
  Location:    {{.EventLocation}}
  Guests:      {{.GuestCount}}
{{- if .Budget}}
  Budget:      {{.Budget}}
{{- end}}
{{- if .MusicPreferences}}

  Music preferences:
  {{.MusicPreferences}}
{{- end}}
{{- if .SpecialRequests}}

  Special requests:
  {{.SpecialRequests}}
{{- end}}

Booking ID: {{.ID}}
`))

var contactAckTmpl = template.Must(template.New("contactAck").Parse(
	`Hi {{.Name}},

We received your message "{{.Subject}}" and will get back to you soon.

DJ NuffJamz
`))

type bookingEmailData struct {
	ID               string
	Name             string
	Email            string
	Phone            string
	ContactMethod    string
	ContactLine      string
	EventType        string
	EventDate        string
	EventLocation    string
	GuestCount       string
	Budget           string
	MusicPreferences string
	SpecialRequests  string
}

func newBookingEmailData(b *model.Booking) bookingEmailData {
	contactLine := b.Email
	switch b.ContactMethod {
	case model.ContactByPhone:
		contactLine = prettyPhone(b.Phone)
	case model.ContactByBoth:
		contactLine = b.Email + " or " + prettyPhone(b.Phone)
	}

	return bookingEmailData{
		ID:               b.ID,
		Name:             b.Name,
		Email:            b.Email,
		Phone:            prettyPhone(b.Phone),
		ContactMethod:    b.ContactMethod,
		ContactLine:      contactLine,
		EventType:        b.EventType,
		EventDate:        b.EventDate.Format("Monday, January 2, 2006"),
		EventLocation:    b.EventLocation,
		GuestCount:       b.GuestCount,
		Budget:           b.Budget,
		MusicPreferences: b.MusicPreferences,
		SpecialRequests:  b.SpecialRequests,
	}
}

func renderBookingConfirmation(b *model.Booking) (string, error) {
	var sb strings.Builder
	if err := bookingConfirmationTmpl.Execute(&sb, newBookingEmailData(b)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func renderAdminAlert(b *model.Booking) (string, error) {
	var sb strings.Builder
	if err := adminAlertTmpl.Execute(&sb, newBookingEmailData(b)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func renderContactAck(c *model.Contact) (string, error) {
	var sb strings.Builder
	if err := contactAckTmpl.Execute(&sb, c); err != nil {
		return "", err
	}
	return sb.String(), nil
}
