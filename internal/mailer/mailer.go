// Package mailer renders and delivers the transactional emails sent
// around the booking lifecycle: the client confirmation, the admin
// alert, and the contact acknowledgement. Delivery goes through a
// Gateway so environments without a SendGrid key fall back to logging.
package mailer

import (
	"context"
	"fmt"

	"nuffjamz/pkg/logger"
	"nuffjamz/pkg/model"
	"nuffjamz/pkg/sanitizer"
)

// Email is a single outbound message.
type Email struct {
	To      string
	From    string
	Subject string
	Body    string
}

// Gateway delivers an email. Implementations must be safe for
// concurrent use.
type Gateway interface {
	Send(ctx context.Context, email Email) error
}

type Mailer struct {
	gateway       Gateway
	businessEmail string
	adminEmail    string
	log           *logger.Logger
}

func NewMailer(gateway Gateway, businessEmail, adminEmail string, log *logger.Logger) *Mailer {
	return &Mailer{
		gateway:       gateway,
		businessEmail: businessEmail,
		adminEmail:    adminEmail,
		log:           log,
	}
}

// SendBookingConfirmation emails the client that their request was
// received.
func (m *Mailer) SendBookingConfirmation(ctx context.Context, booking *model.Booking) error {
	body, err := renderBookingConfirmation(booking)
	if err != nil {
		return fmt.Errorf("failed to render booking confirmation: %w", err)
	}

	return m.gateway.Send(ctx, Email{
		To:      booking.Email,
		From:    m.businessEmail,
		Subject: "Your DJ booking request has been received",
		Body:    body,
	})
}

// SendAdminAlert emails the admin inbox about a new booking request.
func (m *Mailer) SendAdminAlert(ctx context.Context, booking *model.Booking) error {
	body, err := renderAdminAlert(booking)
	if err != nil {
		return fmt.Errorf("failed to render admin alert: %w", err)
	}

	return m.gateway.Send(ctx, Email{
		To:      m.adminEmail,
		From:    m.businessEmail,
		Subject: fmt.Sprintf("New booking request: %s on %s", booking.EventType, booking.EventDate.Format("Jan 2, 2006")),
		Body:    body,
	})
}

// SendContactAck emails the sender of a contact message that it
// arrived.
func (m *Mailer) SendContactAck(ctx context.Context, contact *model.Contact) error {
	body, err := renderContactAck(contact)
	if err != nil {
		return fmt.Errorf("failed to render contact acknowledgement: %w", err)
	}

	return m.gateway.Send(ctx, Email{
		To:      contact.Email,
		From:    m.businessEmail,
		Subject: "We got your message",
		Body:    body,
	})
}

func prettyPhone(phone string) string {
	return sanitizer.PrettyPhone(phone)
}
