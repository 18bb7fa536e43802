// Package events publishes booking lifecycle and wizard analytics
// events to Kafka. Publishing is always best-effort for callers; they
// log and drop errors rather than failing the triggering operation.
package events

import (
	"context"
	"strconv"
	"time"

	"nuffjamz/pkg/kafka"
	"nuffjamz/pkg/model"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventWizardStepViewed     = "wizard.step_viewed"
)

const schemaVersion = "1.0"

// Producer is the subset of the Kafka producer the publisher needs.
type Producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type Publisher struct {
	producer Producer
	source   string
}

func NewPublisher(producer Producer, source string) *Publisher {
	return &Publisher{
		producer: producer,
		source:   source,
	}
}

type bookingCreatedEvent struct {
	BookingID  string    `json:"bookingId"`
	EventType  string    `json:"eventType"`
	EventDate  string    `json:"eventDate"`
	GuestCount string    `json:"guestCount"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type bookingStatusChangedEvent struct {
	BookingID      string    `json:"bookingId"`
	PreviousStatus string    `json:"previousStatus"`
	Status         string    `json:"status"`
	ChangedAt      time.Time `json:"changedAt"`
}

type stepViewedEvent struct {
	SessionID string    `json:"sessionId"`
	Step      int       `json:"step"`
	StepName  string    `json:"stepName"`
	ViewedAt  time.Time `json:"viewedAt"`
}

func (p *Publisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(bookingCreatedEvent{
			BookingID:  booking.ID,
			EventType:  booking.EventType,
			EventDate:  booking.EventDate.Format("2006-01-02"),
			GuestCount: booking.GuestCount,
			Status:     booking.Status,
			CreatedAt:  booking.CreatedAt,
		}).
		WithEventType(EventBookingCreated).
		WithSchemaVersion(schemaVersion).
		WithSource(p.source).
		Build()

	return p.producer.Publish(ctx, msg)
}

func (p *Publisher) BookingStatusChanged(ctx context.Context, booking *model.Booking, previousStatus string) error {
	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(bookingStatusChangedEvent{
			BookingID:      booking.ID,
			PreviousStatus: previousStatus,
			Status:         booking.Status,
			ChangedAt:      booking.UpdatedAt,
		}).
		WithEventType(EventBookingStatusChanged).
		WithSchemaVersion(schemaVersion).
		WithSource(p.source).
		Build()

	return p.producer.Publish(ctx, msg)
}

// StepViewed reports that the wizard advanced to a step. Keyed by
// session so one user's events stay ordered.
func (p *Publisher) StepViewed(ctx context.Context, sessionID string, step int, stepName string) error {
	msg := kafka.NewMessage().
		WithKey(sessionID).
		WithValue(stepViewedEvent{
			SessionID: sessionID,
			Step:      step,
			StepName:  stepName,
			ViewedAt:  time.Now().UTC(),
		}).
		WithEventType(EventWizardStepViewed).
		WithHeader("step", strconv.Itoa(step)).
		WithSchemaVersion(schemaVersion).
		WithSource(p.source).
		Build()

	return p.producer.Publish(ctx, msg)
}
