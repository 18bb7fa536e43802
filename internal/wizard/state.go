// Package wizard implements the four-step booking flow as a pure state
// machine. Transition computes the next state plus a list of effects;
// the Wizard runner executes those effects (autosave, analytics,
// submission) so the step logic itself stays trivially testable.
package wizard

import (
	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/model"
)

const (
	StepEventDetails = 1
	StepContactInfo  = 2
	StepPreferences  = 3
	StepReview       = 4

	FirstStep = StepEventDetails
	LastStep  = StepReview
)

var stepNames = map[int]string{
	StepEventDetails: "event-details",
	StepContactInfo:  "contact-info",
	StepPreferences:  "preferences",
	StepReview:       "review",
}

// StepName returns the analytics name for a step, or "" for an unknown
// step.
func StepName(step int) string {
	return stepNames[step]
}

// State is the wizard's complete visible state. It is a value: every
// transition returns a new one.
type State struct {
	Step  int
	Draft model.BookingDraft

	// Field errors from the last failed gate or rejected submission.
	FieldErrors []apperrors.FieldError

	// Submitting blocks re-entrant submits while a request is in
	// flight. Submitted marks the terminal success screen.
	Submitting  bool
	Submitted   bool
	SubmitError string

	// Booking holds the created entity after a successful submit.
	Booking *model.Booking
}

// NewState returns the initial state at step one with an empty draft.
func NewState() State {
	return State{Step: FirstStep}
}

// FieldError returns the current error message for a field, or "".
func (s State) FieldError(field string) string {
	for _, fe := range s.FieldErrors {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Action is a wizard input event.
type Action interface{ isAction() }

// SetField updates a single draft field.
type SetField struct {
	Field string
	Value string
}

// Next advances past the current step if its gate passes.
type Next struct{}

// Back returns to the previous step. Always allowed, never
// re-validates.
type Back struct{}

// Submit sends the draft from the review step.
type Submit struct{}

// SubmitSucceeded reports the server accepted the submission.
type SubmitSucceeded struct {
	Booking *model.Booking
}

// SubmitFailed reports a rejected or failed submission. The draft is
// kept so the user can correct and resubmit.
type SubmitFailed struct {
	Message     string
	FieldErrors []apperrors.FieldError
}

// Restore resumes from a previously saved draft.
type Restore struct {
	Draft model.BookingDraft
}

// Reset discards everything and returns to a fresh step one.
type Reset struct{}

func (SetField) isAction()        {}
func (Next) isAction()            {}
func (Back) isAction()            {}
func (Submit) isAction()          {}
func (SubmitSucceeded) isAction() {}
func (SubmitFailed) isAction()    {}
func (Restore) isAction()         {}
func (Reset) isAction()           {}

// Effect is a side effect requested by a transition. The runner
// executes effects in order.
type Effect interface{ isEffect() }

// SaveDraft asks for a (debounced) autosave of the draft.
type SaveDraft struct {
	Draft model.BookingDraft
}

// ClearDraft discards the persisted draft.
type ClearDraft struct{}

// EmitStepView reports a step impression to analytics.
type EmitStepView struct {
	Step     int
	StepName string
}

// DoSubmit performs the actual submission of the draft.
type DoSubmit struct {
	Draft model.BookingDraft
}

func (SaveDraft) isEffect()    {}
func (ClearDraft) isEffect()   {}
func (EmitStepView) isEffect() {}
func (DoSubmit) isEffect()     {}
