package wizard

import (
	"strings"
	"testing"
	"time"

	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/model"
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func completeDraft() model.BookingDraft {
	return model.BookingDraft{
		EventType:     model.EventWedding,
		EventDate:     futureDate(60),
		EventLocation: "The Grand Ballroom, 5th Ave",
		GuestCount:    "101-200",
		Name:          "John Smith",
		Email:         "john@example.com",
		Phone:         "(555) 123-4567",
	}
}

func stateAtReview() State {
	s := NewState()
	s.Step = StepReview
	s.Draft = completeDraft()
	s.Draft.CurrentStep = StepReview
	return s
}

func hasEffect[T Effect](effects []Effect) bool {
	for _, e := range effects {
		if _, ok := e.(T); ok {
			return true
		}
	}
	return false
}

// ────────────────────────────────────────────────
// Field edits
// ────────────────────────────────────────────────

func TestSetFieldUpdatesDraftAndRequestsSave(t *testing.T) {
	state, effects := Transition(NewState(), SetField{Field: "name", Value: "John"})

	if state.Draft.Name != "John" {
		t.Errorf("draft name = %q, want John", state.Draft.Name)
	}
	if !hasEffect[SaveDraft](effects) {
		t.Error("expected a SaveDraft effect")
	}
}

func TestSetFieldClearsOnlyItsOwnError(t *testing.T) {
	state := NewState()
	state.FieldErrors = []apperrors.FieldError{
		{Field: "name", Message: "too short"},
		{Field: "email", Message: "invalid"},
	}

	state, _ = Transition(state, SetField{Field: "name", Value: "John Smith"})

	if state.FieldError("name") != "" {
		t.Error("editing name should clear its error")
	}
	if state.FieldError("email") == "" {
		t.Error("email error should survive a name edit")
	}
}

// ────────────────────────────────────────────────
// Step navigation
// ────────────────────────────────────────────────

func TestNextBlockedByStepGate(t *testing.T) {
	state, effects := Transition(NewState(), Next{})

	if state.Step != StepEventDetails {
		t.Errorf("step = %d, want %d (gate should block)", state.Step, StepEventDetails)
	}
	if len(state.FieldErrors) == 0 {
		t.Error("expected field errors from the step gate")
	}
	if len(effects) != 0 {
		t.Errorf("blocked Next should produce no effects, got %v", effects)
	}
}

func TestNextAdvancesWhenGatePasses(t *testing.T) {
	state := NewState()
	state.Draft = completeDraft()

	state, effects := Transition(state, Next{})

	if state.Step != StepContactInfo {
		t.Errorf("step = %d, want %d", state.Step, StepContactInfo)
	}
	if state.Draft.CurrentStep != StepContactInfo {
		t.Errorf("draft current step = %d, want %d", state.Draft.CurrentStep, StepContactInfo)
	}
	if !hasEffect[EmitStepView](effects) {
		t.Error("expected an EmitStepView effect")
	}
	if !hasEffect[SaveDraft](effects) {
		t.Error("expected a SaveDraft effect")
	}
}

// Preferences are optional, so step three always advances, even when a
// field is over its limit. The submit gate still catches it later.
func TestNextFromPreferencesAlwaysAdvances(t *testing.T) {
	state := NewState()
	state.Step = StepPreferences
	state.Draft = completeDraft()
	state.Draft.MusicPreferences = strings.Repeat("a", 501)

	state, _ = Transition(state, Next{})

	if state.Step != StepReview {
		t.Errorf("step = %d, want %d", state.Step, StepReview)
	}
	if len(state.FieldErrors) != 0 {
		t.Errorf("step three gate produced errors: %v", state.FieldErrors)
	}

	// The final gate on the review step rejects the over-limit field.
	state, _ = Transition(state, Submit{})
	if state.Submitting {
		t.Error("submit should be blocked by the over-limit preferences")
	}
	if state.FieldError("musicPreferences") == "" {
		t.Error("expected a musicPreferences error from the submit gate")
	}
}

// Back never validates: even with a draft that would fail every gate,
// it walks to the previous step.
func TestBackAlwaysAllowed(t *testing.T) {
	state := NewState()
	state.Step = StepContactInfo
	state.FieldErrors = []apperrors.FieldError{{Field: "name", Message: "too short"}}

	state, _ = Transition(state, Back{})

	if state.Step != StepEventDetails {
		t.Errorf("step = %d, want %d", state.Step, StepEventDetails)
	}
	if len(state.FieldErrors) != 0 {
		t.Error("back should clear field errors")
	}
}

func TestBackStopsAtFirstStep(t *testing.T) {
	state, effects := Transition(NewState(), Back{})

	if state.Step != FirstStep {
		t.Errorf("step = %d, want %d", state.Step, FirstStep)
	}
	if len(effects) != 0 {
		t.Error("back at first step should be a no-op")
	}
}

func TestNextStopsAtLastStep(t *testing.T) {
	state := stateAtReview()

	state, effects := Transition(state, Next{})

	if state.Step != LastStep {
		t.Errorf("step = %d, want %d", state.Step, LastStep)
	}
	if len(effects) != 0 {
		t.Error("next at last step should be a no-op")
	}
}

// ────────────────────────────────────────────────
// Submission
// ────────────────────────────────────────────────

func TestSubmitFromReview(t *testing.T) {
	state, effects := Transition(stateAtReview(), Submit{})

	if !state.Submitting {
		t.Error("expected Submitting state")
	}
	if !hasEffect[DoSubmit](effects) {
		t.Error("expected a DoSubmit effect")
	}
}

func TestSubmitRejectedOffReviewStep(t *testing.T) {
	state := NewState()
	state.Draft = completeDraft()

	next, effects := Transition(state, Submit{})

	if next.Submitting {
		t.Error("submit away from the review step must not start")
	}
	if len(effects) != 0 {
		t.Errorf("expected no effects, got %v", effects)
	}
}

// A second Submit while one is in flight must not fire another
// request.
func TestSubmitNotReentrant(t *testing.T) {
	state, _ := Transition(stateAtReview(), Submit{})

	again, effects := Transition(state, Submit{})

	if hasEffect[DoSubmit](effects) {
		t.Error("re-entrant submit produced a second DoSubmit")
	}
	if !again.Submitting {
		t.Error("state should still be submitting")
	}
}

func TestSubmitBlockedByFinalGate(t *testing.T) {
	state := stateAtReview()
	state.Draft.Email = "broken"

	state, effects := Transition(state, Submit{})

	if state.Submitting {
		t.Error("invalid draft must not start submitting")
	}
	if hasEffect[DoSubmit](effects) {
		t.Error("invalid draft must not produce DoSubmit")
	}
	if state.FieldError("email") == "" {
		t.Error("expected an email field error")
	}
}

func TestSubmitSucceededClearsDraft(t *testing.T) {
	state, _ := Transition(stateAtReview(), Submit{})

	booking := &model.Booking{ID: "abc123"}
	state, effects := Transition(state, SubmitSucceeded{Booking: booking})

	if !state.Submitted || state.Submitting {
		t.Errorf("state = {submitted:%v submitting:%v}, want submitted", state.Submitted, state.Submitting)
	}
	if state.Booking == nil || state.Booking.ID != "abc123" {
		t.Error("expected the created booking on the state")
	}
	if !hasEffect[ClearDraft](effects) {
		t.Error("expected a ClearDraft effect")
	}
}

// A failed submit keeps the draft and surfaces the server's field
// errors so the user can correct and retry.
func TestSubmitFailedKeepsDraft(t *testing.T) {
	state, _ := Transition(stateAtReview(), Submit{})

	state, effects := Transition(state, SubmitFailed{
		Message:     "Validation failed",
		FieldErrors: []apperrors.FieldError{{Field: "eventDate", Message: "Event date must be at least tomorrow"}},
	})

	if state.Submitting || state.Submitted {
		t.Error("failed submit should return to editable state")
	}
	if state.Draft.Name == "" {
		t.Error("draft must survive a failed submit")
	}
	if state.SubmitError != "Validation failed" {
		t.Errorf("submit error = %q", state.SubmitError)
	}
	if state.FieldError("eventDate") == "" {
		t.Error("expected server field errors on the state")
	}
	if hasEffect[ClearDraft](effects) {
		t.Error("failed submit must not clear the draft")
	}

	// The user can immediately resubmit.
	state, effects = Transition(state, Submit{})
	if !state.Submitting || !hasEffect[DoSubmit](effects) {
		t.Error("resubmit after failure should start a new submission")
	}
}

func TestStaleSubmitResultIgnored(t *testing.T) {
	state := NewState()

	next, effects := Transition(state, SubmitSucceeded{Booking: &model.Booking{ID: "x"}})
	if next.Submitted || len(effects) != 0 {
		t.Error("a submit result with no submit in flight must be ignored")
	}
}

// ────────────────────────────────────────────────
// Restore and reset
// ────────────────────────────────────────────────

func TestRestoreResumesSavedStep(t *testing.T) {
	draft := completeDraft()
	draft.CurrentStep = StepPreferences

	state, effects := Transition(NewState(), Restore{Draft: draft})

	if state.Step != StepPreferences {
		t.Errorf("step = %d, want %d", state.Step, StepPreferences)
	}
	if state.Draft.Name != draft.Name {
		t.Error("restored draft lost data")
	}
	if !hasEffect[EmitStepView](effects) {
		t.Error("expected an EmitStepView effect on restore")
	}
}

func TestRestoreClampsInvalidStep(t *testing.T) {
	draft := completeDraft()
	draft.CurrentStep = 99

	state, _ := Transition(NewState(), Restore{Draft: draft})

	if state.Step != FirstStep {
		t.Errorf("step = %d, want %d for out-of-range saved step", state.Step, FirstStep)
	}
}

func TestResetClearsEverything(t *testing.T) {
	state := stateAtReview()
	state.FieldErrors = []apperrors.FieldError{{Field: "name", Message: "x"}}

	state, effects := Transition(state, Reset{})

	if state.Step != FirstStep || !state.Draft.IsEmpty() || len(state.FieldErrors) != 0 {
		t.Errorf("reset state = %+v, want fresh", state)
	}
	if !hasEffect[ClearDraft](effects) {
		t.Error("expected a ClearDraft effect")
	}
}
