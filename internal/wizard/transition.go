package wizard

import (
	"nuffjamz/pkg/rules"
)

// stepFields returns the gate fields for a step. The preferences step
// has none: both of its fields are optional, so it always passes and
// over-limit text is caught by the submit gate instead.
func stepFields(step int) []string {
	switch step {
	case StepEventDetails:
		return rules.Step1Fields
	case StepContactInfo:
		return rules.Step2Fields
	}
	return nil
}

// Transition applies an action to a state, returning the next state
// and the effects to run. It is pure: no I/O, no clock, no
// randomness beyond what the rules themselves use.
func Transition(state State, action Action) (State, []Effect) {
	switch a := action.(type) {
	case SetField:
		return setField(state, a)
	case Next:
		return next(state)
	case Back:
		return back(state)
	case Submit:
		return submit(state)
	case SubmitSucceeded:
		return submitSucceeded(state, a)
	case SubmitFailed:
		return submitFailed(state, a)
	case Restore:
		return restore(a)
	case Reset:
		return NewState(), []Effect{ClearDraft{}}
	}
	return state, nil
}

func setField(state State, a SetField) (State, []Effect) {
	if state.Submitting || state.Submitted {
		return state, nil
	}

	state.Draft = state.Draft.WithField(a.Field, a.Value)

	// Editing a field clears its stale error; other fields keep theirs.
	if len(state.FieldErrors) > 0 {
		kept := state.FieldErrors[:0:0]
		for _, fe := range state.FieldErrors {
			if fe.Field != a.Field {
				kept = append(kept, fe)
			}
		}
		state.FieldErrors = kept
	}

	return state, []Effect{SaveDraft{Draft: state.Draft}}
}

func next(state State) (State, []Effect) {
	if state.Submitting || state.Submitted || state.Step >= LastStep {
		return state, nil
	}

	if errs := rules.Apply(state.Draft, stepFields(state.Step), rules.ClientGate); len(errs) > 0 {
		state.FieldErrors = errs
		return state, nil
	}

	state.Step++
	state.FieldErrors = nil
	state.Draft.CurrentStep = state.Step

	return state, []Effect{
		EmitStepView{Step: state.Step, StepName: StepName(state.Step)},
		SaveDraft{Draft: state.Draft},
	}
}

func back(state State) (State, []Effect) {
	if state.Submitting || state.Submitted || state.Step <= FirstStep {
		return state, nil
	}

	state.Step--
	state.FieldErrors = nil
	state.Draft.CurrentStep = state.Step

	return state, []Effect{
		EmitStepView{Step: state.Step, StepName: StepName(state.Step)},
		SaveDraft{Draft: state.Draft},
	}
}

func submit(state State) (State, []Effect) {
	if state.Submitting || state.Submitted || state.Step != StepReview {
		return state, nil
	}

	// Final client-side gate over every field before the request goes
	// out. The server re-validates with its own location minimum.
	if errs := rules.Apply(state.Draft, rules.CreateFields, rules.ClientGate); len(errs) > 0 {
		state.FieldErrors = errs
		return state, nil
	}

	state.Submitting = true
	state.SubmitError = ""
	state.FieldErrors = nil

	return state, []Effect{DoSubmit{Draft: state.Draft}}
}

func submitSucceeded(state State, a SubmitSucceeded) (State, []Effect) {
	if !state.Submitting {
		return state, nil
	}

	state.Submitting = false
	state.Submitted = true
	state.Booking = a.Booking

	return state, []Effect{ClearDraft{}}
}

func submitFailed(state State, a SubmitFailed) (State, []Effect) {
	if !state.Submitting {
		return state, nil
	}

	state.Submitting = false
	state.SubmitError = a.Message
	state.FieldErrors = a.FieldErrors

	return state, nil
}

func restore(a Restore) (State, []Effect) {
	state := NewState()
	state.Draft = a.Draft

	if a.Draft.CurrentStep >= FirstStep && a.Draft.CurrentStep <= LastStep {
		state.Step = a.Draft.CurrentStep
	}

	return state, []Effect{
		EmitStepView{Step: state.Step, StepName: StepName(state.Step)},
	}
}
