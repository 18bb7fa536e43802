package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/logger"
	"nuffjamz/pkg/model"
)

// Submitter sends the finished draft to the booking service.
type Submitter interface {
	Submit(ctx context.Context, draft model.BookingDraft) (*model.Booking, error)
}

// Analytics receives step impressions. Implementations are expected
// to be fire-and-forget friendly; the wizard never waits on them.
type Analytics interface {
	StepViewed(ctx context.Context, sessionID string, step int, stepName string) error
}

// Wizard drives the state machine: it dispatches actions through
// Transition and executes the resulting effects.
type Wizard struct {
	mu    sync.Mutex
	state State

	store         DraftStore
	saver         *Autosaver
	analytics     Analytics
	submitter     Submitter
	sessionID     string
	log           *logger.Logger
	submitTimeout time.Duration

	// onChange is invoked with every new state, outside the lock.
	onChange func(State)
}

type Options struct {
	Store         DraftStore
	Analytics     Analytics
	Submitter     Submitter
	AutosaveDelay time.Duration
	OnChange      func(State)
	OnSaveStatus  func(SaveStatus, error)
	Log           *logger.Logger
	SubmitTimeout time.Duration
}

func New(opts Options) *Wizard {
	if opts.OnChange == nil {
		opts.OnChange = func(State) {}
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = 30 * time.Second
	}

	w := &Wizard{
		state:     NewState(),
		store:     opts.Store,
		analytics: opts.Analytics,
		submitter: opts.Submitter,
		sessionID: uuid.New().String(),
		log:       opts.Log,
		onChange:  opts.OnChange,
	}
	w.saver = NewAutosaver(opts.Store, opts.AutosaveDelay, opts.OnSaveStatus)
	w.submitTimeout = opts.SubmitTimeout

	return w
}

// Start restores a saved draft if one exists and reports the first
// step view.
func (w *Wizard) Start() State {
	if w.store != nil {
		if draft, ok, err := w.store.Load(); err == nil && ok {
			return w.Dispatch(Restore{Draft: draft})
		} else if err != nil && w.log != nil {
			w.log.Warn("Failed to load saved draft", "error", err)
		}
	}

	w.runEffects([]Effect{
		EmitStepView{Step: FirstStep, StepName: StepName(FirstStep)},
	})
	return w.State()
}

// State returns a snapshot of the current state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Dispatch applies an action and executes its effects, returning the
// new state.
func (w *Wizard) Dispatch(action Action) State {
	w.mu.Lock()
	next, effects := Transition(w.state, action)
	w.state = next
	w.mu.Unlock()

	w.onChange(next)
	w.runEffects(effects)
	return next
}

// Close flushes any pending autosave and stops background work.
func (w *Wizard) Close() {
	w.saver.Flush()
	w.saver.Stop()
}

func (w *Wizard) runEffects(effects []Effect) {
	for _, effect := range effects {
		switch e := effect.(type) {
		case SaveDraft:
			w.saver.Queue(e.Draft)

		case ClearDraft:
			w.saver.Reset()
			if w.store != nil {
				if err := w.store.Clear(); err != nil && w.log != nil {
					w.log.Warn("Failed to clear draft", "error", err)
				}
			}

		case EmitStepView:
			w.emitStepView(e)

		case DoSubmit:
			go w.doSubmit(e.Draft)
		}
	}
}

// emitStepView fires the analytics call in the background; a slow or
// failing analytics sink never blocks navigation.
func (w *Wizard) emitStepView(e EmitStepView) {
	if w.analytics == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := w.analytics.StepViewed(ctx, w.sessionID, e.Step, e.StepName); err != nil && w.log != nil {
			w.log.Debug("Failed to report step view", "step", e.Step, "error", err)
		}
	}()
}

func (w *Wizard) doSubmit(draft model.BookingDraft) {
	ctx, cancel := context.WithTimeout(context.Background(), w.submitTimeout)
	defer cancel()

	booking, err := w.submitter.Submit(ctx, draft)
	if err != nil {
		message := "Something went wrong submitting your request. Please try again."
		var fieldErrs []apperrors.FieldError
		if appErr, ok := err.(*apperrors.AppError); ok {
			if appErr.Message != "" {
				message = appErr.Message
			}
			fieldErrs = appErr.Fields
		}
		if w.log != nil {
			w.log.Warn("Booking submission failed", "error", err)
		}
		w.Dispatch(SubmitFailed{Message: message, FieldErrors: fieldErrs})
		return
	}

	w.Dispatch(SubmitSucceeded{Booking: booking})
}
