package wizard

import (
	"sync"
	"time"

	"nuffjamz/pkg/model"
)

// SaveStatus is the autosave indicator shown to the user.
type SaveStatus int

const (
	SaveIdle SaveStatus = iota
	SaveSaving
	SaveSaved
	SaveError
)

func (s SaveStatus) String() string {
	switch s {
	case SaveSaving:
		return "saving"
	case SaveSaved:
		return "saved"
	case SaveError:
		return "error"
	}
	return "idle"
}

// Autosaver debounces draft writes. Each Queue call resets the timer,
// so a burst of edits produces a single save of the latest draft once
// the user pauses.
type Autosaver struct {
	store    DraftStore
	delay    time.Duration
	onStatus func(SaveStatus, error)

	mu      sync.Mutex
	timer   *time.Timer
	latest  model.BookingDraft
	pending bool
	stopped bool
}

// NewAutosaver creates an autosaver flushing to store after delay of
// inactivity. onStatus may be nil.
func NewAutosaver(store DraftStore, delay time.Duration, onStatus func(SaveStatus, error)) *Autosaver {
	if onStatus == nil {
		onStatus = func(SaveStatus, error) {}
	}
	return &Autosaver{
		store:    store,
		delay:    delay,
		onStatus: onStatus,
	}
}

// Queue schedules a save of the draft, resetting any pending timer.
func (a *Autosaver) Queue(draft model.BookingDraft) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}

	a.latest = draft
	a.pending = true
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.flush)
}

// Flush saves any pending draft immediately, cancelling the debounce.
// Used on shutdown so the last edits are not lost.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	a.flush()
}

// Reset discards any pending save and the queued draft, keeping the
// autosaver usable for later edits. Used when the persisted draft is
// cleared but the wizard keeps running.
func (a *Autosaver) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = false
	a.latest = model.BookingDraft{}
}

// Stop cancels any pending save without flushing.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = false
}

func (a *Autosaver) flush() {
	a.mu.Lock()
	if a.stopped || !a.pending {
		a.mu.Unlock()
		return
	}
	a.pending = false
	draft := a.latest
	a.mu.Unlock()

	draft.LastSavedAt = time.Now().UTC()

	a.onStatus(SaveSaving, nil)
	if err := a.store.Save(draft); err != nil {
		a.onStatus(SaveError, err)
		return
	}
	a.onStatus(SaveSaved, nil)
}
