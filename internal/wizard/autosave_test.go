package wizard

import (
	"errors"
	"sync"
	"testing"
	"time"

	"nuffjamz/pkg/model"
)

// countingStore wraps MemStore and counts Save calls so the debounce
// behavior can be asserted.
type countingStore struct {
	MemStore

	mu    sync.Mutex
	saves int
}

func (s *countingStore) Save(draft model.BookingDraft) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return s.MemStore.Save(draft)
}

func (s *countingStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

// A burst of edits must collapse into one save of the latest draft.
func TestAutosaverDebouncesBursts(t *testing.T) {
	store := &countingStore{}
	saver := NewAutosaver(store, 30*time.Millisecond, nil)
	defer saver.Stop()

	for _, name := range []string{"J", "Jo", "Joh", "John"} {
		saver.Queue(model.BookingDraft{Name: name})
		time.Sleep(5 * time.Millisecond)
	}

	waitFor(t, time.Second, func() bool { return store.saveCount() == 1 })

	draft, ok, _ := store.Load()
	if !ok || draft.Name != "John" {
		t.Errorf("saved draft = %+v, want the latest edit", draft)
	}
	if draft.LastSavedAt.IsZero() {
		t.Error("saved draft should carry a save timestamp")
	}

	// No further saves after the burst settled.
	time.Sleep(60 * time.Millisecond)
	if got := store.saveCount(); got != 1 {
		t.Errorf("save count = %d, want 1", got)
	}
}

func TestAutosaverFlushSavesImmediately(t *testing.T) {
	store := &countingStore{}
	saver := NewAutosaver(store, time.Hour, nil)
	defer saver.Stop()

	saver.Queue(model.BookingDraft{Name: "John"})
	saver.Flush()

	if got := store.saveCount(); got != 1 {
		t.Fatalf("save count after flush = %d, want 1", got)
	}
}

func TestAutosaverFlushWithNothingPending(t *testing.T) {
	store := &countingStore{}
	saver := NewAutosaver(store, time.Hour, nil)

	saver.Flush()

	if got := store.saveCount(); got != 0 {
		t.Errorf("save count = %d, want 0", got)
	}
}

func TestAutosaverStopCancelsPendingSave(t *testing.T) {
	store := &countingStore{}
	saver := NewAutosaver(store, 20*time.Millisecond, nil)

	saver.Queue(model.BookingDraft{Name: "John"})
	saver.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := store.saveCount(); got != 0 {
		t.Errorf("save count after stop = %d, want 0", got)
	}

	// Queue after Stop is ignored.
	saver.Queue(model.BookingDraft{Name: "Jane"})
	saver.Flush()
	if got := store.saveCount(); got != 0 {
		t.Errorf("save count after queue-on-stopped = %d, want 0", got)
	}
}

// Reset drops the pending save but leaves the autosaver running, so
// edits made afterwards still persist.
func TestAutosaverResetStaysUsable(t *testing.T) {
	store := &countingStore{}
	saver := NewAutosaver(store, 20*time.Millisecond, nil)
	defer saver.Stop()

	saver.Queue(model.BookingDraft{Name: "John"})
	saver.Reset()

	time.Sleep(60 * time.Millisecond)
	if got := store.saveCount(); got != 0 {
		t.Fatalf("save count after reset = %d, want 0", got)
	}

	saver.Queue(model.BookingDraft{Name: "Jane"})
	waitFor(t, time.Second, func() bool { return store.saveCount() == 1 })

	draft, ok, _ := store.Load()
	if !ok || draft.Name != "Jane" {
		t.Errorf("saved draft = %+v, want the post-reset edit", draft)
	}
}

func TestAutosaverReportsStatus(t *testing.T) {
	store := NewMemStore()
	statuses := make(chan SaveStatus, 8)
	saver := NewAutosaver(store, time.Hour, func(s SaveStatus, err error) {
		statuses <- s
	})
	defer saver.Stop()

	saver.Queue(model.BookingDraft{Name: "John"})
	saver.Flush()

	if got := <-statuses; got != SaveSaving {
		t.Errorf("first status = %v, want saving", got)
	}
	if got := <-statuses; got != SaveSaved {
		t.Errorf("second status = %v, want saved", got)
	}
}

func TestAutosaverReportsSaveError(t *testing.T) {
	store := NewMemStore()
	store.SaveErr = errors.New("disk full")

	var (
		mu      sync.Mutex
		lastErr error
		last    SaveStatus
	)
	saver := NewAutosaver(store, time.Hour, func(s SaveStatus, err error) {
		mu.Lock()
		last, lastErr = s, err
		mu.Unlock()
	})
	defer saver.Stop()

	saver.Queue(model.BookingDraft{Name: "John"})
	saver.Flush()

	mu.Lock()
	defer mu.Unlock()
	if last != SaveError {
		t.Errorf("last status = %v, want error", last)
	}
	if lastErr == nil || lastErr.Error() != "disk full" {
		t.Errorf("last error = %v, want disk full", lastErr)
	}
	if store.Saved() {
		t.Error("failed save must not mark the store as saved")
	}
}
