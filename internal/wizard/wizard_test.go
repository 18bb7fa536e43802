package wizard

import (
	"testing"
	"time"
)

// Starting over must not kill the autosave loop: edits made after a
// Reset still reach the store.
func TestWizardAutosavesAfterReset(t *testing.T) {
	store := NewMemStore()
	wiz := New(Options{
		Store:         store,
		AutosaveDelay: 20 * time.Millisecond,
	})
	defer wiz.Close()

	wiz.Start()
	wiz.Dispatch(SetField{Field: "name", Value: "John"})
	wiz.Dispatch(Reset{})

	if store.Saved() {
		t.Fatal("reset should clear the stored draft")
	}

	wiz.Dispatch(SetField{Field: "name", Value: "Jane"})

	waitFor(t, time.Second, store.Saved)
	draft, _, _ := store.Load()
	if draft.Name != "Jane" {
		t.Errorf("saved draft = %+v, want the post-reset edit", draft)
	}
}

func TestWizardStartRestoresDraft(t *testing.T) {
	store := NewMemStore()
	if err := store.Save(completeDraft()); err != nil {
		t.Fatal(err)
	}

	wiz := New(Options{
		Store:         store,
		AutosaveDelay: time.Hour,
	})
	defer wiz.Close()

	state := wiz.Start()
	if state.Draft.IsEmpty() {
		t.Error("start should restore the saved draft")
	}
	if state.Draft.Name != "John Smith" {
		t.Errorf("restored name = %q", state.Draft.Name)
	}
}
