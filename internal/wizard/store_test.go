package wizard

import (
	"os"
	"path/filepath"
	"testing"

	"nuffjamz/pkg/model"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "draft.json")
	store := NewFileStore(path)

	draft := model.BookingDraft{
		EventType:   model.EventWedding,
		Name:        "John Smith",
		Email:       "john@example.com",
		CurrentStep: StepContactInfo,
	}

	if err := store.Save(draft); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("expected a saved draft")
	}
	if loaded.Name != draft.Name || loaded.CurrentStep != draft.CurrentStep {
		t.Errorf("loaded = %+v, want %+v", loaded, draft)
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))

	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Error("missing file should report no draft")
	}
}

// A corrupt or truncated draft file must not block the wizard; it is
// treated as if no draft exists.
func TestFileStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Error("corrupt file should report no draft")
	}
}

func TestFileStoreLoadEmptyDraft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.json")
	store := NewFileStore(path)

	if err := store.Save(model.BookingDraft{}); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Error("an empty draft should report as absent")
	}
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.json")
	store := NewFileStore(path)

	if err := store.Save(model.BookingDraft{Name: "John"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("clear should remove the draft file")
	}

	// Clearing again is not an error.
	if err := store.Clear(); err != nil {
		t.Errorf("second clear: %v", err)
	}
}
