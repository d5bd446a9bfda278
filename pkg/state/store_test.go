package state

import (
	"testing"

	"github.com/remihq/remi/pkg/domain"
)

func TestStoreSelection(t *testing.T) {
	store := NewStore()

	if _, ok := store.Selected(); ok {
		t.Fatal("expected empty selection initially")
	}

	store.Select("a")
	if id, ok := store.Selected(); !ok || id != "a" {
		t.Fatalf("expected selection a, got %q ok=%v", id, ok)
	}

	store.Select("")
	if _, ok := store.Selected(); ok {
		t.Fatal("expected selection cleared")
	}
}

func TestStoreClearSelectionIf(t *testing.T) {
	store := NewStore()
	store.Select("a")

	if store.ClearSelectionIf("b") {
		t.Fatal("expected no clear for a different id")
	}
	if id, _ := store.Selected(); id != "a" {
		t.Fatalf("expected selection kept, got %q", id)
	}

	if !store.ClearSelectionIf("a") {
		t.Fatal("expected clear for the selected id")
	}
	if store.ClearSelectionIf("") {
		t.Fatal("expected empty id to never clear")
	}
}

func TestStorePendingIdentity(t *testing.T) {
	store := NewStore()

	play := domain.MediaCommand{ContentID: "vid-1", MediaType: domain.MediaTypeYouTube, Command: domain.PlaybackPlay}
	pause := domain.MediaCommand{ContentID: "vid-1", MediaType: domain.MediaTypeYouTube, Command: domain.PlaybackPause}

	if _, ok := store.Pending(); ok {
		t.Fatal("expected no pending command initially")
	}

	store.SetPending(play)

	// A stale dispatch for a superseded command must not clear the slot.
	store.SetPending(pause)
	if store.ClearPendingIf(play) {
		t.Fatal("expected superseded command clear to be suppressed")
	}
	if pending, ok := store.Pending(); !ok || pending.Command != domain.PlaybackPause {
		t.Fatalf("expected pause still pending, got %+v ok=%v", pending, ok)
	}

	if !store.ClearPendingIf(pause) {
		t.Fatal("expected matching command to clear")
	}
	if _, ok := store.Pending(); ok {
		t.Fatal("expected slot empty after clear")
	}
}
