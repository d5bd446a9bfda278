package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/remihq/remi/pkg/domain"
	"github.com/remihq/remi/pkg/player"
	"github.com/remihq/remi/pkg/state"
)

type instructionLog struct {
	mu           sync.Mutex
	instructions []domain.PlayerInstruction
}

func (l *instructionLog) emit(event domain.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if event.Player != nil {
		l.instructions = append(l.instructions, *event.Player)
	}
}

func (l *instructionLog) snapshot() []domain.PlayerInstruction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.PlayerInstruction(nil), l.instructions...)
}

func newPlaybackFixture(displayed domain.ContentItem) (*playbackService, *state.Store, *instructionLog) {
	log := &instructionLog{}
	registry := player.NewRegistry(log.emit)
	if displayed.ID != "" {
		registry.Display(displayed)
	}
	store := state.NewStore()

	svc := NewPlaybackService(store, registry, 5*time.Millisecond, 5*time.Millisecond)
	return svc, store, log
}

func waitForInstructions(t *testing.T, log *instructionLog, count int) []domain.PlayerInstruction {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if got := log.snapshot(); len(got) >= count {
			return got
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d instructions, got %+v", count, log.snapshot())
	return nil
}

func TestPlaybackAudioCommands(t *testing.T) {
	tests := []struct {
		command domain.PlaybackAction
		actions []string
	}{
		{domain.PlaybackPlay, []string{"play"}},
		{domain.PlaybackPause, []string{"pause"}},
		{domain.PlaybackRestart, []string{"seekStart", "play"}},
	}

	for _, test := range tests {
		svc, store, log := newPlaybackFixture(domain.ContentItem{ID: "song-1", Type: domain.ContentTypeAudio})

		cmd := domain.MediaCommand{ContentID: "song-1", MediaType: domain.MediaTypeAudio, Command: test.command}
		store.SetPending(cmd)

		svc.Run(context.Background())

		got := log.snapshot()
		if len(got) != len(test.actions) {
			t.Fatalf("%s: expected %d instructions, got %+v", test.command, len(test.actions), got)
		}
		for i, action := range test.actions {
			if got[i].Action != action || got[i].Surface != domain.MediaTypeAudio {
				t.Errorf("%s: instruction %d = %+v, expected action %q", test.command, i, got[i], action)
			}
		}
		if _, ok := store.Pending(); ok {
			t.Errorf("%s: expected pending command cleared", test.command)
		}
	}
}

func TestPlaybackYouTubePlayIsDelayed(t *testing.T) {
	svc, store, log := newPlaybackFixture(domain.ContentItem{ID: "vid-1", Type: domain.ContentTypeYouTube})

	cmd := domain.MediaCommand{ContentID: "vid-1", MediaType: domain.MediaTypeYouTube, Command: domain.PlaybackPlay}
	store.SetPending(cmd)

	svc.Run(context.Background())

	if got := log.snapshot(); len(got) != 0 {
		t.Fatalf("expected no instruction before the delay, got %+v", got)
	}

	got := waitForInstructions(t, log, 1)
	if got[0].Payload != `{"event":"command","func":"playVideo","args":""}` {
		t.Fatalf("unexpected payload %q", got[0].Payload)
	}
	if _, ok := store.Pending(); ok {
		t.Fatal("expected pending command cleared after delayed dispatch")
	}
}

func TestPlaybackYouTubeRestart(t *testing.T) {
	svc, store, log := newPlaybackFixture(domain.ContentItem{ID: "vid-1", Type: domain.ContentTypeYouTube})

	cmd := domain.MediaCommand{ContentID: "vid-1", MediaType: domain.MediaTypeYouTube, Command: domain.PlaybackRestart}
	store.SetPending(cmd)

	svc.Run(context.Background())

	got := log.snapshot()
	if len(got) != 1 || got[0].Payload != `{"event":"command","func":"seekTo","args":[0,true]}` {
		t.Fatalf("expected immediate seek instruction, got %+v", got)
	}

	got = waitForInstructions(t, log, 2)
	if got[1].Payload != `{"event":"command","func":"playVideo","args":""}` {
		t.Fatalf("expected delayed play instruction, got %+v", got[1])
	}
}

func TestPlaybackLeavesCommandPendingWithoutSurface(t *testing.T) {
	svc, store, log := newPlaybackFixture(domain.ContentItem{})

	cmd := domain.MediaCommand{ContentID: "vid-1", MediaType: domain.MediaTypeYouTube, Command: domain.PlaybackPlay}
	store.SetPending(cmd)

	svc.Run(context.Background())
	time.Sleep(20 * time.Millisecond)

	if got := log.snapshot(); len(got) != 0 {
		t.Fatalf("expected no instructions without a surface, got %+v", got)
	}
	pending, ok := store.Pending()
	if !ok || pending.ContentID != "vid-1" {
		t.Fatalf("expected command to remain pending, got %+v ok=%v", pending, ok)
	}
}

func TestPlaybackStaleTimerDoesNotClearSupersedingCommand(t *testing.T) {
	svc, store, _ := newPlaybackFixture(domain.ContentItem{ID: "vid-1", Type: domain.ContentTypeYouTube})
	svc.playDelay = 20 * time.Millisecond

	first := domain.MediaCommand{ContentID: "vid-1", MediaType: domain.MediaTypeYouTube, Command: domain.PlaybackPlay}
	store.SetPending(first)
	svc.Run(context.Background())

	// Supersede before the delayed dispatch fires.
	second := domain.MediaCommand{ContentID: "vid-1", MediaType: domain.MediaTypeYouTube, Command: domain.PlaybackPause}
	store.SetPending(second)

	time.Sleep(50 * time.Millisecond)

	pending, ok := store.Pending()
	if !ok || pending.Command != domain.PlaybackPause {
		t.Fatalf("expected superseding command to stay pending, got %+v ok=%v", pending, ok)
	}
}
