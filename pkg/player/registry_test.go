package player

import (
	"testing"

	"github.com/remihq/remi/pkg/domain"
)

func collectEmit(events *[]domain.Event) func(domain.Event) {
	return func(e domain.Event) { *events = append(*events, e) }
}

func TestYouTubeSurfacePayloads(t *testing.T) {
	var events []domain.Event
	surface := NewYouTubeSurface("vid-1", collectEmit(&events))

	surface.Play()
	surface.Pause()
	surface.SeekStart()
	surface.SetVolume(20)

	expected := []string{
		`{"event":"command","func":"playVideo","args":""}`,
		`{"event":"command","func":"pauseVideo","args":""}`,
		`{"event":"command","func":"seekTo","args":[0,true]}`,
		`{"event":"command","func":"setVolume","args":[20]}`,
	}
	if len(events) != len(expected) {
		t.Fatalf("expected %d events, got %d", len(expected), len(events))
	}
	for i, payload := range expected {
		instr := events[i].Player
		if instr == nil || instr.Payload != payload {
			t.Errorf("event %d payload = %q, expected %q", i, instr.Payload, payload)
		}
		if instr.ContentID != "vid-1" || instr.Surface != domain.MediaTypeYouTube {
			t.Errorf("event %d routing = %+v", i, instr)
		}
	}
}

func TestAudioSurfaceActions(t *testing.T) {
	var events []domain.Event
	surface := NewAudioSurface("song-1", collectEmit(&events))

	surface.Play()
	surface.Pause()
	surface.SeekStart()
	surface.SetVolume(100)

	expected := []string{"play", "pause", "seekStart", "setVolume"}
	for i, action := range expected {
		instr := events[i].Player
		if instr == nil || instr.Action != action {
			t.Errorf("event %d action = %+v, expected %q", i, instr, action)
		}
	}
	if events[3].Player.Volume != 100 {
		t.Errorf("expected volume 100, got %d", events[3].Player.Volume)
	}
}

func TestRegistryDisplayRoutesByType(t *testing.T) {
	var events []domain.Event
	registry := NewRegistry(collectEmit(&events))

	registry.Display(domain.ContentItem{ID: "song-1", Type: domain.ContentTypeAudio})
	if _, ok := registry.Audio("song-1"); !ok {
		t.Fatal("expected audio surface for displayed audio item")
	}
	if _, ok := registry.YouTube("song-1"); ok {
		t.Fatal("expected no video surface for an audio item")
	}

	registry.Display(domain.ContentItem{ID: "vid-1", Type: domain.ContentTypeYouTube})
	if _, ok := registry.Audio("song-1"); ok {
		t.Fatal("expected previous surface replaced")
	}
	if _, ok := registry.YouTube("vid-1"); !ok {
		t.Fatal("expected video surface for displayed video item")
	}

	// Surfaces are keyed to the displayed item.
	if _, ok := registry.YouTube("vid-2"); ok {
		t.Fatal("expected no surface for a different content id")
	}

	registry.Display(domain.ContentItem{ID: "pic-1", Type: domain.ContentTypePhoto})
	if _, ok := registry.YouTube("vid-1"); ok {
		t.Fatal("expected photo display to clear playable surfaces")
	}
}

func TestRegistrySetVolumeReachesActiveSurface(t *testing.T) {
	var events []domain.Event
	registry := NewRegistry(collectEmit(&events))

	registry.SetVolume(DuckedVolume)
	if len(events) != 0 {
		t.Fatalf("expected no instruction without a surface, got %+v", events)
	}

	registry.Display(domain.ContentItem{ID: "song-1", Type: domain.ContentTypeAudio})
	registry.SetVolume(DuckedVolume)

	if len(events) != 1 || events[0].Player.Volume != DuckedVolume {
		t.Fatalf("expected one ducked volume instruction, got %+v", events)
	}

	registry.Clear()
	registry.SetVolume(FullVolume)
	if len(events) != 1 {
		t.Fatal("expected no instruction after clear")
	}
}
