package services

import (
	"testing"

	"github.com/remihq/remi/pkg/domain"
	"github.com/remihq/remi/pkg/player"
)

type volumeRecorder struct {
	levels []int
}

func (v *volumeRecorder) SetVolume(level int) {
	v.levels = append(v.levels, level)
}

func TestDuckingActivation(t *testing.T) {
	recorder := &volumeRecorder{}
	svc := NewDuckingService(recorder)

	svc.AddReason(domain.DuckReasonRecording)
	if !svc.Active() {
		t.Fatal("expected ducking to be active after adding a reason")
	}
	if len(recorder.levels) != 1 || recorder.levels[0] != player.DuckedVolume {
		t.Fatalf("expected one ducked volume update, got %v", recorder.levels)
	}

	// A second reason must not re-apply the level.
	svc.AddReason(domain.DuckReasonTTS)
	if len(recorder.levels) != 1 {
		t.Fatalf("expected no extra volume update, got %v", recorder.levels)
	}

	svc.RemoveReason(domain.DuckReasonRecording)
	if !svc.Active() {
		t.Fatal("expected ducking to stay active while a reason remains")
	}
	if len(recorder.levels) != 1 {
		t.Fatalf("expected no volume update while a reason remains, got %v", recorder.levels)
	}

	svc.RemoveReason(domain.DuckReasonTTS)
	if svc.Active() {
		t.Fatal("expected ducking to be inactive after removing all reasons")
	}
	if len(recorder.levels) != 2 || recorder.levels[1] != player.FullVolume {
		t.Fatalf("expected full volume restore, got %v", recorder.levels)
	}
}

func TestDuckingIdempotentAdd(t *testing.T) {
	recorder := &volumeRecorder{}
	svc := NewDuckingService(recorder)

	svc.AddReason(domain.DuckReasonRecording)
	svc.AddReason(domain.DuckReasonRecording)
	svc.RemoveReason(domain.DuckReasonRecording)

	if svc.Active() {
		t.Fatal("expected a duplicated reason to be held once")
	}
}

func TestDuckingRemoveUnknownReason(t *testing.T) {
	recorder := &volumeRecorder{}
	svc := NewDuckingService(recorder)

	svc.RemoveReason("nonexistent")

	if svc.Active() {
		t.Fatal("expected ducking to stay inactive")
	}
	if len(recorder.levels) != 0 {
		t.Fatalf("expected no volume updates, got %v", recorder.levels)
	}
}

func TestDuckingApplyResendsCurrentLevel(t *testing.T) {
	recorder := &volumeRecorder{}
	svc := NewDuckingService(recorder)

	svc.Apply()
	if len(recorder.levels) != 1 || recorder.levels[0] != player.FullVolume {
		t.Fatalf("expected full volume while inactive, got %v", recorder.levels)
	}

	svc.AddReason(domain.DuckReasonRecording)
	svc.Apply()
	if last := recorder.levels[len(recorder.levels)-1]; last != player.DuckedVolume {
		t.Fatalf("expected ducked volume while active, got %d", last)
	}
}
