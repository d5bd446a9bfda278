package tools

import (
	"context"
	"testing"

	"github.com/remihq/remi/pkg/domain"
)

func TestRecorderCapturesToolEffects(t *testing.T) {
	recorder := NewRecorder()

	selectTool := NewSelectContent(recorder)
	fn := selectTool.Function().(func(context.Context, string) (string, error))
	if _, err := fn(context.Background(), "vid-1"); err != nil {
		t.Fatalf("select tool failed: %v", err)
	}

	playTool := NewControlMediaPlayback(recorder)
	playFn := playTool.Function().(func(context.Context, string, string, string) (string, error))
	if _, err := playFn(context.Background(), "vid-1", "youtube", "play"); err != nil {
		t.Fatalf("playback tool failed: %v", err)
	}

	selectedID, cmd := recorder.Snapshot()
	if selectedID != "vid-1" {
		t.Fatalf("expected selection recorded, got %q", selectedID)
	}
	if cmd == nil || cmd.MediaType != domain.MediaTypeYouTube || cmd.Command != domain.PlaybackPlay {
		t.Fatalf("expected playback command recorded, got %+v", cmd)
	}
}

func TestRecorderReset(t *testing.T) {
	recorder := NewRecorder()
	recorder.RecordSelection("a")
	recorder.RecordCommand(domain.MediaCommand{ContentID: "a"})

	recorder.Reset()

	selectedID, cmd := recorder.Snapshot()
	if selectedID != "" || cmd != nil {
		t.Fatalf("expected empty snapshot after reset, got %q, %+v", selectedID, cmd)
	}
}

func TestToolDeclarations(t *testing.T) {
	recorder := NewRecorder()

	selectTool := NewSelectContent(recorder)
	if selectTool.Name() != "select_content" {
		t.Fatalf("unexpected tool name %q", selectTool.Name())
	}
	params := selectTool.Parameters()
	if len(params.Required) != 1 || params.Required[0] != "contentId" {
		t.Fatalf("unexpected required params %v", params.Required)
	}

	playTool := NewControlMediaPlayback(recorder)
	if playTool.Name() != "control_media_playback" {
		t.Fatalf("unexpected tool name %q", playTool.Name())
	}
	required := playTool.Parameters().Required
	if len(required) != 3 {
		t.Fatalf("expected three required params, got %v", required)
	}
}
