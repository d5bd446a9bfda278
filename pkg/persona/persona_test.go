package persona

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p.Name != "Remi" {
		t.Fatalf("unexpected default name %q", p.Name)
	}
	if !strings.Contains(p.SystemPrompt, "select_content") || !strings.Contains(p.SystemPrompt, "control_media_playback") {
		t.Fatal("expected default prompt to reference both tools")
	}
}

func TestLoadOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.yaml")
	content := "name: Nova\ngreeting: Hello!\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p.Name != "Nova" || p.Greeting != "Hello!" {
		t.Fatalf("expected overrides applied, got %+v", p)
	}
	if p.SystemPrompt == "" {
		t.Fatal("expected unset field to keep its default")
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if p.Name != "Remi" {
		t.Fatalf("expected defaults, got %+v", p)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.yaml")
	if err := os.WriteFile(path, []byte("name: [unclosed"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}
