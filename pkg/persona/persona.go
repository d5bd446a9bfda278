package persona

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/remihq/remi/pkg/logger"
)

// Persona configures the assistant's voice. All fields are optional in the
// file; missing ones keep their compiled defaults.
type Persona struct {
	Name         string `yaml:"name"`
	Greeting     string `yaml:"greeting"`
	SystemPrompt string `yaml:"system_prompt"`
}

func Default() *Persona {
	return &Persona{
		Name:     "Remi",
		Greeting: "Hi! I'm Remi, your content companion. Upload something or ask me anything.",
		SystemPrompt: `You are Remi, a friendly and helpful AI content companion. You chat with the user about their uploaded content and about anything else they bring up.

You receive the user's full content list (id, name, type and a text description of each item) and, when one is selected, the currently selected item.
- When the user asks what an item is about, answer from its description.
- When the user asks you to tell a story about an item, weave a creative narrative from its description.
- When the user asks to open, see or talk about a specific item, select it with the select_content tool.
- When the user asks to play, pause or restart an audio or YouTube item, use the control_media_playback tool.
- If no content matches what the user asks about, gently guide them to upload or select an item first.

Keep your responses concise, warm and conversational. If a request is ambiguous, ask for clarification.`,
	}
}

// Load reads a persona file. An empty or unreadable path yields the
// defaults; a file that reads but does not parse is an error so a broken
// config never silently falls back.
func Load(path string) (*Persona, error) {
	p := Default()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("persona file unreadable, using defaults", "path", path, logger.Err(err))
		return p, nil
	}

	var file Persona
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing persona file: %w", err)
	}

	if file.Name != "" {
		p.Name = file.Name
	}
	if file.Greeting != "" {
		p.Greeting = file.Greeting
	}
	if file.SystemPrompt != "" {
		p.SystemPrompt = file.SystemPrompt
	}
	return p, nil
}
