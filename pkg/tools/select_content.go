package tools

import (
	"context"
	"log/slog"

	"github.com/sashabaranov/go-openai/jsonschema"
)

type selectContent struct {
	recorder *Recorder
}

func NewSelectContent(recorder *Recorder) *selectContent {
	return &selectContent{recorder: recorder}
}

func (s *selectContent) Name() string {
	return "select_content"
}

func (s *selectContent) Description() string {
	return "Select a content item from the user's list to show it in the detail view. " +
		"Use this when the user asks to see, open or talk about a specific item."
}

func (s *selectContent) Parameters() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"contentId": {
				Type:        jsonschema.String,
				Description: "The id of the content item to select",
			},
		},
		Required: []string{"contentId"},
	}
}

func (s *selectContent) Function() any {
	return func(ctx context.Context, contentID string) (string, error) {
		slog.DebugContext(ctx, "Tool invoked", "tool", s.Name(), "contentID", contentID)

		s.recorder.RecordSelection(contentID)
		return "Content selected.", nil
	}
}
