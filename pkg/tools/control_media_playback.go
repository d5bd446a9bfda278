package tools

import (
	"context"
	"log/slog"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/remihq/remi/pkg/domain"
)

type controlMediaPlayback struct {
	recorder *Recorder
}

func NewControlMediaPlayback(recorder *Recorder) *controlMediaPlayback {
	return &controlMediaPlayback{recorder: recorder}
}

func (c *controlMediaPlayback) Name() string {
	return "control_media_playback"
}

func (c *controlMediaPlayback) Description() string {
	return "Play, pause or restart an audio or YouTube content item. " +
		"Use this when the user asks to play, stop, pause or start something over."
}

func (c *controlMediaPlayback) Parameters() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"contentId": {
				Type:        jsonschema.String,
				Description: "The id of the content item to control",
			},
			"mediaType": {
				Type:        jsonschema.String,
				Enum:        []string{string(domain.MediaTypeAudio), string(domain.MediaTypeYouTube)},
				Description: "The kind of media the item is",
			},
			"command": {
				Type: jsonschema.String,
				Enum: []string{
					string(domain.PlaybackPlay),
					string(domain.PlaybackPause),
					string(domain.PlaybackRestart),
				},
				Description: "The playback command to execute",
			},
		},
		Required: []string{"contentId", "mediaType", "command"},
	}
}

func (c *controlMediaPlayback) Function() any {
	return func(ctx context.Context, contentID, mediaType, command string) (string, error) {
		slog.DebugContext(ctx, "Tool invoked",
			"tool", c.Name(), "contentID", contentID, "mediaType", mediaType, "command", command)

		c.recorder.RecordCommand(domain.MediaCommand{
			ContentID: contentID,
			MediaType: domain.MediaType(mediaType),
			Command:   domain.PlaybackAction(command),
		})
		return "Playback command queued.", nil
	}
}
