package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/remihq/remi/pkg/domain"
)

const audioTempDir = "tmp/audio"

// Summarize produces a text description of an item. It never returns an
// error: failures come back as error-flavored summary strings, so the item
// still carries a human-readable summary either way.
func (c *Client) Summarize(ctx context.Context, item domain.ContentItem) string {
	var summary string
	var err error

	switch item.Type {
	case domain.ContentTypeText:
		summary, err = c.summarizeText(ctx, item.Data)
	case domain.ContentTypePhoto:
		summary, err = c.summarizePhoto(ctx, item.Data)
	case domain.ContentTypeAudio:
		summary, err = c.summarizeAudio(ctx, item.Name, item.Data)
	case domain.ContentTypeYouTube:
		summary, err = c.summarizeYouTube(ctx, item.Data)
	default:
		return fmt.Sprintf("Unsupported content type: %s. Cannot generate summary.", item.Type)
	}

	if err != nil {
		return fmt.Sprintf("Error generating summary. Details: %v", err)
	}
	if summary == "" {
		return "Summary could not be generated (empty response)."
	}
	return summary
}

func (c *Client) summarizeText(ctx context.Context, text string) (string, error) {
	return c.complete(ctx,
		"You are an AI assistant that specializes in summarizing content. Generate a concise summary of the following text.",
		text,
	)
}

func (c *Client) summarizePhoto(ctx context.Context, dataURI string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "You are an AI assistant that specializes in summarizing content. Generate a concise summary of this image.",
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURI},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating vision completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in vision response")
	}
	return resp.Choices[0].Message.Content, nil
}

// summarizeAudio transcribes the payload first, then summarizes the
// transcript.
func (c *Client) summarizeAudio(ctx context.Context, name, dataURI string) (string, error) {
	path, err := writeDataURIToFile(name, dataURI)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	transcription, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: path,
	})
	if err != nil {
		return "", fmt.Errorf("creating transcription: %w", err)
	}

	return c.complete(ctx,
		"You are an AI assistant that specializes in summarizing content. Generate a concise summary of this audio transcript.",
		transcription.Text,
	)
}

func (c *Client) summarizeYouTube(ctx context.Context, url string) (string, error) {
	return c.complete(ctx,
		"For the YouTube video at the given URL, describe what it is likely about in detail based on everything you know about it: main topics, key takeaways and overall purpose. This description will be used by another AI to discuss the video with a user. If the video is unknown to you, say what can be inferred from the URL and note the uncertainty.",
		url,
	)
}

func (c *Client) complete(ctx context.Context, instruction, input string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: input},
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// writeDataURIToFile decodes a base64 data URI into a temp file, which the
// transcription API wants so it can infer the format from the extension.
func writeDataURIToFile(name, dataURI string) (string, error) {
	_, payload, found := strings.Cut(dataURI, ",")
	if !found {
		return "", fmt.Errorf("data URI has no payload")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decoding data URI payload: %w", err)
	}

	if err := os.MkdirAll(audioTempDir, 0o755); err != nil {
		return "", fmt.Errorf("creating audio temp directory: %w", err)
	}

	ext := filepath.Ext(name)
	if ext == "" {
		ext = ".mp3"
	}
	path := filepath.Join(audioTempDir, fmt.Sprintf("audio-%d%s", time.Now().UnixNano(), ext))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing audio file: %w", err)
	}
	return path, nil
}
