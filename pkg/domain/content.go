package domain

import (
	"fmt"
	"time"
)

type ContentType string

const (
	ContentTypePhoto   ContentType = "photo"
	ContentTypeYouTube ContentType = "youtube"
	ContentTypeAudio   ContentType = "audio"
	ContentTypeText    ContentType = "text"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypePhoto, ContentTypeYouTube, ContentTypeAudio, ContentTypeText:
		return true
	}
	return false
}

// ContentItem is one ingested piece of media. Data is type-dependent: a data
// URI for photo and audio, the canonical video URL for youtube, raw text for
// text items.
type ContentItem struct {
	ID        string      `json:"id"`
	Type      ContentType `json:"type"`
	Name      string      `json:"name"`
	Data      string      `json:"data"`
	Thumbnail string      `json:"thumbnail,omitempty"`
	Summary   string      `json:"summary,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ContentInfo is the reduced shape handed to the model for each item.
type ContentInfo struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        ContentType `json:"type"`
	Information string      `json:"information"`
}

// Information returns the text the model should see for this item: the raw
// text for text items, otherwise the summary, otherwise a placeholder. It is
// never empty.
func (c ContentItem) Information() string {
	if c.Type == ContentTypeText {
		if c.Data == "" {
			return "No text content available for this item."
		}
		return c.Data
	}
	if c.Summary != "" {
		return c.Summary
	}
	return fmt.Sprintf("A summary for this %s content (name: %s) is not yet available or applicable.", c.Type, c.Name)
}

func (c ContentItem) Info() ContentInfo {
	return ContentInfo{
		ID:          c.ID,
		Name:        c.Name,
		Type:        c.Type,
		Information: c.Information(),
	}
}
