package domain

type MediaType string

const (
	MediaTypeAudio   MediaType = "audio"
	MediaTypeYouTube MediaType = "youtube"
)

func (m MediaType) Valid() bool {
	return m == MediaTypeAudio || m == MediaTypeYouTube
}

// ContentType reports the content type a media command of this type targets.
func (m MediaType) ContentType() ContentType {
	if m == MediaTypeAudio {
		return ContentTypeAudio
	}
	return ContentTypeYouTube
}

type PlaybackAction string

const (
	PlaybackPlay    PlaybackAction = "play"
	PlaybackPause   PlaybackAction = "pause"
	PlaybackRestart PlaybackAction = "restart"
)

func (a PlaybackAction) Valid() bool {
	switch a {
	case PlaybackPlay, PlaybackPause, PlaybackRestart:
		return true
	}
	return false
}

// MediaCommand is one abstract playback instruction produced by the assistant
// and consumed by the playback executor.
type MediaCommand struct {
	ContentID string         `json:"contentId"`
	MediaType MediaType      `json:"mediaType"`
	Command   PlaybackAction `json:"command"`
}

// SameIdentity reports whether two commands are the same for the purpose of
// the delayed-dispatch supersession check: contentId and command must match.
func (c MediaCommand) SameIdentity(other MediaCommand) bool {
	return c.ContentID == other.ContentID && c.Command == other.Command
}
