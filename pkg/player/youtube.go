package player

import (
	"fmt"

	"github.com/remihq/remi/pkg/domain"
)

// Embedded player command payloads, sent to the client verbatim for
// postMessage into the iframe. The embed API expects these exact strings.
const (
	youtubePlayPayload  = `{"event":"command","func":"playVideo","args":""}`
	youtubePausePayload = `{"event":"command","func":"pauseVideo","args":""}`
	youtubeSeekPayload  = `{"event":"command","func":"seekTo","args":[0,true]}`
)

// YouTubeSurface drives the embedded video player of the displayed item by
// emitting its one-way command channel payloads.
type YouTubeSurface struct {
	contentID string
	emit      func(domain.Event)
}

func NewYouTubeSurface(contentID string, emit func(domain.Event)) *YouTubeSurface {
	return &YouTubeSurface{contentID: contentID, emit: emit}
}

func (y *YouTubeSurface) ContentID() string { return y.contentID }

func (y *YouTubeSurface) Play() {
	y.post(youtubePlayPayload)
}

func (y *YouTubeSurface) Pause() {
	y.post(youtubePausePayload)
}

func (y *YouTubeSurface) SeekStart() {
	y.post(youtubeSeekPayload)
}

func (y *YouTubeSurface) SetVolume(level int) {
	y.post(fmt.Sprintf(`{"event":"command","func":"setVolume","args":[%d]}`, level))
}

func (y *YouTubeSurface) post(payload string) {
	y.emit(domain.Event{Player: &domain.PlayerInstruction{
		ContentID: y.contentID,
		Surface:   domain.MediaTypeYouTube,
		Payload:   payload,
	}})
}
