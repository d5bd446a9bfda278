package player

import "github.com/remihq/remi/pkg/domain"

// Audio element actions understood by the client.
const (
	audioActionPlay      = "play"
	audioActionPause     = "pause"
	audioActionSeekStart = "seekStart"
	audioActionVolume    = "setVolume"
)

// AudioSurface drives the audio element of the displayed item.
type AudioSurface struct {
	contentID string
	emit      func(domain.Event)
}

func NewAudioSurface(contentID string, emit func(domain.Event)) *AudioSurface {
	return &AudioSurface{contentID: contentID, emit: emit}
}

func (a *AudioSurface) ContentID() string { return a.contentID }

func (a *AudioSurface) Play() {
	a.send(audioActionPlay, 0)
}

func (a *AudioSurface) Pause() {
	a.send(audioActionPause, 0)
}

func (a *AudioSurface) SeekStart() {
	a.send(audioActionSeekStart, 0)
}

func (a *AudioSurface) SetVolume(level int) {
	a.send(audioActionVolume, level)
}

func (a *AudioSurface) send(action string, volume int) {
	a.emit(domain.Event{Player: &domain.PlayerInstruction{
		ContentID: a.contentID,
		Surface:   domain.MediaTypeAudio,
		Action:    action,
		Volume:    volume,
	}})
}
