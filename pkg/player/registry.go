package player

import (
	"sync"

	"github.com/remihq/remi/pkg/domain"
)

// Ambient volume levels applied to active surfaces: reduced while a ducking
// reason is held, full otherwise.
const (
	DuckedVolume = 20
	FullVolume   = 100
)

// Registry tracks the surfaces of the item the client currently displays.
// At most one item is displayed at a time; displaying a new item replaces the
// previous surfaces. A media command whose target is not displayed finds no
// surface here and stays pending.
type Registry struct {
	mu      sync.RWMutex
	emit    func(domain.Event)
	audio   *AudioSurface
	youtube *YouTubeSurface
}

func NewRegistry(emit func(domain.Event)) *Registry {
	return &Registry{emit: emit}
}

// Display registers surfaces for the item now shown by the client. Items
// without a playable surface (photos, text) clear the registry.
func (r *Registry) Display(item domain.ContentItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.audio = nil
	r.youtube = nil

	switch item.Type {
	case domain.ContentTypeAudio:
		r.audio = NewAudioSurface(item.ID, r.emit)
	case domain.ContentTypeYouTube:
		r.youtube = NewYouTubeSurface(item.ID, r.emit)
	}
}

// Clear drops all surfaces, used when the detail view empties out.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.audio = nil
	r.youtube = nil
}

// Audio returns the displayed audio surface if it belongs to contentID.
func (r *Registry) Audio(contentID string) (*AudioSurface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.audio != nil && r.audio.ContentID() == contentID {
		return r.audio, true
	}
	return nil, false
}

// YouTube returns the displayed video surface if it belongs to contentID.
func (r *Registry) YouTube(contentID string) (*YouTubeSurface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.youtube != nil && r.youtube.ContentID() == contentID {
		return r.youtube, true
	}
	return nil, false
}

// SetVolume applies a volume level to whatever surface is active. Setting the
// same level twice is harmless.
func (r *Registry) SetVolume(level int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.audio != nil {
		r.audio.SetVolume(level)
	}
	if r.youtube != nil {
		r.youtube.SetVolume(level)
	}
}
