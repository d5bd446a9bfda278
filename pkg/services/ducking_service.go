package services

import (
	"log/slog"
	"sync"

	"github.com/remihq/remi/pkg/player"
)

type VolumeConsumer interface {
	SetVolume(level int)
}

// duckingService tracks which activities need the ambient media volume
// suppressed. Ducking is active iff at least one reason is held. Adding a
// reason twice is idempotent; removing a reason that was never added is a
// no-op. Every code path that adds a reason must remove it on every exit
// path, including errors; a leaked reason suppresses playback volume until
// restart.
type duckingService struct {
	mu       sync.Mutex
	reasons  map[string]struct{}
	consumer VolumeConsumer
}

func NewDuckingService(consumer VolumeConsumer) *duckingService {
	return &duckingService{
		reasons:  make(map[string]struct{}),
		consumer: consumer,
	}
}

func (d *duckingService) AddReason(tag string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	wasActive := len(d.reasons) > 0
	d.reasons[tag] = struct{}{}
	if !wasActive {
		slog.Debug("Ducking ambient volume", "reason", tag)
		d.consumer.SetVolume(player.DuckedVolume)
	}
}

func (d *duckingService) RemoveReason(tag string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.reasons[tag]; !ok {
		return
	}
	delete(d.reasons, tag)
	if len(d.reasons) == 0 {
		slog.Debug("Restoring ambient volume", "reason", tag)
		d.consumer.SetVolume(player.FullVolume)
	}
}

func (d *duckingService) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.reasons) > 0
}

// Apply re-sends the current level, used after a new surface is displayed.
func (d *duckingService) Apply() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.reasons) > 0 {
		d.consumer.SetVolume(player.DuckedVolume)
		return
	}
	d.consumer.SetVolume(player.FullVolume)
}
