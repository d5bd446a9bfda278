package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/remihq/remi/pkg/domain"
	"github.com/remihq/remi/pkg/player"
)

// Default delays bridging the embedded player's readiness latency, after
// which the delayed play dispatch fires.
const (
	DefaultPlayDelay    = 250 * time.Millisecond
	DefaultRestartDelay = 300 * time.Millisecond
)

type PlaybackState interface {
	Pending() (domain.MediaCommand, bool)
	ClearPendingIf(cmd domain.MediaCommand) bool
}

// playbackService consumes the pending media command and drives the surfaces
// of the displayed item. Commands whose target is not displayed are left
// pending until the client reports the item displayed, at which point Run is
// invoked again.
//
// Delayed dispatches are never cancelled. Each one captures its command at
// schedule time and clears the pending slot only if the slot still holds the
// same command when the timer fires, so a superseding command cannot have its
// pending flag cleared by a stale timer.
type playbackService struct {
	state    PlaybackState
	registry *player.Registry

	playDelay    time.Duration
	restartDelay time.Duration
}

func NewPlaybackService(state PlaybackState, registry *player.Registry, playDelay, restartDelay time.Duration) *playbackService {
	if playDelay <= 0 {
		playDelay = DefaultPlayDelay
	}
	if restartDelay <= 0 {
		restartDelay = DefaultRestartDelay
	}
	return &playbackService{
		state:        state,
		registry:     registry,
		playDelay:    playDelay,
		restartDelay: restartDelay,
	}
}

// Run dispatches the pending command, if any, against the displayed surfaces.
func (p *playbackService) Run(ctx context.Context) {
	cmd, ok := p.state.Pending()
	if !ok {
		return
	}

	switch cmd.MediaType {
	case domain.MediaTypeAudio:
		p.runAudio(ctx, cmd)
	case domain.MediaTypeYouTube:
		p.runYouTube(ctx, cmd)
	default:
		slog.WarnContext(ctx, "Dropping command with unknown media type", "mediaType", cmd.MediaType)
		p.state.ClearPendingIf(cmd)
	}
}

func (p *playbackService) runAudio(ctx context.Context, cmd domain.MediaCommand) {
	surface, ok := p.registry.Audio(cmd.ContentID)
	if !ok {
		slog.WarnContext(ctx, "No audio surface displayed for command, leaving it pending",
			"contentID", cmd.ContentID, "command", cmd.Command)
		return
	}

	switch cmd.Command {
	case domain.PlaybackPlay:
		surface.Play()
	case domain.PlaybackPause:
		surface.Pause()
	case domain.PlaybackRestart:
		surface.SeekStart()
		surface.Play()
	}

	// Audio dispatch is synchronous; playback failures on the client are
	// logged there, never retried here.
	p.state.ClearPendingIf(cmd)
}

func (p *playbackService) runYouTube(ctx context.Context, cmd domain.MediaCommand) {
	surface, ok := p.registry.YouTube(cmd.ContentID)
	if !ok {
		slog.WarnContext(ctx, "No video surface displayed for command, leaving it pending",
			"contentID", cmd.ContentID, "command", cmd.Command)
		return
	}

	switch cmd.Command {
	case domain.PlaybackPause:
		// The instruction's effect on the player is asynchronous but the
		// bookkeeping does not wait for it.
		surface.Pause()
		p.state.ClearPendingIf(cmd)

	case domain.PlaybackPlay:
		time.AfterFunc(p.playDelay, func() {
			surface.Play()
			p.state.ClearPendingIf(cmd)
		})

	case domain.PlaybackRestart:
		surface.SeekStart()
		time.AfterFunc(p.restartDelay, func() {
			surface.Play()
			p.state.ClearPendingIf(cmd)
		})
	}
}
