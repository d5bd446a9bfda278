package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/remihq/remi/pkg/domain"
)

// stopGracePeriod is how long Stop waits for a final recognition result to
// land before reading the transcript.
const stopGracePeriod = 50 * time.Millisecond

type Ducker interface {
	AddReason(tag string)
	RemoveReason(tag string)
}

// voiceService is the push-to-talk capture session. The client's recognition
// engine pushes partial and final results into it; Stop waits a short grace
// period and hands back whatever accumulated. The "recording" ducking reason
// is held for exactly the lifetime of a session, on every exit path.
type voiceService struct {
	mu        sync.Mutex
	active    bool
	accepting bool
	finals    []string
	interim   string

	ducking Ducker
	eventCh chan<- domain.Event
	grace   time.Duration
}

func NewVoiceService(ducking Ducker, eventCh chan<- domain.Event) *voiceService {
	return &voiceService{
		ducking: ducking,
		eventCh: eventCh,
		grace:   stopGracePeriod,
	}
}

func (v *voiceService) Start(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.active {
		return domain.ErrAlreadyListening
	}
	v.active = true
	v.accepting = true
	v.finals = nil
	v.interim = ""

	v.ducking.AddReason(domain.DuckReasonRecording)
	return nil
}

// Result accumulates a recognition result. Final segments append; an interim
// segment replaces the previous interim. Results arriving within the stop
// grace period still count.
func (v *voiceService) Result(ctx context.Context, text string, final bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.accepting {
		return
	}
	if final {
		v.finals = append(v.finals, text)
		v.interim = ""
	} else {
		v.interim = text
	}

	v.eventCh <- domain.Event{Transcript: &domain.TranscriptUpdate{
		Text:  v.transcriptLocked(),
		Final: final,
	}}
}

// Fail ends the session on a recognition error. The ducking reason is removed
// here too, never leaked.
func (v *voiceService) Fail(ctx context.Context, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.active {
		return
	}
	v.active = false
	v.accepting = false
	v.finals = nil
	v.interim = ""

	v.ducking.RemoveReason(domain.DuckReasonRecording)
	v.eventCh <- domain.Event{Alert: "Voice input error: " + message}
}

// Stop ends capture and returns the accumulated transcript after the grace
// period. An empty transcript means the caller starts no conversational turn.
func (v *voiceService) Stop(ctx context.Context) (string, error) {
	v.mu.Lock()
	if !v.active {
		v.mu.Unlock()
		return "", nil
	}
	v.active = false
	v.ducking.RemoveReason(domain.DuckReasonRecording)
	v.mu.Unlock()

	timer := time.NewTimer(v.grace)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	transcript := v.transcriptLocked()
	v.accepting = false
	v.finals = nil
	v.interim = ""
	return transcript, nil
}

func (v *voiceService) Listening() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.active
}

func (v *voiceService) transcriptLocked() string {
	if len(v.finals) > 0 {
		return strings.Join(v.finals, " ")
	}
	return v.interim
}
