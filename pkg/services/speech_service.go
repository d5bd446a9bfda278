package services

import (
	"context"
	"fmt"

	"github.com/remihq/remi/pkg/domain"
)

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// speechService reads assistant replies aloud. The "tts" ducking reason is
// held from the start of synthesis until the client acknowledges playback
// finished (End), or immediately released when synthesis fails.
type speechService struct {
	synth   SpeechSynthesizer
	ducking Ducker
}

func NewSpeechService(synth SpeechSynthesizer, ducking Ducker) *speechService {
	return &speechService{synth: synth, ducking: ducking}
}

// Begin synthesizes speech for text and starts ducking. Every successful
// Begin must be paired with an End when the client finishes (or abandons)
// playback.
func (s *speechService) Begin(ctx context.Context, text string) ([]byte, error) {
	s.ducking.AddReason(domain.DuckReasonTTS)

	audio, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		s.ducking.RemoveReason(domain.DuckReasonTTS)
		return nil, fmt.Errorf("synthesizing speech: %w", err)
	}
	return audio, nil
}

// End releases the ducking reason after client-side playback completes.
func (s *speechService) End(ctx context.Context) {
	s.ducking.RemoveReason(domain.DuckReasonTTS)
}
