package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/remihq/remi/pkg/api/response"
)

type SpeechProvider interface {
	Begin(ctx context.Context, text string) ([]byte, error)
	End(ctx context.Context)
}

type speech struct {
	provider SpeechProvider
	writer   response.JSONResponseWriter
}

func NewSpeech(provider SpeechProvider) *speech {
	return &speech{
		provider: provider,
		writer:   response.JSONResponseWriter{},
	}
}

type speakRequest struct {
	Text string `json:"text"`
}

// Speak synthesizes the given text and returns MP3 bytes. The caller must
// hit Done once playback finishes so other audio can come back up.
func (s *speech) Speak(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "POST required.")
		return
	}

	var req speakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Text == "" {
		s.writer.WriteErrorResponse(w, http.StatusBadRequest, "Text parameter is missing or empty.")
		return
	}

	audio, err := s.provider.Begin(r.Context(), req.Text)
	if err != nil {
		s.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func (s *speech) Done(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "POST required.")
		return
	}
	s.provider.End(r.Context())
	s.writer.WriteSuccessResponse(w, map[string]string{"status": "ok"})
}
