package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/remihq/remi/pkg/api/response"
	"github.com/remihq/remi/pkg/domain"
)

type VoiceSession interface {
	Start(ctx context.Context) error
	Result(ctx context.Context, text string, final bool)
	Fail(ctx context.Context, message string)
	Stop(ctx context.Context) (string, error)
	Listening() bool
}

type voice struct {
	session VoiceSession
	writer  response.JSONResponseWriter
}

func NewVoice(session VoiceSession) *voice {
	return &voice{
		session: session,
		writer:  response.JSONResponseWriter{},
	}
}

func (v *voice) Start(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		v.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "POST required.")
		return
	}
	if err := v.session.Start(r.Context()); err != nil {
		if errors.Is(err, domain.ErrAlreadyListening) {
			v.writer.WriteErrorResponse(w, http.StatusConflict, "Already listening.")
			return
		}
		v.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	v.writer.WriteSuccessResponse(w, map[string]string{"status": "listening"})
}

type voiceResultRequest struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

func (v *voice) Result(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		v.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "POST required.")
		return
	}
	var req voiceResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		v.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	v.session.Result(r.Context(), req.Text, req.Final)
	v.writer.WriteSuccessResponse(w, map[string]string{"status": "ok"})
}

type voiceFailRequest struct {
	Message string `json:"message"`
}

func (v *voice) Fail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		v.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "POST required.")
		return
	}
	var req voiceFailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		v.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	v.session.Fail(r.Context(), req.Message)
	v.writer.WriteSuccessResponse(w, map[string]string{"status": "ok"})
}

// Stop ends the session and returns the transcript accumulated so far.
func (v *voice) Stop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		v.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "POST required.")
		return
	}
	transcript, err := v.session.Stop(r.Context())
	if err != nil {
		v.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	v.writer.WriteSuccessResponse(w, map[string]string{"transcript": transcript})
}

func (v *voice) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		v.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "GET required.")
		return
	}
	v.writer.WriteSuccessResponse(w, map[string]bool{"listening": v.session.Listening()})
}
