package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/remihq/remi/pkg/api/response"
	"github.com/remihq/remi/pkg/domain"
)

type TurnExecutor interface {
	Execute(ctx context.Context, userText string) error
}

type ChatLogReader interface {
	All() []domain.ChatMessage
}

type chat struct {
	turns  TurnExecutor
	log    ChatLogReader
	writer response.JSONResponseWriter
}

func NewChat(turns TurnExecutor, log ChatLogReader) *chat {
	return &chat{
		turns:  turns,
		log:    log,
		writer: response.JSONResponseWriter{},
	}
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

// Send runs one conversation turn. The reply arrives over the event stream,
// so a success here only acknowledges that the turn completed.
func (c *chat) Send(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		c.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "POST required.")
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := c.turns.Execute(r.Context(), req.Message); err != nil {
		if errors.Is(err, domain.ErrTurnInFlight) {
			c.writer.WriteErrorResponse(w, http.StatusConflict, "A turn is already in progress.")
			return
		}
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	c.writer.WriteSuccessResponse(w, map[string]string{"status": "ok"})
}

func (c *chat) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		c.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "GET required.")
		return
	}
	c.writer.WriteSuccessResponse(w, c.log.All())
}
