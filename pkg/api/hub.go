package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/russross/blackfriday"

	"github.com/remihq/remi/pkg/domain"
	"github.com/remihq/remi/pkg/logger"
)

const subscriberBuffer = 32

// Hub fans domain events out to connected event-stream clients. Slow
// subscribers are dropped rather than allowed to stall the broadcast.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan []byte]struct{}
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[chan []byte]struct{})}
}

// chatMessagePayload is the wire form of a chat message. Assistant replies
// carry pre-rendered HTML so the client does not need its own markdown stack.
type chatMessagePayload struct {
	domain.ChatMessage
	HTML string `json:"html,omitempty"`
}

// Broadcast serializes an event and hands it to every subscriber.
func (h *Hub) Broadcast(event domain.Event) {
	name, payload := wireForm(event)
	if name == "" {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshaling event payload", "event", name, logger.Err(err))
		return
	}
	frame := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", name, data))

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- frame:
		default:
			delete(h.subscribers, ch)
			close(ch)
		}
	}
}

func wireForm(event domain.Event) (string, any) {
	switch {
	case event.Message != nil:
		payload := chatMessagePayload{ChatMessage: *event.Message}
		if event.Message.Sender == domain.SenderAI {
			payload.HTML = string(blackfriday.MarkdownCommon([]byte(event.Message.Text)))
		}
		return "message", payload
	case event.Selection != nil:
		return "selection", event.Selection
	case event.Command != nil:
		return "command", event.Command
	case event.Player != nil:
		return "player", event.Player
	case event.ItemAdded != nil:
		return "itemAdded", event.ItemAdded
	case event.ItemDeleted != "":
		return "itemDeleted", map[string]string{"contentId": event.ItemDeleted}
	case event.Summary != nil:
		return "summary", event.Summary
	case event.Transcript != nil:
		return "transcript", event.Transcript
	case event.Alert != "":
		return "alert", map[string]string{"message": event.Alert}
	case event.Err != nil:
		return "alert", map[string]string{"message": event.Err.Error()}
	}
	return "", nil
}

// ServeHTTP streams events to one client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case frame, ok := <-ch:
			if !ok {
				return
			}
			if _, err := w.Write(frame); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Hub) subscribe() chan []byte {
	ch := make(chan []byte, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[ch] = struct{}{}
	return ch
}

func (h *Hub) unsubscribe(ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
}
