package repository

import (
	"sync"

	"github.com/remihq/remi/pkg/domain"
)

// chatLogRepository holds the conversation history in append order.
type chatLogRepository struct {
	mu       sync.RWMutex
	messages []domain.ChatMessage
}

func NewChatLogRepository() *chatLogRepository {
	return &chatLogRepository{}
}

func (c *chatLogRepository) Append(msg domain.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, msg)
}

func (c *chatLogRepository) All() []domain.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *chatLogRepository) Replace(messages []domain.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = make([]domain.ChatMessage, len(messages))
	copy(c.messages, messages)
}
