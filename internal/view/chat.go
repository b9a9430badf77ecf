package view

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/zhouzirui/emotion-chat/internal/model/chat"
)

// Status is the advisory connectivity state shown in the chat header.
type Status string

const (
	StatusChecking     Status = "checking"
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
)

var (
	ErrEmptyMessage     = errors.New("message is empty")
	ErrAnalysisInFlight = errors.New("an analysis is already in flight")
	ErrDisconnected     = errors.New("backend is unreachable")
)

// Chat owns the message sequence and the per-message analysis lifecycle. At
// most one analysis is outstanding at a time, so a later result can never
// race an earlier message's.
type Chat struct {
	backend Backend

	mu        sync.Mutex
	messages  []chat.Message
	analyzing bool
	current   *chat.EmotionResult
	status    Status
}

// NewChat creates the chat controller in the checking state.
func NewChat(b Backend) *Chat {
	return &Chat{backend: b, status: StatusChecking}
}

// CheckConnection runs the health check and records the outcome. It is called
// once when the view starts and again on manual retry.
func (c *Chat) CheckConnection(ctx context.Context) Status {
	c.mu.Lock()
	c.status = StatusChecking
	c.mu.Unlock()

	status := StatusDisconnected
	if c.backend.TestConnection(ctx) {
		status = StatusConnected
	}

	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
	return status
}

// Send appends the trimmed text as a new message and starts its analysis in
// the background. The returned channel closes once this message's outcome,
// success or failure, has been applied; only then can the next send proceed.
func (c *Chat) Send(ctx context.Context, text string) (chat.Message, <-chan struct{}, error) {
	trimmed := strings.TrimSpace(text)

	c.mu.Lock()
	switch {
	case trimmed == "":
		c.mu.Unlock()
		return chat.Message{}, nil, ErrEmptyMessage
	case c.analyzing:
		c.mu.Unlock()
		return chat.Message{}, nil, ErrAnalysisInFlight
	case c.status == StatusDisconnected:
		c.mu.Unlock()
		return chat.Message{}, nil, ErrDisconnected
	}

	message := chat.NewMessage(trimmed)
	c.messages = append(c.messages, message)
	c.analyzing = true
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.analyze(ctx, message.ID, trimmed)
	}()
	return message, done, nil
}

// analyze applies the analysis outcome to the message it was started for,
// matched by ID. Failures drop the current result and leave the message bare;
// they are logged, not surfaced to the message list.
func (c *Chat) analyze(ctx context.Context, messageID, text string) {
	result, err := c.backend.AnalyzeEmotion(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.analyzing = false

	if err != nil {
		log.Printf("[chat] failed to analyze emotion: %v", err)
		c.current = nil
		return
	}

	c.current = &result
	for i := range c.messages {
		if c.messages[i].ID == messageID && c.messages[i].Emotion == nil {
			c.messages[i].Emotion = &result
			break
		}
	}
}

// Messages returns a copy of the sequence in insertion order.
func (c *Chat) Messages() []chat.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make([]chat.Message, len(c.messages))
	copy(copied, c.messages)
	return copied
}

// Current returns the most recent analysis result, nil when the last attempt
// failed or nothing has been analyzed yet.
func (c *Chat) Current() *chat.EmotionResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	result := *c.current
	return &result
}

// Analyzing reports whether an analysis is in flight.
func (c *Chat) Analyzing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.analyzing
}

// Status returns the advisory connectivity state.
func (c *Chat) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}
