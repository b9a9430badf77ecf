package chat

import (
	"strconv"
	"sync"
	"time"
)

// EmotionResult is the sentiment verdict computed for one piece of text. The
// label set is open: positive/negative/neutral are common but the backend may
// introduce others. Score is a confidence in [0,1].
type EmotionResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Message is a single user-entered chat turn. Emotion stays nil until the
// analysis for this exact message resolves, and is set at most once.
type Message struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	CreatedAt time.Time      `json:"createdAt"`
	Emotion   *EmotionResult `json:"emotion,omitempty"`
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewMessage builds a message with an identifier derived from its creation
// time. Two messages created in the same millisecond bump past each other, so
// identifiers stay unique and ordered within a process.
func NewMessage(text string) Message {
	now := time.Now()

	idMu.Lock()
	id := now.UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	idMu.Unlock()

	return Message{
		ID:        strconv.FormatInt(id, 10),
		Text:      text,
		CreatedAt: now,
	}
}
