package chat

import (
	"strconv"
	"testing"
)

func TestNewMessageIDsUniqueAndOrdered(t *testing.T) {
	var prev int64
	for i := 0; i < 100; i++ {
		m := NewMessage("hello")
		id, err := strconv.ParseInt(m.ID, 10, 64)
		if err != nil {
			t.Fatalf("non-numeric id %q: %v", m.ID, err)
		}
		if id <= prev {
			t.Fatalf("ids not strictly increasing: %d after %d", id, prev)
		}
		prev = id
	}
}

func TestNewMessageFields(t *testing.T) {
	m := NewMessage("hello")
	if m.Text != "hello" {
		t.Fatalf("unexpected text %q", m.Text)
	}
	if m.CreatedAt.IsZero() {
		t.Fatal("expected creation time to be set")
	}
	if m.Emotion != nil {
		t.Fatal("new message must carry no emotion result")
	}
}
