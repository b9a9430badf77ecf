package view

import (
	"strings"
	"testing"
	"time"

	"github.com/zhouzirui/emotion-chat/internal/model/chat"
)

func TestEmotionEmojiMapping(t *testing.T) {
	cases := map[string]string{
		"positive": "😊",
		"POSITIVE": "😊",
		"negative": "😔",
		"neutral":  "😐",
		"surprise": "🤔",
	}
	for label, want := range cases {
		if got := EmotionEmoji(label); got != want {
			t.Fatalf("label %q: got %s want %s", label, got, want)
		}
	}
}

func TestFormatScoreOneDecimal(t *testing.T) {
	if got := FormatScore(0.93); got != "93.0%" {
		t.Fatalf("got %q", got)
	}
	if got := FormatScore(0.005); got != "0.5%" {
		t.Fatalf("got %q", got)
	}
	if got := FormatScore(1); got != "100.0%" {
		t.Fatalf("got %q", got)
	}
}

func TestScoreBarProportional(t *testing.T) {
	if filled := strings.Count(scoreBar(0.5), "█"); filled != scoreBarWidth/2 {
		t.Fatalf("half score: %d filled cells", filled)
	}
	if filled := strings.Count(scoreBar(0), "█"); filled != 0 {
		t.Fatalf("zero score: %d filled cells", filled)
	}
	if filled := strings.Count(scoreBar(1), "█"); filled != scoreBarWidth {
		t.Fatalf("full score: %d filled cells", filled)
	}
}

func TestRenderEmotionStates(t *testing.T) {
	if got := RenderEmotion(nil, true); !strings.Contains(got, "analyzing") {
		t.Fatalf("analyzing state: %q", got)
	}
	if got := RenderEmotion(nil, false); !strings.Contains(got, "send a message") {
		t.Fatalf("empty state: %q", got)
	}

	got := RenderEmotion(&chat.EmotionResult{Label: "positive", Score: 0.93}, false)
	for _, want := range []string{"😊", "positive", "93.0%", "█"} {
		if !strings.Contains(got, want) {
			t.Fatalf("result state missing %q: %q", want, got)
		}
	}
}

func TestRenderEmotionAnalyzingWinsOverResult(t *testing.T) {
	got := RenderEmotion(&chat.EmotionResult{Label: "positive", Score: 0.9}, true)
	if strings.Contains(got, "positive") {
		t.Fatalf("analyzing must mask the previous result: %q", got)
	}
}

func TestRenderMessagesEmptyState(t *testing.T) {
	if got := RenderMessages(nil); !strings.Contains(got, "start chatting") {
		t.Fatalf("expected empty-state placeholder, got %q", got)
	}
}

func TestRenderMessageWithAndWithoutEmotion(t *testing.T) {
	m := chat.Message{
		ID:        "1",
		Text:      "hello",
		CreatedAt: time.Date(2025, 3, 1, 9, 5, 0, 0, time.Local),
	}

	got := RenderMessage(m)
	if !strings.Contains(got, "hello") || !strings.Contains(got, "09:05") {
		t.Fatalf("bare message render: %q", got)
	}
	if strings.Contains(got, "😊") {
		t.Fatalf("no emotion tag expected yet: %q", got)
	}

	m.Emotion = &chat.EmotionResult{Label: "positive", Score: 0.8}
	got = RenderMessage(m)
	if !strings.Contains(got, "😊 positive") {
		t.Fatalf("emotion tag missing: %q", got)
	}
}
