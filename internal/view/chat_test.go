package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zhouzirui/emotion-chat/internal/model/chat"
)

func TestSendAttachesResultToItsMessage(t *testing.T) {
	fake := &fakeBackend{connected: true}
	fake.setAnalyze(chat.EmotionResult{Label: "positive", Score: 0.93}, nil)

	chatView := NewChat(fake)
	chatView.CheckConnection(context.Background())

	msg, done, err := chatView.Send(context.Background(), "  I love this  ")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if msg.Text != "I love this" {
		t.Fatalf("expected trimmed text, got %q", msg.Text)
	}
	<-done

	messages := chatView.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected one message, got %d", len(messages))
	}
	if messages[0].Emotion == nil || messages[0].Emotion.Label != "positive" {
		t.Fatalf("result not attached: %+v", messages[0])
	}

	current := chatView.Current()
	if current == nil || current.Score != 0.93 {
		t.Fatalf("unexpected current result %+v", current)
	}
}

func TestSendSingleFlight(t *testing.T) {
	fake := &fakeBackend{connected: true, analyzeBlock: make(chan struct{})}
	fake.setAnalyze(chat.EmotionResult{Label: "neutral", Score: 0.5}, nil)

	chatView := NewChat(fake)
	chatView.CheckConnection(context.Background())

	_, done, err := chatView.Send(context.Background(), "first")
	if err != nil {
		t.Fatalf("first Send err: %v", err)
	}
	// Send runs the analysis in a goroutine; wait for it to reach the backend
	// before asserting on the call count.
	deadline := time.Now().Add(2 * time.Second)
	for fake.analyzeCallCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("analysis goroutine never reached the backend")
		}
		time.Sleep(time.Millisecond)
	}
	if !chatView.Analyzing() {
		t.Fatal("expected analyzing state")
	}

	if _, _, err := chatView.Send(context.Background(), "second"); !errors.Is(err, ErrAnalysisInFlight) {
		t.Fatalf("expected ErrAnalysisInFlight, got %v", err)
	}
	if fake.analyzeCallCount() != 1 {
		t.Fatalf("second analysis must not start, got %d calls", fake.analyzeCallCount())
	}

	close(fake.analyzeBlock)
	<-done

	if chatView.Analyzing() {
		t.Fatal("analyzing state must clear after the outcome is applied")
	}
	fake.mu.Lock()
	fake.analyzeBlock = nil
	fake.mu.Unlock()

	if _, done, err := chatView.Send(context.Background(), "third"); err != nil {
		t.Fatalf("send after resolve err: %v", err)
	} else {
		<-done
	}
	if len(chatView.Messages()) != 2 {
		t.Fatalf("expected two messages (second was rejected), got %d", len(chatView.Messages()))
	}
}

func TestSendRejectsEmptyInput(t *testing.T) {
	fake := &fakeBackend{connected: true}
	chatView := NewChat(fake)
	chatView.CheckConnection(context.Background())

	if _, _, err := chatView.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if len(chatView.Messages()) != 0 {
		t.Fatal("rejected input must not append a message")
	}
}

func TestSendRejectedWhileDisconnected(t *testing.T) {
	fake := &fakeBackend{connected: false}
	chatView := NewChat(fake)

	if status := chatView.CheckConnection(context.Background()); status != StatusDisconnected {
		t.Fatalf("expected disconnected, got %s", status)
	}
	if _, _, err := chatView.Send(context.Background(), "hello"); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected, got %v", err)
	}
}

func TestManualRetryReenablesInput(t *testing.T) {
	fake := &fakeBackend{connected: false}
	fake.setAnalyze(chat.EmotionResult{Label: "neutral", Score: 0.5}, nil)

	chatView := NewChat(fake)
	chatView.CheckConnection(context.Background())

	if _, _, err := chatView.Send(context.Background(), "hello"); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected, got %v", err)
	}

	fake.setConnected(true)
	if status := chatView.CheckConnection(context.Background()); status != StatusConnected {
		t.Fatalf("expected connected after retry, got %s", status)
	}

	_, done, err := chatView.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Send after retry err: %v", err)
	}
	<-done
}

func TestAnalysisFailureLeavesMessageBare(t *testing.T) {
	fake := &fakeBackend{connected: true}
	fake.setAnalyze(chat.EmotionResult{Label: "positive", Score: 0.9}, nil)

	chatView := NewChat(fake)
	chatView.CheckConnection(context.Background())

	_, done, err := chatView.Send(context.Background(), "good day")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}
	<-done

	fake.setAnalyze(chat.EmotionResult{}, errors.New("boom"))
	_, done, err = chatView.Send(context.Background(), "second message")
	if err != nil {
		t.Fatalf("second Send err: %v", err)
	}
	<-done

	messages := chatView.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected two messages, got %d", len(messages))
	}
	if messages[0].Emotion == nil || messages[0].Emotion.Label != "positive" {
		t.Fatal("earlier result must survive a later failure")
	}
	if messages[1].Emotion != nil {
		t.Fatal("failed analysis must leave the message without a result")
	}
	if chatView.Current() != nil {
		t.Fatal("failure must clear the current result display")
	}
	if chatView.Analyzing() {
		t.Fatal("analyzing state must clear on failure")
	}
}

func TestMessagesKeepInsertionOrder(t *testing.T) {
	fake := &fakeBackend{connected: true}
	fake.setAnalyze(chat.EmotionResult{Label: "neutral", Score: 0.5}, nil)

	chatView := NewChat(fake)
	chatView.CheckConnection(context.Background())

	for _, text := range []string{"one", "two", "three"} {
		_, done, err := chatView.Send(context.Background(), text)
		if err != nil {
			t.Fatalf("Send %q err: %v", text, err)
		}
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("analysis for %q never resolved", text)
		}
	}

	messages := chatView.Messages()
	for i, want := range []string{"one", "two", "three"} {
		if messages[i].Text != want {
			t.Fatalf("position %d: got %q want %q", i, messages[i].Text, want)
		}
	}
}
