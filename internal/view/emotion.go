package view

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/zhouzirui/emotion-chat/internal/model/chat"
)

// ANSI palette mirroring the label colors of the original web client.
const (
	colorGreen = "\x1b[32m"
	colorRed   = "\x1b[31m"
	colorGray  = "\x1b[90m"
	colorBlue  = "\x1b[34m"
	colorReset = "\x1b[0m"
)

const scoreBarWidth = 20

// EmotionEmoji maps an analysis label to its display emoji. Labels outside
// the common three get the thinking face.
func EmotionEmoji(label string) string {
	switch strings.ToLower(label) {
	case "positive":
		return "😊"
	case "negative":
		return "😔"
	case "neutral":
		return "😐"
	default:
		return "🤔"
	}
}

// emotionColor applies the same label mapping as EmotionEmoji, as a color.
func emotionColor(label string) string {
	switch strings.ToLower(label) {
	case "positive":
		return colorGreen
	case "negative":
		return colorRed
	case "neutral":
		return colorGray
	default:
		return colorBlue
	}
}

// FormatScore renders a confidence in [0,1] as a percentage with one decimal
// place.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// scoreBar draws a proportional bar whose filled cells match the confidence
// fraction.
func scoreBar(score float64) string {
	filled := int(math.Round(score * scoreBarWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > scoreBarWidth {
		filled = scoreBarWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", scoreBarWidth-filled)
}

// RenderEmotion produces the emotion panel: the analyzing placeholder while a
// call is in flight, an empty-state prompt when nothing has been analyzed, or
// the emoji with colored label, confidence and bar.
func RenderEmotion(result *chat.EmotionResult, analyzing bool) string {
	if analyzing {
		return "🤔 analyzing..."
	}
	if result == nil {
		return "💭 send a message to see its emotion analysis"
	}

	color := emotionColor(result.Label)
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s%s%s\n", EmotionEmoji(result.Label), color, result.Label, colorReset)
	fmt.Fprintf(&b, "confidence %s%s%s\n", color, FormatScore(result.Score), colorReset)
	fmt.Fprintf(&b, "%s%s%s", color, scoreBar(result.Score), colorReset)
	return b.String()
}

// FormatMessageTime renders the hour:minute stamp shown next to each message,
// in local time.
func FormatMessageTime(t time.Time) string {
	return t.Local().Format("15:04")
}

// RenderMessage renders one line of the transcript: time, text, and the
// emotion tag once the analysis has landed.
func RenderMessage(m chat.Message) string {
	line := fmt.Sprintf("[%s] %s", FormatMessageTime(m.CreatedAt), m.Text)
	if m.Emotion != nil {
		line += fmt.Sprintf("  %s %s", EmotionEmoji(m.Emotion.Label), m.Emotion.Label)
	}
	return line
}

// RenderMessages renders the transcript in insertion order, or the
// empty-state placeholder when nothing has been sent yet.
func RenderMessages(messages []chat.Message) string {
	if len(messages) == 0 {
		return "💬 start chatting\nsend a message to see real-time emotion analysis"
	}

	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, RenderMessage(m))
	}
	return strings.Join(lines, "\n")
}
