package sentiment

import (
	"strings"

	"github.com/zhouzirui/emotion-chat/internal/model/chat"
)

const (
	labelPositive = "positive"
	labelNegative = "negative"
	labelNeutral  = "neutral"
)

var keywordBuckets = map[string][]string{
	labelPositive: {
		"love", "like", "enjoy", "great", "good", "nice", "awesome", "amazing",
		"wonderful", "excellent", "fantastic", "happy", "glad", "thanks",
		"thank you", "cool", "perfect", "best",
	},
	labelNegative: {
		"hate", "bad", "awful", "terrible", "horrible", "worst", "sad",
		"angry", "annoy", "upset", "cry", "disappointed", "unhappy", "broken",
		"fail", "ugly", "boring",
	},
}

// Analyze scores text against the keyword buckets and produces a label with a
// confidence derived from the margin between positive and negative hits.
// Text with no hits is neutral at a flat mid confidence. Deterministic, so
// end-to-end tests can assert exact labels.
func Analyze(text string) chat.EmotionResult {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return chat.EmotionResult{Label: labelNeutral, Score: 0.5}
	}

	scores := make(map[string]int)
	for label, keywords := range keywordBuckets {
		for _, word := range keywords {
			if strings.Contains(normalized, word) {
				scores[label] += 3
			}
		}
	}

	// Exclamation marks amplify whichever polarity is already winning.
	if n := strings.Count(text, "!"); n > 0 {
		switch {
		case scores[labelPositive] >= scores[labelNegative] && scores[labelPositive] > 0:
			scores[labelPositive] += n * 2
		case scores[labelNegative] > 0:
			scores[labelNegative] += n * 2
		}
	}

	pos, neg := scores[labelPositive], scores[labelNegative]
	if pos == 0 && neg == 0 {
		return chat.EmotionResult{Label: labelNeutral, Score: 0.5}
	}

	label := labelPositive
	winner, loser := pos, neg
	if neg > pos {
		label = labelNegative
		winner, loser = neg, pos
	}

	// Confidence grows with the winner's strength and shrinks when the other
	// bucket also scored. The +3 damping keeps a single weak hit well below
	// certainty.
	score := 0.5 + 0.5*float64(winner)/float64(winner+loser+3)
	if score > 0.99 {
		score = 0.99
	}
	return chat.EmotionResult{Label: label, Score: score}
}
