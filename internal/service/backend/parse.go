package backend

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"

	"github.com/zhouzirui/emotion-chat/internal/model/chat"
)

// The backend has been observed returning the same logical result in several
// envelopes: a server-sent-event text blob, a JSON-encoded string wrapping
// either a {"data":[...]} object or a bare array, the object itself, or the
// array itself. The matchers run in a fixed order; the SSE check must come
// before the generic string parse because an SSE blob is not valid JSON.
var analyzeMatchers = []func([]byte) (chat.EmotionResult, bool){
	matchSSEBody,
	matchJSONString,
	matchDataObject,
	matchBareArray,
}

func decodeAnalyzeBody(body []byte) (chat.EmotionResult, error) {
	for _, match := range analyzeMatchers {
		if result, ok := match(body); ok {
			return result, nil
		}
	}
	return chat.EmotionResult{}, ErrMalformedResponse
}

// matchSSEBody handles text/event-stream style payloads: the first line
// beginning with "data: " is stripped and parsed as a JSON result array.
func matchSSEBody(body []byte) (chat.EmotionResult, bool) {
	if !bytes.Contains(body, []byte("data: ")) {
		return chat.EmotionResult{}, false
	}

	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		return matchBareArray([]byte(strings.TrimPrefix(line, "data: ")))
	}
	return chat.EmotionResult{}, false
}

// matchJSONString handles bodies that are a JSON-encoded string; the inner
// text is then matched against the object and array shapes.
func matchJSONString(body []byte) (chat.EmotionResult, bool) {
	var inner string
	if err := json.Unmarshal(body, &inner); err != nil {
		return chat.EmotionResult{}, false
	}

	if result, ok := matchDataObject([]byte(inner)); ok {
		return result, true
	}
	return matchBareArray([]byte(inner))
}

// matchDataObject handles {"data":[{label,score},...]} envelopes.
func matchDataObject(body []byte) (chat.EmotionResult, bool) {
	var envelope struct {
		Data []chat.EmotionResult `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Data) == 0 {
		return chat.EmotionResult{}, false
	}
	return envelope.Data[0], true
}

// matchBareArray handles [{label,score},...] bodies.
func matchBareArray(body []byte) (chat.EmotionResult, bool) {
	var results []chat.EmotionResult
	if err := json.Unmarshal(body, &results); err != nil || len(results) == 0 {
		return chat.EmotionResult{}, false
	}
	return results[0], true
}
