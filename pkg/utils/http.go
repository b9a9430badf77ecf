package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// RespondJSON writes payload as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError writes a {"error": message} body with the given status.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}

// WriteSSEEvent writes a single event/data pair in text/event-stream framing
// and flushes it when the writer supports flushing.
func WriteSSEEvent(w http.ResponseWriter, event string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal sse event data: %v", err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}
