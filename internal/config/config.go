package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://emotionanalysischat-5.onrender.com/api"

// Config aggregates the chat client settings.
type Config struct {
	// APIBaseURL is the backend root, including the /api prefix.
	APIBaseURL string

	// HTTPTimeout bounds the account and health-check calls.
	HTTPTimeout time.Duration

	// AnalyzeTimeout bounds the emotion-analysis call, which can be slow.
	AnalyzeTimeout time.Duration

	// AvailabilityDebounce is the quiet period before a nickname
	// availability check fires.
	AvailabilityDebounce time.Duration

	// SessionFile overrides the session storage location when non-empty.
	SessionFile string
}

// Load reads client configuration from environment variables.
func Load() (*Config, error) {
	httpTimeout, err := parseOptionalIntEnv("CHAT_HTTP_TIMEOUT")
	if err != nil {
		return nil, err
	}
	timeoutSeconds := 10
	if httpTimeout != nil {
		timeoutSeconds = *httpTimeout
	}

	analyzeTimeout, err := parseOptionalIntEnv("CHAT_ANALYZE_TIMEOUT")
	if err != nil {
		return nil, err
	}
	analyzeSeconds := 30
	if analyzeTimeout != nil {
		analyzeSeconds = *analyzeTimeout
	}

	debounce, err := parseOptionalIntEnv("CHAT_AVAILABILITY_DEBOUNCE_MS")
	if err != nil {
		return nil, err
	}
	debounceMillis := 500
	if debounce != nil {
		debounceMillis = *debounce
	}

	return &Config{
		APIBaseURL:           getEnvOrDefault("CHAT_API_BASE_URL", defaultBaseURL),
		HTTPTimeout:          time.Duration(timeoutSeconds) * time.Second,
		AnalyzeTimeout:       time.Duration(analyzeSeconds) * time.Second,
		AvailabilityDebounce: time.Duration(debounceMillis) * time.Millisecond,
		SessionFile:          strings.TrimSpace(os.Getenv("CHAT_SESSION_FILE")),
	}, nil
}

// ServerConfig describes the stub server's HTTP listener.
type ServerConfig struct {
	Addr string
}

// LoadServer parses the stub server's listen address from PORT.
func LoadServer() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
