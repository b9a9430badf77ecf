package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/emotion-chat/internal/model/chat"
	"github.com/zhouzirui/emotion-chat/internal/model/user"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultAnalyzeTimeout = 30 * time.Second
)

// Client is the single point of contact with the emotion-analysis backend's
// two resource groups, /Test and /User. It normalizes the backend's assorted
// response encodings into typed results.
type Client struct {
	baseURL string

	// Analysis can take far longer than the account endpoints, so it gets
	// its own client with a wider timeout.
	httpClient    *http.Client
	analyzeClient *http.Client
}

// New creates a client for the given base URL (including the /api prefix).
// Non-positive timeouts fall back to the defaults.
func New(baseURL string, timeout, analyzeTimeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if analyzeTimeout <= 0 {
		analyzeTimeout = defaultAnalyzeTimeout
	}

	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		analyzeClient: &http.Client{Timeout: analyzeTimeout},
	}
}

// Availability mirrors the check-availability response body.
type Availability struct {
	Available bool   `json:"available"`
	Nickname  string `json:"nickname"`
	Message   string `json:"message"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// TestConnection reports whether the backend answers its health check with a
// success status. Any transport failure or non-200 status yields false; this
// never returns an error.
func (c *Client) TestConnection(ctx context.Context) bool {
	req, err := c.newRequest(ctx, http.MethodGet, "/Test", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[api] connection test failed: %v", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

// AnalyzeEmotion submits text for sentiment analysis and reduces whichever
// envelope the backend chose to answer with into a single result.
func (c *Client) AnalyzeEmotion(ctx context.Context, text string) (chat.EmotionResult, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return chat.EmotionResult{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/Test/analyze", bytes.NewReader(payload))
	if err != nil {
		return chat.EmotionResult{}, err
	}

	resp, err := c.analyzeClient.Do(req)
	if err != nil {
		return chat.EmotionResult{}, fmt.Errorf("analyze request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return chat.EmotionResult{}, fmt.Errorf("analyze response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return chat.EmotionResult{}, fmt.Errorf("analyze: backend returned status %d", resp.StatusCode)
	}

	return decodeAnalyzeBody(body)
}

// RegisterUser creates an account for the nickname. The backend rejects
// nicknames that are already taken; the rejection message is preserved.
func (c *Client) RegisterUser(ctx context.Context, nickname string) (user.User, error) {
	const fallback = "failed to register user"

	payload, err := json.Marshal(map[string]string{"nickname": nickname})
	if err != nil {
		return user.User{}, &AuthError{Message: fallback}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/User/register", bytes.NewReader(payload))
	if err != nil {
		return user.User{}, &AuthError{Message: fallback}
	}
	return c.doUserRequest(req, fallback)
}

// LoginUser fetches the account for an existing nickname. Logging in twice
// with the same nickname yields the same user.
func (c *Client) LoginUser(ctx context.Context, nickname string) (user.User, error) {
	const fallback = "failed to login user"

	req, err := c.newRequest(ctx, http.MethodGet, "/User/login/"+url.PathEscape(nickname), nil)
	if err != nil {
		return user.User{}, &AuthError{Message: fallback}
	}
	return c.doUserRequest(req, fallback)
}

// CheckNicknameAvailability asks whether a nickname is free to register. Every
// failure mode collapses into ErrAvailabilityCheck.
func (c *Client) CheckNicknameAvailability(ctx context.Context, nickname string) (Availability, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/User/check-availability/"+url.PathEscape(nickname), nil)
	if err != nil {
		return Availability{}, ErrAvailabilityCheck
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Availability{}, ErrAvailabilityCheck
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Availability{}, ErrAvailabilityCheck
	}

	var result Availability
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Availability{}, ErrAvailabilityCheck
	}
	return result, nil
}

// GetUser fetches a single account by identifier.
func (c *Client) GetUser(ctx context.Context, id int) (user.User, error) {
	const fallback = "failed to get user"

	req, err := c.newRequest(ctx, http.MethodGet, "/User/"+strconv.Itoa(id), nil)
	if err != nil {
		return user.User{}, &AuthError{Message: fallback}
	}
	return c.doUserRequest(req, fallback)
}

// GetAllUsers lists every registered account.
func (c *Client) GetAllUsers(ctx context.Context) ([]user.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/User", nil)
	if err != nil {
		return nil, ErrUserList
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ErrUserList
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, ErrUserList
	}

	var users []user.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, ErrUserList
	}
	return users, nil
}

func (c *Client) doUserRequest(req *http.Request, fallback string) (user.User, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.User{}, &AuthError{Message: fallback}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return user.User{}, &AuthError{Message: fallback}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return user.User{}, &AuthError{Message: errorMessage(body, fallback)}
	}

	var u user.User
	if err := json.Unmarshal(body, &u); err != nil {
		return user.User{}, &AuthError{Message: fallback}
	}
	return u, nil
}

// errorMessage pulls the backend's error field out of a failure body, falling
// back to the generic message when there is none.
func errorMessage(body []byte, fallback string) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fallback
}
