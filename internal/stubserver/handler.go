package stubserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/emotion-chat/internal/analysis/sentiment"
	"github.com/zhouzirui/emotion-chat/internal/model/chat"
	"github.com/zhouzirui/emotion-chat/pkg/utils"
)

// Handler serves the stub backend's /Test and /User resource groups.
type Handler struct {
	users *UserStore
}

// NewHandler creates the stub handler over the given store.
func NewHandler(users *UserStore) *Handler {
	return &Handler{users: users}
}

// RegisterRoutes wires the wire contract under the router's /api prefix.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/Test", h.handleHealth)
	r.Post("/Test/analyze", h.handleAnalyze)

	r.Post("/User/register", h.handleRegister)
	r.Get("/User/login/{nickname}", h.handleLogin)
	r.Get("/User/check-availability/{nickname}", h.handleAvailability)
	r.Get("/User/{id:[0-9]+}", h.handleGetUser)
	r.Get("/User", h.handleListUsers)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze answers SSE-shaped by default, which is the hardest envelope
// for clients to parse. The shape query parameter can force the other
// envelopes the real backend has been seen producing, so every client-side
// matcher is reachable end to end.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	result := sentiment.Analyze(payload.Text)

	switch r.URL.Query().Get("shape") {
	case "array":
		utils.RespondJSON(w, http.StatusOK, []chat.EmotionResult{result})
	case "object":
		utils.RespondJSON(w, http.StatusOK, map[string][]chat.EmotionResult{"data": {result}})
	case "string":
		inner, err := json.Marshal(map[string][]chat.EmotionResult{"data": {result}})
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "failed to encode result")
			return
		}
		utils.RespondJSON(w, http.StatusOK, string(inner))
	default:
		utils.WriteSSEEvent(w, "complete", []chat.EmotionResult{result})
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Nickname string `json:"nickname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	nickname := strings.TrimSpace(payload.Nickname)
	if length := utf8.RuneCountInString(nickname); length < 2 || length > 50 {
		utils.RespondError(w, http.StatusBadRequest, "nickname must be between 2 and 50 characters")
		return
	}

	u, err := h.users.Register(nickname)
	if err != nil {
		utils.RespondError(w, http.StatusConflict, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, u)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")

	u, err := h.users.FindByNickname(nickname)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "user not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, u)
}

func (h *Handler) handleAvailability(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")
	available := h.users.Available(nickname)

	message := fmt.Sprintf("%q is available", nickname)
	if !available {
		message = fmt.Sprintf("%q is already taken", nickname)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"available": available,
		"nickname":  nickname,
		"message":   message,
	})
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.users.FindByID(id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.RespondError(w, http.StatusNotFound, "user not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, u)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.users.List())
}
