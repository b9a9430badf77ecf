package view

import (
	"sync"

	"github.com/zhouzirui/emotion-chat/internal/model/user"
	"github.com/zhouzirui/emotion-chat/internal/session"
)

// App is the root controller. It owns the session lifecycle and decides
// whether the login or the chat view is active, based solely on whether a
// user is present.
type App struct {
	backend  Backend
	sessions *session.Store

	mu   sync.Mutex
	user *user.User
}

// NewApp wires the root controller to its collaborators.
func NewApp(b Backend, sessions *session.Store) *App {
	return &App{backend: b, sessions: sessions}
}

// Init restores a previously persisted session, if any. A corrupt record has
// already been discarded by the store, so this either yields a user or a
// clean logged-out state.
func (a *App) Init() {
	u, ok := a.sessions.Load()
	if !ok {
		return
	}
	a.mu.Lock()
	a.user = &u
	a.mu.Unlock()
}

// CurrentUser returns the active user, if logged in.
func (a *App) CurrentUser() (user.User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return user.User{}, false
	}
	return *a.user, true
}

// HandleLogin records a freshly authenticated user. Persistence has already
// happened in the login view.
func (a *App) HandleLogin(u user.User) {
	a.mu.Lock()
	a.user = &u
	a.mu.Unlock()
}

// Logout clears the persisted session and drops back to the login view.
func (a *App) Logout() {
	a.sessions.Clear()
	a.mu.Lock()
	a.user = nil
	a.mu.Unlock()
}
