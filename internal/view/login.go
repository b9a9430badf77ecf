package view

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/zhouzirui/emotion-chat/internal/model/user"
	"github.com/zhouzirui/emotion-chat/internal/service/backend"
	"github.com/zhouzirui/emotion-chat/internal/session"
)

const (
	minNicknameLen = 2
	maxNicknameLen = 50

	defaultDebounce = 500 * time.Millisecond
)

// Login drives the nickname form: local validation, the debounced
// availability check in register mode, and the register/login submission.
type Login struct {
	backend  Backend
	sessions *session.Store
	debounce time.Duration

	// onAvailability, when set, is invoked off the caller's goroutine each
	// time a check completes and its result is still current.
	onAvailability func(backend.Availability)

	mu           sync.Mutex
	nickname     string
	registering  bool
	submitting   bool
	errText      string
	availability *backend.Availability
	checking     bool
	checkingGen  int
	checkGen     int
	checkTimer   *time.Timer
}

// NewLogin creates the login controller. A non-positive debounce falls back
// to the 500ms default.
func NewLogin(b Backend, sessions *session.Store, debounce time.Duration) *Login {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Login{backend: b, sessions: sessions, debounce: debounce}
}

// SetAvailabilityListener registers a callback for completed availability
// checks. Results superseded by further typing are never delivered.
func (l *Login) SetAvailabilityListener(fn func(backend.Availability)) {
	l.mu.Lock()
	l.onAvailability = fn
	l.mu.Unlock()
}

// SetNickname records the current field value and re-arms the debounced
// availability check. Any pending check is abandoned.
func (l *Login) SetNickname(nickname string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nickname = nickname
	l.scheduleCheckLocked()
}

// ToggleMode flips between login and register semantics, clearing any
// in-flight error and availability result.
func (l *Login) ToggleMode() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.registering = !l.registering
	l.errText = ""
	l.availability = nil
	l.scheduleCheckLocked()
}

// scheduleCheckLocked cancels whatever check is pending and, in register mode
// with a long-enough nickname, arms a fresh one for after the quiet period.
// Callers must hold l.mu.
func (l *Login) scheduleCheckLocked() {
	l.cancelCheckLocked()
	gen := l.checkGen

	if !l.registering {
		l.availability = nil
		return
	}

	trimmed := strings.TrimSpace(l.nickname)
	if utf8.RuneCountInString(trimmed) < minNicknameLen {
		l.availability = nil
		return
	}

	l.checkTimer = time.AfterFunc(l.debounce, func() {
		l.runCheck(gen, trimmed)
	})
}

// cancelCheckLocked invalidates any armed or in-flight availability check.
// Callers must hold l.mu.
func (l *Login) cancelCheckLocked() {
	l.checkGen++
	if l.checkTimer != nil {
		l.checkTimer.Stop()
		l.checkTimer = nil
	}
}

func (l *Login) runCheck(gen int, nickname string) {
	l.mu.Lock()
	if gen != l.checkGen {
		l.mu.Unlock()
		return
	}
	l.checking = true
	l.checkingGen = gen
	l.mu.Unlock()

	result, err := l.backend.CheckNicknameAvailability(context.Background(), nickname)

	l.mu.Lock()
	// Clear the flag only if this check still owns it; a newer in-flight
	// check may have set it again.
	if l.checkingGen == gen {
		l.checking = false
	}
	if gen != l.checkGen {
		l.mu.Unlock()
		return
	}
	var notify func(backend.Availability)
	if err != nil {
		log.Printf("[login] availability check failed: %v", err)
		l.mu.Unlock()
		return
	}
	l.availability = &result
	notify = l.onAvailability
	l.mu.Unlock()

	if notify != nil {
		notify(result)
	}
}

// Submit validates the nickname locally and, when it passes, runs the
// register or login call for the current mode. The last-seen availability
// result is deliberately not consulted; the backend's answer to the actual
// call is authoritative. On success the session is persisted and the new user
// returned.
func (l *Login) Submit(ctx context.Context) (user.User, bool) {
	l.mu.Lock()
	if l.submitting {
		l.mu.Unlock()
		return user.User{}, false
	}
	l.errText = ""

	trimmed := strings.TrimSpace(l.nickname)
	switch length := utf8.RuneCountInString(trimmed); {
	case length == 0:
		l.errText = "please enter a nickname"
	case length < minNicknameLen:
		l.errText = "nickname must be at least 2 characters long"
	case length > maxNicknameLen:
		l.errText = "nickname must not exceed 50 characters"
	}
	if l.errText != "" {
		l.mu.Unlock()
		return user.User{}, false
	}

	l.submitting = true
	registering := l.registering
	l.mu.Unlock()

	var (
		u   user.User
		err error
	)
	if registering {
		u, err = l.backend.RegisterUser(ctx, trimmed)
	} else {
		u, err = l.backend.LoginUser(ctx, trimmed)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.submitting = false
	if err != nil {
		l.errText = err.Error()
		return user.User{}, false
	}

	// The form is done; a debounce timer armed just before submit must not
	// fire after the user has moved on to the chat view.
	l.cancelCheckLocked()

	if err := l.sessions.Save(u); err != nil {
		log.Printf("[login] failed to persist session: %v", err)
	}
	return u, true
}

// Registering reports whether the form is in register mode.
func (l *Login) Registering() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registering
}

// Err returns the current form error, empty when there is none.
func (l *Login) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errText
}

// Availability returns the last completed check result, if any. The result is
// cosmetic; Submit never consults it.
func (l *Login) Availability() (backend.Availability, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.availability == nil {
		return backend.Availability{}, false
	}
	return *l.availability, true
}

// Checking reports whether an availability check is currently running.
func (l *Login) Checking() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.checking
}
