package stubserver

import (
	"errors"
	"sync"
	"time"

	"github.com/zhouzirui/emotion-chat/internal/model/user"
)

var (
	ErrNicknameTaken = errors.New("nickname already taken")
	ErrUserNotFound  = errors.New("user not found")
)

// UserStore keeps registered accounts in memory with sequential integer IDs,
// matching the wire contract of the real backend.
type UserStore struct {
	mu     sync.RWMutex
	users  []user.User
	nextID int
}

// NewUserStore returns an empty store; the first registration gets ID 1.
func NewUserStore() *UserStore {
	return &UserStore{nextID: 1}
}

// Register creates an account for the nickname, rejecting duplicates.
func (s *UserStore) Register(nickname string) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Nickname == nickname {
			return user.User{}, ErrNicknameTaken
		}
	}

	u := user.User{
		ID:        s.nextID,
		Nickname:  nickname,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.nextID++
	s.users = append(s.users, u)
	return u, nil
}

// FindByNickname looks up the account registered for a nickname.
func (s *UserStore) FindByNickname(nickname string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Nickname == nickname {
			return u, nil
		}
	}
	return user.User{}, ErrUserNotFound
}

// FindByID looks up an account by identifier.
func (s *UserStore) FindByID(id int) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, ErrUserNotFound
}

// List returns all registered accounts in registration order.
func (s *UserStore) List() []user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]user.User(nil), s.users...)
}

// Available reports whether a nickname is still free.
func (s *UserStore) Available(nickname string) bool {
	_, err := s.FindByNickname(nickname)
	return errors.Is(err, ErrUserNotFound)
}
