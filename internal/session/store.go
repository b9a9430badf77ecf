package session

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/zhouzirui/emotion-chat/internal/model/user"
)

const (
	userKey     = "user"
	nicknameKey = "nickname"
)

// Store persists the active user between runs as a small key-value record on
// disk. The serialized user lives under one key and the bare nickname under a
// second; the nickname entry is redundant with the user record but kept for
// cheap access without deserializing it.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the session file under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "emotion-chat", "session.json"), nil
}

// Save writes both keys together. The write goes through a temp file and a
// rename so a crash cannot leave a half-written session behind.
func (s *Store) Save(u user.User) error {
	serialized, err := json.Marshal(u)
	if err != nil {
		return err
	}

	record := map[string]string{
		userKey:     string(serialized),
		nicknameKey: u.Nickname,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load restores the persisted user. A corrupt record is cleared and reported
// as "no session" rather than surfaced as an error.
func (s *Store) Load() (user.User, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[session] read failed, treating as logged out: %v", err)
		}
		return user.User{}, false
	}

	var record map[string]string
	if err := json.Unmarshal(data, &record); err != nil {
		log.Printf("[session] stored session corrupt, clearing: %v", err)
		s.Clear()
		return user.User{}, false
	}

	var u user.User
	if err := json.Unmarshal([]byte(record[userKey]), &u); err != nil {
		log.Printf("[session] stored user corrupt, clearing: %v", err)
		s.Clear()
		return user.User{}, false
	}
	return u, true
}

// Nickname reads the secondary key without touching the user record. It is
// empty when no session is stored.
func (s *Store) Nickname() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}

	var record map[string]string
	if err := json.Unmarshal(data, &record); err != nil {
		return ""
	}
	return record[nicknameKey]
}

// Clear removes both keys unconditionally.
func (s *Store) Clear() {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[session] clear failed: %v", err)
	}
}
