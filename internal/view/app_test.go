package view

import (
	"path/filepath"
	"testing"

	"github.com/zhouzirui/emotion-chat/internal/model/user"
	"github.com/zhouzirui/emotion-chat/internal/session"
)

func TestAppRestoresPersistedSession(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	want := user.User{ID: 1, Nickname: "alice", CreatedAt: "2025-01-01T00:00:00Z"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	app := NewApp(&fakeBackend{}, store)
	app.Init()

	got, ok := app.CurrentUser()
	if !ok {
		t.Fatal("expected restored session")
	}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestAppStartsLoggedOutWithoutSession(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))

	app := NewApp(&fakeBackend{}, store)
	app.Init()

	if _, ok := app.CurrentUser(); ok {
		t.Fatal("expected logged-out state")
	}
}

func TestAppLogoutClearsStore(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	app := NewApp(&fakeBackend{}, store)

	app.HandleLogin(user.User{ID: 2, Nickname: "bob"})
	if err := store.Save(user.User{ID: 2, Nickname: "bob"}); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	app.Logout()

	if _, ok := app.CurrentUser(); ok {
		t.Fatal("expected logged-out state after logout")
	}
	if _, ok := store.Load(); ok {
		t.Fatal("expected cleared store after logout")
	}
}
