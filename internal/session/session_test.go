package session

import (
	"path/filepath"
	"testing"

	"github.com/veerladharma/news-aggregator/internal/news"
	"github.com/veerladharma/news-aggregator/internal/store"
	"go.uber.org/zap"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "storage.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadEmpty(t *testing.T) {
	s, err := Load(testStore(t), zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Active() {
		t.Error("expected inactive session on empty store")
	}
}

func TestLoadPlaceholders(t *testing.T) {
	for _, tok := range []string{"", "undefined", "null"} {
		st := testStore(t)
		st.Set(KeyToken, tok)
		st.Set(KeyUser, "undefined")
		s, err := Load(st, zap.NewNop())
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if s.Active() {
			t.Errorf("token %q: expected inactive session", tok)
		}
		if s.User != (news.User{}) {
			t.Errorf("token %q: expected empty user, got %+v", tok, s.User)
		}
	}
}

func TestLoadCorruptUser(t *testing.T) {
	st := testStore(t)
	st.Set(KeyToken, "t1")
	st.Set(KeyUser, "{not json")
	s, err := Load(st, zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Active() || s.Token != "t1" {
		t.Errorf("expected token t1 to survive, got %+v", s)
	}
	if s.User != (news.User{}) {
		t.Errorf("expected empty user, got %+v", s.User)
	}
}

func TestSaveThenLoad(t *testing.T) {
	st := testStore(t)
	user := news.User{ID: 1, Name: "A", Role: "user"}
	saved, err := Save(st, "t1", user)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Token != "t1" || saved.User.Name != "A" {
		t.Errorf("unexpected saved session: %+v", saved)
	}

	tok, _, _ := st.Get(KeyToken)
	if tok != "t1" {
		t.Errorf("stored token = %q, want t1", tok)
	}

	loaded, err := Load(st, zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != saved {
		t.Errorf("loaded %+v, want %+v", loaded, saved)
	}
}

func TestAdmin(t *testing.T) {
	if (Session{User: news.User{Role: "admin"}}).Admin() {
		t.Error("admin without token should not count")
	}
	if !(Session{Token: "t", User: news.User{Role: "admin"}}).Admin() {
		t.Error("expected admin session")
	}
}

func TestClear(t *testing.T) {
	st := testStore(t)
	Save(st, "t1", news.User{Name: "A"})
	if err := Clear(st); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	s, _ := Load(st, zap.NewNop())
	if s.Active() || s.User.Name != "" {
		t.Errorf("expected cleared session, got %+v", s)
	}
}
