// Package session holds the signed-in state shared by the reader and admin
// views. It is read once when a view starts and written only on login and
// logout.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/veerladharma/news-aggregator/internal/news"
	"go.uber.org/zap"
)

// Storage keys. They match the names used by the web client so both can
// share a profile.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Storage is the part of the local store a session needs.
type Storage interface {
	Get(key string) (string, bool, error)
	SetAll(pairs map[string]string) error
	Remove(keys ...string) error
}

type Session struct {
	Token string
	User  news.User
}

// Active reports whether a bearer token is present.
func (s Session) Active() bool {
	return s.Token != ""
}

// Admin reports whether the stored user claims the admin role.
func (s Session) Admin() bool {
	return s.Active() && s.User.IsAdmin()
}

func blank(v string) bool {
	return v == "" || v == "undefined" || v == "null"
}

// Load reads the persisted session. A missing or placeholder token yields an
// inactive session; an unreadable user record yields an empty user.
func Load(st Storage, log *zap.Logger) (Session, error) {
	var s Session

	tok, ok, err := st.Get(KeyToken)
	if err != nil {
		return s, fmt.Errorf("loading session token: %w", err)
	}
	if ok && !blank(tok) {
		s.Token = tok
	}

	raw, ok, err := st.Get(KeyUser)
	if err != nil {
		return s, fmt.Errorf("loading session user: %w", err)
	}
	if ok && !blank(raw) {
		if err := json.Unmarshal([]byte(raw), &s.User); err != nil {
			log.Warn("discarding unreadable stored user", zap.Error(err))
			s.User = news.User{}
		}
	}
	return s, nil
}

// Save persists a successful login verbatim and returns the new session.
func Save(st Storage, token string, user news.User) (Session, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return Session{}, fmt.Errorf("encoding user: %w", err)
	}
	if err := st.SetAll(map[string]string{KeyToken: token, KeyUser: string(data)}); err != nil {
		return Session{}, fmt.Errorf("saving session: %w", err)
	}
	s := Session{User: user}
	if !blank(token) {
		s.Token = token
	}
	return s, nil
}

// Clear removes both keys.
func Clear(st Storage) error {
	if err := st.Remove(KeyToken, KeyUser); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
