// Package admin implements the admin dashboard's calls: the role-gated
// sign-in, article management, the user list and platform statistics.
package admin

import (
	"context"
	"errors"

	"github.com/veerladharma/news-aggregator/internal/api"
	"github.com/veerladharma/news-aggregator/internal/news"
	"github.com/veerladharma/news-aggregator/internal/session"
	"go.uber.org/zap"
)

// ErrAccessDenied is returned when a login succeeds for a non-admin user.
var ErrAccessDenied = errors.New("Access denied. Admin privileges required.")

const (
	NoticeCreated = "Article created!"
	NoticeUpdated = "Article updated!"
	NoticeDeleted = "Article deleted!"

	ConfirmDelete = "Are you sure you want to delete this article?"
)

type Tab int

const (
	TabArticles Tab = iota
	TabUsers
	TabStats
)

var tabNames = [...]string{"Articles", "Users", "Stats"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

// Next cycles through the tabs.
func (t Tab) Next() Tab { return (t + 1) % Tab(len(tabNames)) }

// Service runs admin actions against the API and keeps the session in the local store.
type Service struct {
	client *api.Client
	store  session.Storage
	log    *zap.Logger
}

// NewService returns a Service. A nil log discards output.
func NewService(client *api.Client, store session.Storage, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{client: client, store: store, log: log}
}

// Login signs in and keeps the session only when the user is an admin.
// Nothing is persisted for any other role.
func (s *Service) Login(ctx context.Context, creds news.Credentials) (session.Session, error) {
	if err := news.Validate(creds); err != nil {
		return session.Session{}, err
	}
	resp, err := s.client.Login(ctx, creds)
	if err != nil {
		return session.Session{}, err
	}
	if !resp.User.IsAdmin() {
		s.log.Warn("non-admin login rejected", zap.String("user", resp.User.Email), zap.String("role", resp.User.Role))
		return session.Session{}, ErrAccessDenied
	}
	sess, err := session.Save(s.store, resp.Token, resp.User)
	if err != nil {
		return session.Session{}, err
	}
	s.log.Info("admin signed in", zap.String("user", resp.User.Email))
	return sess, nil
}

// LoginFailure turns a Login error into the message shown on the form.
func LoginFailure(err error) string {
	var verr *news.ValidationError
	var se *api.StatusError
	switch {
	case errors.Is(err, ErrAccessDenied):
		return ErrAccessDenied.Error()
	case errors.As(err, &verr):
		return verr.Error()
	case errors.As(err, &se):
		return api.ServerMessage(err, "Invalid credentials")
	default:
		return "Login failed. Please try again."
	}
}

// Logout clears the stored admin session.
func (s *Service) Logout() error {
	return session.Clear(s.store)
}

// Articles fetches the full article list. Failures yield an empty list.
func (s *Service) Articles(ctx context.Context, sess session.Session) ([]news.Article, error) {
	out, err := s.client.WithToken(sess.Token).AdminArticles(ctx)
	if err != nil {
		s.log.Error("fetching admin articles", zap.Error(err))
		return []news.Article{}, err
	}
	if out == nil {
		out = []news.Article{}
	}
	return out, nil
}

// Users fetches every account. Failures yield an empty list.
func (s *Service) Users(ctx context.Context, sess session.Session) ([]news.User, error) {
	out, err := s.client.WithToken(sess.Token).Users(ctx)
	if err != nil {
		s.log.Error("fetching users", zap.Error(err))
		return []news.User{}, err
	}
	if out == nil {
		out = []news.User{}
	}
	return out, nil
}

// Stats fetches the counters. On failure the caller keeps what it had.
func (s *Service) Stats(ctx context.Context, sess session.Session) (news.Stats, error) {
	out, err := s.client.WithToken(sess.Token).Stats(ctx)
	if err != nil {
		s.log.Error("fetching stats", zap.Error(err))
	}
	return out, err
}
