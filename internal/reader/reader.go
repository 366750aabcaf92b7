// Package reader implements the reader view's calls against the API:
// sign-in, the article feed, interactions and preferences.
package reader

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/veerladharma/news-aggregator/internal/api"
	"github.com/veerladharma/news-aggregator/internal/news"
	"github.com/veerladharma/news-aggregator/internal/session"
	"go.uber.org/zap"
)

const (
	NoticeRegistered       = "Registration successful! Please login."
	NoticePreferencesSaved = `Preferences saved! They will be used for "For You" recommendations.`
	NoticeSaveFailed       = "Failed to save preferences"
	NoticeSaveError        = "Error saving preferences"
)

// Service runs reader actions against the API and keeps the session in the local store.
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

// Login signs in and persists the returned token and user verbatim.
func (s *Service) Login(ctx context.Context, creds news.Credentials) (session.Session, error) {
	if err := news.Validate(creds); err != nil {
		return session.Session{}, err
	}
	resp, err := s.client.Login(ctx, creds)
	if err != nil {
		return session.Session{}, err
	}
	sess, err := session.Save(s.store, resp.Token, resp.User)
	if err != nil {
		return session.Session{}, err
	}
	s.log.Info("signed in", zap.String("user", resp.User.Email), zap.String("role", resp.User.Role))
	return sess, nil
}

// Register creates an account. It never signs in.
func (s *Service) Register(ctx context.Context, reg news.Registration) error {
	if err := news.Validate(reg); err != nil {
		return err
	}
	return s.client.Register(ctx, reg)
}

// ForgotPassword is a local stub; no reset request is sent.
func ForgotPassword(req news.ResetRequest) (string, error) {
	if err := news.Validate(req); err != nil {
		return "", err
	}
	return fmt.Sprintf("Password reset link sent to %s\n(Feature coming soon!)", req.Email), nil
}

// AuthFailure turns a login or register error into the message shown on
// the form.
func AuthFailure(err error) string {
	var verr *news.ValidationError
	var te *api.TransportError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.As(err, &te):
		return "Error: " + te.Err.Error()
	default:
		var se *api.StatusError
		if errors.As(err, &se) {
			return api.ServerMessage(err, "Authentication failed")
		}
		return "Error: " + err.Error()
	}
}

// Logout clears the stored session.
func (s *Service) Logout() error {
	return session.Clear(s.store)
}

func (s *Service) Preferences(ctx context.Context, sess session.Session) (news.Preferences, error) {
	prefs, err := s.client.WithToken(sess.Token).Preferences(ctx)
	if err != nil {
		s.log.Error("fetching preferences", zap.Error(err))
		return news.Preferences{}, err
	}
	return prefs, nil
}

// Feed fetches the articles for query. Any failure yields an empty,
// non-nil slice alongside the error.
func (s *Service) Feed(ctx context.Context, sess session.Session, query url.Values) ([]news.Article, error) {
	articles, err := s.client.WithToken(sess.Token).Articles(ctx, query)
	if err != nil {
		s.log.Error("fetching articles", zap.String("query", query.Encode()), zap.Error(err))
		return []news.Article{}, err
	}
	if articles == nil {
		articles = []news.Article{}
	}
	return articles, nil
}

// InteractionID is the id sent for an article: its own id, or its position
// in the feed when the server did not assign one.
func InteractionID(a news.Article, index int) int64 {
	if a.ID != 0 {
		return a.ID
	}
	return int64(index)
}

// Interact records one interaction. On success it returns the confirmation
// to show; failures are only logged.
func (s *Service) Interact(ctx context.Context, sess session.Session, a news.Article, index int, typ news.InteractionType) (string, error) {
	in := news.Interaction{ArticleID: InteractionID(a, index), Type: typ}
	s.log.Debug("sending interaction", zap.Int64("article_id", in.ArticleID), zap.String("type", string(typ)))
	if err := s.client.WithToken(sess.Token).RecordInteraction(ctx, in); err != nil {
		s.log.Error("recording interaction", zap.Int64("article_id", in.ArticleID), zap.String("type", string(typ)), zap.Error(err))
		return "", err
	}
	s.log.Info("interaction recorded", zap.Int64("article_id", in.ArticleID), zap.String("type", string(typ)))
	return typ.Confirmation(), nil
}

// SavePreferences overwrites the server copy and returns the notice to show.
func (s *Service) SavePreferences(ctx context.Context, sess session.Session, prefs news.Preferences) (string, error) {
	err := s.client.WithToken(sess.Token).SavePreferences(ctx, prefs)
	switch {
	case err == nil:
		return NoticePreferencesSaved, nil
	case api.IsTransport(err):
		s.log.Error("updating preferences", zap.Error(err))
		return NoticeSaveError, err
	default:
		s.log.Warn("preferences rejected", zap.Error(err))
		return NoticeSaveFailed, err
	}
}
