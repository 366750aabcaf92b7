package admin

import (
	"context"

	"github.com/veerladharma/news-aggregator/internal/news"
	"github.com/veerladharma/news-aggregator/internal/session"
	"go.uber.org/zap"
)

// Mutation is the outcome of a successful create, update or delete: the
// confirmation and the article list fetched right after it.
type Mutation struct {
	Notice   string
	Articles []news.Article
	// RefreshErr is set when the follow-up fetch failed; Articles is then empty.
	RefreshErr error
}

// Save creates the article, or updates editing when it is non-nil. The list
// is re-fetched once, only after the server accepted the change. An update
// keeps the article's link when the form has none.
func (s *Service) Save(ctx context.Context, sess session.Session, form news.ArticleInput, editing *news.Article) (Mutation, error) {
	if editing != nil {
		form.ID = editing.ID
		if form.URL == "" {
			form.URL = editing.URL
		}
	}
	if err := news.Validate(form); err != nil {
		return Mutation{}, err
	}
	c := s.client.WithToken(sess.Token)

	var notice string
	if editing != nil {
		if err := c.UpdateArticle(ctx, form); err != nil {
			s.log.Error("updating article", zap.Int64("id", editing.ID), zap.Error(err))
			return Mutation{}, err
		}
		notice = NoticeUpdated
	} else {
		if err := c.CreateArticle(ctx, form); err != nil {
			s.log.Error("creating article", zap.String("title", form.Title), zap.Error(err))
			return Mutation{}, err
		}
		notice = NoticeCreated
	}
	return s.refresh(ctx, sess, notice), nil
}

// Delete removes the article by id. Callers confirm with the user first.
func (s *Service) Delete(ctx context.Context, sess session.Session, id int64) (Mutation, error) {
	if err := s.client.WithToken(sess.Token).DeleteArticle(ctx, id); err != nil {
		s.log.Error("deleting article", zap.Int64("id", id), zap.Error(err))
		return Mutation{}, err
	}
	return s.refresh(ctx, sess, NoticeDeleted), nil
}

func (s *Service) refresh(ctx context.Context, sess session.Session, notice string) Mutation {
	articles, err := s.Articles(ctx, sess)
	return Mutation{Notice: notice, Articles: articles, RefreshErr: err}
}

// SaveFailure and DeleteFailure turn mutation errors into user messages.
func SaveFailure(err error) string {
	return "Error saving article: " + err.Error()
}

func DeleteFailure(err error) string {
	return "Error deleting article: " + err.Error()
}
