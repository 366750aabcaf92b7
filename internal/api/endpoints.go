package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/veerladharma/news-aggregator/internal/news"
)

func (c *Client) Login(ctx context.Context, creds news.Credentials) (news.AuthResponse, error) {
	var out news.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/login", nil, false, creds, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, reg news.Registration) error {
	return c.doJSON(ctx, http.MethodPost, "/register", nil, false, reg, nil)
}

func (c *Client) Preferences(ctx context.Context) (news.Preferences, error) {
	var out news.Preferences
	err := c.doJSON(ctx, http.MethodGet, "/preferences", nil, true, nil, &out)
	return out, err
}

// SavePreferences overwrites the stored preferences with p.
func (c *Client) SavePreferences(ctx context.Context, p news.Preferences) error {
	return c.doJSON(ctx, http.MethodPost, "/preferences", nil, true, p, nil)
}

// Articles fetches the reader feed. query carries category, search and
// fetch_live exactly as the caller built them.
func (c *Client) Articles(ctx context.Context, query url.Values) ([]news.Article, error) {
	var out []news.Article
	if err := c.doJSON(ctx, http.MethodGet, "/articles", query, true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RecordInteraction(ctx context.Context, in news.Interaction) error {
	return c.doJSON(ctx, http.MethodPost, "/interactions", nil, true, in, nil)
}

func (c *Client) AdminArticles(ctx context.Context) ([]news.Article, error) {
	var out []news.Article
	if err := c.doJSON(ctx, http.MethodGet, "/admin/articles", nil, true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateArticle(ctx context.Context, in news.ArticleInput) error {
	in.ID = 0
	return c.doJSON(ctx, http.MethodPost, "/admin/articles", nil, true, in, nil)
}

// UpdateArticle replaces the article identified by in.ID.
func (c *Client) UpdateArticle(ctx context.Context, in news.ArticleInput) error {
	return c.doJSON(ctx, http.MethodPut, "/admin/articles", nil, true, in, nil)
}

func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	q := url.Values{"id": {strconv.FormatInt(id, 10)}}
	return c.doJSON(ctx, http.MethodDelete, "/admin/articles", q, true, nil, nil)
}

func (c *Client) Users(ctx context.Context) ([]news.User, error) {
	var out []news.User
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", nil, true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Stats(ctx context.Context) (news.Stats, error) {
	var out news.Stats
	err := c.doJSON(ctx, http.MethodGet, "/admin/stats", nil, true, nil, &out)
	return out, err
}
