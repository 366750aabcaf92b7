package mockapi

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/veerladharma/news-aggregator/internal/news"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type interactionRequest struct {
	ArticleID int64  `json:"article_id"`
	Type      string `json:"type" binding:"required,oneof=like bookmark share"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.RLock()
	id, ok := s.byEmail[strings.ToLower(req.Email)]
	var acct account
	if ok {
		acct = *s.accounts[id]
	}
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(acct.hash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	token, err := s.issueToken(acct.user)
	if err != nil {
		s.log.Error("signing token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not issue token"})
		return
	}
	c.JSON(http.StatusOK, news.AuthResponse{Token: token, User: acct.user})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	u, err := s.addUser(req.Name, req.Email, req.Password, "user")
	s.mu.Unlock()

	switch {
	case errors.Is(err, errUserExists):
		c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
	case err != nil:
		s.log.Error("registering user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "registration failed"})
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "id": u.ID})
	}
}

func (s *Server) handleGetPreferences(c *gin.Context) {
	s.mu.RLock()
	p := s.accounts[c.GetInt64(ctxAccount)].prefs
	s.mu.RUnlock()

	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.PreferredSources == nil {
		p.PreferredSources = []string{}
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleSavePreferences(c *gin.Context) {
	var p news.Preferences
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	s.accounts[c.GetInt64(ctxAccount)].prefs = p
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "Preferences updated"})
}

// handleArticles filters by category and a case-insensitive substring
// search. fetch_live is accepted and ignored.
func (s *Server) handleArticles(c *gin.Context) {
	category := c.Query("category")
	search := strings.ToLower(c.Query("search"))

	s.mu.RLock()
	all := s.sortedArticles()
	s.mu.RUnlock()

	out := make([]news.Article, 0, len(all))
	for _, a := range all {
		if category != "" && !strings.EqualFold(a.Category, category) {
			continue
		}
		if search != "" && !matches(a, search) {
			continue
		}
		out = append(out, a)
	}
	c.JSON(http.StatusOK, out)
}

func matches(a news.Article, term string) bool {
	for _, field := range []string{a.Title, a.Description, a.Content, a.Tags.String(), a.Source} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (s *Server) handleInteraction(c *gin.Context) {
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	s.interactions++
	s.mu.Unlock()
	s.log.Info("interaction", zap.Int64("user", c.GetInt64(ctxAccount)), zap.Int64("article_id", req.ArticleID), zap.String("type", req.Type))
	c.JSON(http.StatusCreated, gin.H{"message": "Interaction recorded"})
}

func (s *Server) handleAdminArticles(c *gin.Context) {
	s.mu.RLock()
	out := s.sortedArticles()
	s.mu.RUnlock()
	c.JSON(http.StatusOK, out)
}

func bindArticle(c *gin.Context) (news.ArticleInput, bool) {
	var in news.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return in, false
	}
	if err := news.Validate(in); err != nil {
		badRequest(c, err)
		return in, false
	}
	return in, true
}

func articleFromInput(in news.ArticleInput) news.Article {
	return news.Article{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Category:    in.Category,
		Tags:        news.Tags{Text: in.Tags},
		Source:      in.Source,
		Author:      in.Author,
		ImageURL:    in.ImageURL,
		URL:         in.URL,
	}
}

func (s *Server) handleCreateArticle(c *gin.Context) {
	in, ok := bindArticle(c)
	if !ok {
		return
	}
	s.mu.Lock()
	a := s.addArticle(articleFromInput(in))
	s.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"message": "Article created", "id": a.ID})
}

func (s *Server) handleUpdateArticle(c *gin.Context) {
	in, ok := bindArticle(c)
	if !ok {
		return
	}
	if in.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id is required"})
		return
	}

	s.mu.Lock()
	existing, found := s.articles[in.ID]
	if found {
		a := articleFromInput(in)
		if a.URL == "" {
			a.URL = existing.URL
		}
		s.articles[in.ID] = a
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "article not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article updated"})
}

func (s *Server) handleDeleteArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	s.mu.Lock()
	_, found := s.articles[id]
	delete(s.articles, id)
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "article not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}

func (s *Server) handleUsers(c *gin.Context) {
	s.mu.RLock()
	out := make([]news.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.user)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleStats(c *gin.Context) {
	s.mu.RLock()
	stats := news.Stats{
		TotalUsers:    int64(len(s.accounts)),
		TotalArticles: int64(len(s.articles)),
		TotalReads:    s.interactions,
	}
	s.mu.RUnlock()
	c.JSON(http.StatusOK, stats)
}
