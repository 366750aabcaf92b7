// Package mockapi is an in-memory News Aggregator API for local development
// and tests. It speaks the same routes and payloads as the real backend.
package mockapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/veerladharma/news-aggregator/internal/news"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Options struct {
	Secret        string
	TokenTTL      time.Duration
	AdminName     string
	AdminEmail    string
	AdminPassword string
	// SeedArticles adds a few sample articles on startup.
	SeedArticles bool
	Logger       *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Secret:        "newsagg-dev-secret",
		TokenTTL:      24 * time.Hour,
		AdminName:     "Admin",
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin123",
		SeedArticles:  true,
	}
}

type account struct {
	user  news.User
	hash  []byte
	prefs news.Preferences
}

type Server struct {
	mu           sync.RWMutex
	opts         Options
	log          *zap.Logger
	now          func() time.Time
	accounts     map[int64]*account
	byEmail      map[string]int64
	articles     map[int64]news.Article
	interactions int64
	nextUser     int64
	nextArticle  int64
}

func New(opts Options) (*Server, error) {
	if opts.Secret == "" {
		return nil, fmt.Errorf("mock api: secret is required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		opts:     opts,
		log:      log,
		now:      time.Now,
		accounts: make(map[int64]*account),
		byEmail:  make(map[string]int64),
		articles: make(map[int64]news.Article),
	}
	if opts.AdminEmail != "" {
		if _, err := s.addUser(opts.AdminName, opts.AdminEmail, opts.AdminPassword, news.RoleAdmin); err != nil {
			return nil, fmt.Errorf("seeding admin: %w", err)
		}
	}
	if opts.SeedArticles {
		for _, a := range seedArticles {
			s.addArticle(a)
		}
	}
	return s, nil
}

// Router builds the gin engine serving every route under /api.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	api := r.Group("/api")
	api.POST("/login", s.handleLogin)
	api.POST("/register", s.handleRegister)

	authed := api.Group("", s.requireAuth())
	authed.GET("/preferences", s.handleGetPreferences)
	authed.POST("/preferences", s.handleSavePreferences)
	authed.GET("/articles", s.handleArticles)
	authed.POST("/interactions", s.handleInteraction)

	admin := authed.Group("/admin", s.requireAdmin())
	admin.GET("/articles", s.handleAdminArticles)
	admin.POST("/articles", s.handleCreateArticle)
	admin.PUT("/articles", s.handleUpdateArticle)
	admin.DELETE("/articles", s.handleDeleteArticle)
	admin.GET("/users", s.handleUsers)
	admin.GET("/stats", s.handleStats)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// addUser must be called with s.mu held for writing, or before serving.
func (s *Server) addUser(name, email, password, role string) (news.User, error) {
	key := strings.ToLower(email)
	if _, ok := s.byEmail[key]; ok {
		return news.User{}, errUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return news.User{}, fmt.Errorf("hashing password: %w", err)
	}
	s.nextUser++
	u := news.User{
		ID:        s.nextUser,
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	s.accounts[u.ID] = &account{user: u, hash: hash}
	s.byEmail[key] = u.ID
	return u, nil
}

// addArticle must be called with s.mu held for writing, or before serving.
func (s *Server) addArticle(a news.Article) news.Article {
	s.nextArticle++
	a.ID = s.nextArticle
	s.articles[a.ID] = a
	return a
}

// sortedArticles returns the catalogue newest first.
func (s *Server) sortedArticles() []news.Article {
	out := make([]news.Article, 0, len(s.articles))
	for _, a := range s.articles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

var seedArticles = []news.Article{
	{
		Title:       "Open-source model tops coding benchmark",
		Description: "A community-trained model beats proprietary systems on a popular coding test.",
		Content:     "Researchers released weights and training data alongside the results.",
		Category:    "Technology",
		Tags:        news.Tags{List: []string{"AI", "open source"}},
		Source:      "Tech Wire",
		Author:      "Admin",
		URL:         "https://example.com/articles/open-model",
	},
	{
		Title:       "New study links sleep and memory",
		Description: "Deep sleep appears to consolidate long-term memories.",
		Content:     "The trial followed 400 participants over two years.",
		Category:    "Health",
		Tags:        news.Tags{Text: "sleep, memory"},
		Source:      "Health Daily",
		Author:      "Admin",
	},
	{
		Title:       "Probe returns samples from asteroid",
		Description: "The capsule landed safely after a seven-year mission.",
		Content:     "Scientists expect the samples to predate the solar system's planets.",
		Category:    "Science",
		Tags:        news.Tags{List: []string{"space"}},
		Source:      "Science Now",
		Author:      "Admin",
	},
	{
		Title:       "Final decided in extra time",
		Description: "A late goal settled the championship.",
		Content:     "Fans stayed long after the whistle.",
		Category:    "Sports",
		Tags:        news.Tags{Text: "football"},
		Source:      "Sports Desk",
		Author:      "Admin",
	},
}
