package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/veerladharma/news-aggregator/internal/classify"
	"github.com/veerladharma/news-aggregator/internal/news"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// EnvAPIURL overrides api_url when set.
const EnvAPIURL = "NEWSAGG_API_URL"

type Feed struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
	Enabled  bool   `yaml:"enabled"`
}

type Config struct {
	APIURL         string `yaml:"api_url"`
	RequestTimeout string `yaml:"request_timeout"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file,omitempty"`
	StorePath      string `yaml:"store_path,omitempty"`
	ImportLimit    int    `yaml:"import_limit,omitempty"`
	Feeds          []Feed `yaml:"feeds"`
}

// Timeout returns the per-request timeout. Zero means none.
func (c *Config) Timeout() time.Duration {
	if c.RequestTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0
	}
	return d
}

func (c *Config) StoreFile() string {
	if c.StorePath != "" {
		return c.StorePath
	}
	return filepath.Join(xdg.DataHome, "newsagg", "storage.db")
}

func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(xdg.StateHome, "newsagg", "newsagg.log")
}

func (c *Config) EnabledFeeds() []Feed {
	var out []Feed
	for _, f := range c.Feeds {
		if f.Enabled {
			out = append(out, f)
		}
	}
	return out
}

func (c *Config) FeedNames() []string {
	var names []string
	for _, f := range c.EnabledFeeds() {
		names = append(names, f.Name)
	}
	return names
}

// GetImportLimit returns the per-feed import cap, defaulting to 10.
func (c *Config) GetImportLimit() int {
	if c.ImportLimit <= 0 {
		return 10
	}
	return c.ImportLimit
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsagg", "config.yaml")
}

// LoadDotEnv loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (the XDG default when empty), writing the
// embedded defaults there on first run. NEWSAGG_API_URL is applied last.
func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Non-fatal: the embedded defaults still apply.
		_ = writeDefaults(path)
		applyEnv(defaults)
		if err := validate(defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaults.APIURL
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	mergeDefaultFeeds(&cfg, defaults)
	applyEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeDefaultFeeds keeps the user's feeds in order, refreshes the URL and
// category of feeds that share a name with a default, and appends defaults
// the user has never seen. The user's enabled flag always wins.
func mergeDefaultFeeds(cfg, defaults *Config) {
	byName := make(map[string]int, len(cfg.Feeds))
	for i, f := range cfg.Feeds {
		byName[f.Name] = i
	}
	for _, d := range defaults.Feeds {
		if i, ok := byName[d.Name]; ok {
			cfg.Feeds[i].URL = d.URL
			cfg.Feeds[i].Category = d.Category
			continue
		}
		cfg.Feeds = append(cfg.Feeds, d)
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

var logLevels = []string{"debug", "info", "warn", "error"}

func validate(cfg *Config) error {
	if err := checkHTTPURL(cfg.APIURL); err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if cfg.RequestTimeout != "" {
		d, err := time.ParseDuration(cfg.RequestTimeout)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("request_timeout: must not be negative, got %s", cfg.RequestTimeout)
		}
	}
	if cfg.LogLevel != "" && !slices.Contains(logLevels, cfg.LogLevel) {
		return fmt.Errorf("log_level: unknown level %q (valid: debug, info, warn, error)", cfg.LogLevel)
	}
	for i, f := range cfg.Feeds {
		if f.Name == "" {
			return fmt.Errorf("feed %d: name is required", i)
		}
		if f.URL == "" {
			return fmt.Errorf("feed %q: url is required", f.Name)
		}
		if err := checkHTTPURL(f.URL); err != nil {
			return fmt.Errorf("feed %q: %w", f.Name, err)
		}
		if f.Category != "" && f.Category != classify.Auto && !slices.Contains(news.ArticleCategories, f.Category) {
			return fmt.Errorf("feed %q: unknown category %q", f.Name, f.Category)
		}
	}
	return nil
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}
