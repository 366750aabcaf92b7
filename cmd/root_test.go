package cmd

import (
	"strings"
	"testing"

	"github.com/veerladharma/news-aggregator/internal/classify"
	"github.com/veerladharma/news-aggregator/internal/config"
	"github.com/veerladharma/news-aggregator/internal/news"
	"github.com/veerladharma/news-aggregator/internal/session"
)

func TestImportSourcesFromArg(t *testing.T) {
	cfg := &config.Config{}
	got, err := importSources(cfg, []string{"https://example.com/rss"}, "science")
	if err != nil {
		t.Fatalf("importSources: %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://example.com/rss" || got[0].Category != "Science" {
		t.Errorf("sources = %+v", got)
	}
}

func TestImportSourcesAuto(t *testing.T) {
	got, err := importSources(&config.Config{}, []string{"https://example.com/rss"}, "auto")
	if err != nil {
		t.Fatalf("importSources: %v", err)
	}
	if got[0].Category != classify.Auto {
		t.Errorf("category = %q, want auto", got[0].Category)
	}
}

func TestImportSourcesRejectsUnknownCategory(t *testing.T) {
	cfg := &config.Config{}
	if _, err := importSources(cfg, []string{"https://example.com/rss"}, "For You"); err == nil {
		t.Error("expected error for reader-only category")
	}
}

func TestImportSourcesFromConfig(t *testing.T) {
	cfg := &config.Config{Feeds: []config.Feed{
		{Name: "On", URL: "https://a.example/rss", Category: "Health", Enabled: true},
		{Name: "Off", URL: "https://b.example/rss", Category: "Science"},
	}}
	got, err := importSources(cfg, nil, "")
	if err != nil {
		t.Fatalf("importSources: %v", err)
	}
	if len(got) != 1 || got[0].Name != "On" || got[0].Category != "Health" {
		t.Errorf("sources = %+v", got)
	}

	if _, err := importSources(&config.Config{}, nil, ""); err == nil {
		t.Error("expected error with no feeds")
	}
}

func TestDescribeSession(t *testing.T) {
	if got := describeSession(session.Session{}); got != "Not logged in.\n" {
		t.Errorf("empty session = %q", got)
	}
	got := describeSession(session.Session{Token: "t", User: news.User{Name: "A", Email: "a@b.com", Role: "admin"}})
	for _, want := range []string{"A <a@b.com>", "Role: admin"} {
		if !strings.Contains(got, want) {
			t.Errorf("describeSession = %q, missing %q", got, want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRootAcceptsOnePath(t *testing.T) {
	if err := rootCmd.Args(rootCmd, []string{"/admin"}); err != nil {
		t.Errorf("one path rejected: %v", err)
	}
	if err := rootCmd.Args(rootCmd, []string{"/a", "/b"}); err == nil {
		t.Error("two paths accepted")
	}
}
