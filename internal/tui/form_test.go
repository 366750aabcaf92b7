package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/veerladharma/news-aggregator/internal/news"
)

func TestAddChoiceSelectsMatch(t *testing.T) {
	var f form
	f.addChoice(labelCategory, news.ArticleCategories, "Science")
	if got := f.value(labelCategory); got != "Science" {
		t.Errorf("value = %q, want Science", got)
	}
}

func TestAddChoiceKeepsUnlistedValue(t *testing.T) {
	var f form
	f.addChoice(labelCategory, news.ArticleCategories, "Cricket")
	if got := f.value(labelCategory); got != "Cricket" {
		t.Errorf("value = %q, want Cricket", got)
	}
	if len(news.ArticleCategories) != 8 {
		t.Fatalf("shared category list was modified: %v", news.ArticleCategories)
	}

	// cycling forward wraps to the first listed category
	f.update(tea.KeyMsg{Type: tea.KeyRight})
	if got := f.value(labelCategory); got != "Technology" {
		t.Errorf("after right = %q, want Technology", got)
	}
}

func TestAddChoiceEmptyDefaultsToFirst(t *testing.T) {
	var f form
	f.addChoice(labelCategory, news.ArticleCategories, "")
	if got := f.value(labelCategory); got != news.ArticleCategories[0] {
		t.Errorf("value = %q", got)
	}
	if n := len(f.fields[0].choices); n != len(news.ArticleCategories) {
		t.Errorf("got %d choices, want %d", n, len(news.ArticleCategories))
	}
}
