package reader

import (
	"net/url"

	"github.com/veerladharma/news-aggregator/internal/news"
)

// Filter is the feed state the user controls directly.
type Filter struct {
	Category string
	Search   string
	Live     bool
}

// DefaultFilter is the feed state a fresh session starts with.
func DefaultFilter() Filter {
	return Filter{Category: news.CategoryAll}
}

// ForYou reports whether the personalized category is selected.
func (f Filter) ForYou() bool {
	return f.Category == news.CategoryForYou
}

// Query builds the /articles query string. The "For You" category ignores
// the search box and live toggle: it always searches the first saved
// interest (or "news") and always asks for live results.
func (f Filter) Query(prefs news.Preferences) url.Values {
	q := url.Values{}
	if f.ForYou() {
		q.Set("search", prefs.FeedTerm())
		q.Set("fetch_live", "true")
		return q
	}
	if f.Category != news.CategoryAll && f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Live {
		q.Set("fetch_live", "true")
	}
	return q
}
