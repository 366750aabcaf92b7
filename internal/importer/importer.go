// Package importer seeds the article catalogue from RSS and Atom feeds
// through the admin API.
package importer

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"

	"github.com/mmcdole/gofeed"
	"github.com/veerladharma/news-aggregator/internal/classify"
	"github.com/veerladharma/news-aggregator/internal/news"
	"go.uber.org/zap"
)

const (
	descriptionLimit = 300
	contentLimit     = 5000
)

type Source struct {
	Name     string
	URL      string
	Category string
}

// Creator is the slice of the API client the importer needs.
type Creator interface {
	CreateArticle(ctx context.Context, in news.ArticleInput) error
}

type Result struct {
	Created int
	Skipped int
	Errors  []error
}

type Importer struct {
	parser  *gofeed.Parser
	creator Creator
	log     *zap.Logger
}

func New(creator Creator, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{parser: gofeed.NewParser(), creator: creator, log: log}
}

type fetched struct {
	source Source
	feed   *gofeed.Feed
}

// Import fetches every source concurrently, then creates up to limit
// articles per source one request at a time. Failures are collected, never
// retried. Items repeated across sources are only created once.
func (im *Importer) Import(ctx context.Context, sources []Source, limit int) Result {
	var (
		mu     sync.Mutex
		feeds  = make([]*fetched, len(sources))
		result Result
		wg     sync.WaitGroup
	)

	for i, src := range sources {
		wg.Add(1)
		go func(i int, s Source) {
			defer wg.Done()
			f, err := im.parser.ParseURLWithContext(s.URL, ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("fetching %s: %w", s.Name, err))
				return
			}
			feeds[i] = &fetched{source: s, feed: f}
		}(i, src)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, f := range feeds {
		if f == nil {
			continue
		}
		for _, item := range firstN(f.feed.Items, limit) {
			if item.Link != "" {
				id := itemID(item.Link)
				if seen[id] {
					result.Skipped++
					continue
				}
				seen[id] = true
			}
			in, ok := ToInput(f.feed, item, f.source)
			if !ok {
				result.Skipped++
				continue
			}
			if err := im.creator.CreateArticle(ctx, in); err != nil {
				im.log.Error("importing article", zap.String("source", f.source.Name), zap.String("title", in.Title), zap.Error(err))
				result.Errors = append(result.Errors, fmt.Errorf("creating %q: %w", in.Title, err))
				continue
			}
			im.log.Info("imported article", zap.String("source", f.source.Name), zap.String("title", in.Title))
			result.Created++
		}
	}
	return result
}

func firstN(items []*gofeed.Item, n int) []*gofeed.Item {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// ToInput maps one feed item onto the admin article form. Items without a
// title, or that fail form validation, are reported as not ok.
func ToInput(feed *gofeed.Feed, item *gofeed.Item, src Source) (news.ArticleInput, bool) {
	title := strings.TrimSpace(stripHTML(item.Title))
	if title == "" {
		return news.ArticleInput{}, false
	}

	desc := item.Description
	if desc == "" {
		desc = item.Content
	}
	content := item.Content
	if content == "" {
		content = item.Description
	}

	source := src.Name
	if feed != nil && feed.Title != "" {
		source = feed.Title
	}

	in := news.NewArticleInput(author(item))
	in.Title = title
	in.Description = truncate(stripHTML(desc), descriptionLimit)
	in.Content = truncate(stripHTML(content), contentLimit)
	switch src.Category {
	case "":
	case classify.Auto:
		in.Category = classify.Classify(title, in.Description)
	default:
		in.Category = src.Category
	}
	in.Tags = strings.Join(item.Categories, ", ")
	if source != "" {
		in.Source = source
	}
	in.ImageURL = imageURL(item)
	in.URL = item.Link

	if news.Validate(in) != nil {
		return news.ArticleInput{}, false
	}
	return in, true
}

func author(item *gofeed.Item) string {
	for _, p := range item.Authors {
		if p != nil && p.Name != "" {
			return p.Name
		}
	}
	return ""
}

func imageURL(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

func itemID(link string) string {
	h := sha256.Sum256([]byte(link))
	return fmt.Sprintf("%x", h[:16])
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
