package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/veerladharma/news-aggregator/internal/news"
)

func renderPreview(article *news.Article, width, height, scroll int) string {
	if article == nil {
		return lipglossCenter("Select an article", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(article.Title)

	meta := []string{article.Category}
	if article.Source != "" {
		meta = append(meta, article.Source)
	}
	if article.Author != "" {
		meta = append(meta, "by "+article.Author)
	}
	source := previewSourceStyle.Render(strings.Join(meta, " · "))

	desc := article.Description
	if desc == "" {
		desc = "(No description available)"
	}
	parts := []string{title, source, previewBodyStyle.Width(contentWidth).Render(wrapText(desc, contentWidth))}

	if article.Content != "" && article.Content != article.Description {
		parts = append(parts, "", previewBodyStyle.Width(contentWidth).Render(wrapText(article.Content, contentWidth)))
	}
	if tags := article.Tags.String(); tags != "" {
		parts = append(parts, "", itemCategoryStyle.Render("Tags: "+tags))
	}
	if article.URL != "" {
		parts = append(parts, previewLinkStyle.Width(contentWidth).Render("Read more: "+article.URL))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) > width {
				lines = append(lines, line)
				line = w
			} else {
				line += " " + w
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
