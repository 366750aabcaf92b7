package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/veerladharma/news-aggregator/internal/news"
)

const readerHelp = `Keyboard Shortcuts

Feed
  tab, ←/→       Switch category
  j/k, ↑/↓       Navigate articles
  ctrl+d/ctrl+u  Scroll preview
  /              Search
  f              Toggle live news
  o, enter       Open article in browser

Interactions
  l  Like    b  Bookmark    s  Share

Account
  p              Edit preferences
  a              Admin panel (admins only)
  X              Log out
  q, ctrl+c      Quit`

func (m *readerModel) view() string {
	if m.dialogs.open() {
		return m.dialogs.view(m.width, m.height)
	}
	switch m.screen {
	case screenAuth:
		return m.authView()
	case screenPrefs:
		return m.prefsView()
	}
	return m.feedView()
}

func (m *readerModel) header() string {
	right := ""
	if m.sess.Active() {
		right = "Welcome, " + m.sess.User.DisplayName("User")
	}
	return renderHeader("📰 NewsAI", right, m.width)
}

func (m *readerModel) authView() string {
	w := min(56, m.width-4)
	body := m.authForm.view(w - 6)

	var links []string
	switch m.auth {
	case authLogin:
		links = append(links, "ctrl+f forgot password", "ctrl+r create account")
	case authRegister:
		links = append(links, "ctrl+r sign in instead")
	case authForgot:
		links = append(links, "esc back to login")
	}
	if m.busy {
		body += "\n\n" + helpDimStyle.Render("Please wait...")
	}
	body += "\n\n" + helpDimStyle.Render(strings.Join(links, "  ·  "))

	card := formCardStyle.Width(w).Render(body)
	content := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, card)
	status := renderStatusBar("", "enter submit  tab next  ctrl+c quit", m.width)
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), content, status)
}

func (m *readerModel) prefsView() string {
	w := min(72, m.width-4)
	card := formCardStyle.Width(w).Render(m.prefsForm.view(w - 6))
	content := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, card)
	status := renderStatusBar("", "enter save  esc cancel  tab next field", m.width)
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), content, status)
}

func (m *readerModel) liveBadge() string {
	if m.filter.Live {
		return liveOnStyle.Render("● Live")
	}
	return liveOffStyle.Render("○ Live")
}

// emptyText is shown when the feed has no articles.
func (m *readerModel) emptyText() string {
	if m.loading {
		if m.filter.ForYou() {
			return fmt.Sprintf("%s Loading personalized %s...", m.spinner.View(), m.prefs.FeedTerm())
		}
		return m.spinner.View() + " Loading articles..."
	}
	if m.filter.ForYou() && len(m.prefs.Interests) == 0 {
		return "Welcome to your personalized feed!\nSet your preferences to see news tailored to your interests.\nPress p to set preferences now."
	}
	return "No articles found. Try enabling Live News or adjusting your filters."
}

func (m *readerModel) feedView() string {
	tabs := renderTabs(news.ReaderCategories, indexOf(news.ReaderCategories, m.filter.Category), m.width, m.liveBadge())

	search := m.searchInput.View()
	if !m.searching && m.searchInput.Value() == "" {
		search = helpDimStyle.Render("  / to search")
	}

	var banner string
	if m.filter.ForYou() && len(m.articles) > 0 && !m.loading {
		interests := strings.Join(m.prefs.Interests, ", ")
		if interests == "" {
			interests = "General"
		}
		banner = bannerStyle.Render("Showing personalized news for: " + interests + "\nBased on your saved preferences. Press p to update preferences.")
	}

	headerHeight := 3
	if banner != "" {
		headerHeight += lipgloss.Height(banner)
	}
	contentHeight := m.height - headerHeight - 1 - 2 // status, borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	listWidth := int(float64(m.width) * 0.4)
	previewWidth := m.width - listWidth - 1

	var listContent string
	if m.loading || len(m.articles) == 0 {
		listContent = lipglossCenter(m.emptyText(), listWidth-4, contentHeight)
	} else {
		listContent = renderList(m.articles, m.cursor, contentHeight, listWidth-4, "")
	}
	paneStyle := listPaneActiveStyle
	if m.searching {
		paneStyle = listPaneStyle
	}
	listPane := paneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)

	var selected *news.Article
	if !m.loading && m.cursor < len(m.articles) {
		selected = &m.articles[m.cursor]
	}
	previewPane := previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).
		Render(renderPreview(selected, previewWidth-4, contentHeight, m.previewScroll))

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	left := fmt.Sprintf(" %d articles · %s", len(m.articles), m.filter.Category)
	if m.loading {
		left = m.spinner.View() + left
	}
	hints := "l like  b bookmark  s share  p prefs  ? help  q quit"
	if m.searching {
		hints = "esc clear  enter done"
	} else if m.sess.User.IsAdmin() {
		hints = "a admin  " + hints
	}
	status := renderStatusBar(left, hints, m.width)

	rows := []string{m.header(), tabs, search}
	if banner != "" {
		rows = append(rows, banner)
	}
	rows = append(rows, content, status)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
