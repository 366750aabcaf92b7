package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/veerladharma/news-aggregator/internal/admin"
)

const adminHelp = `Admin Shortcuts

Dashboard
  tab, ←/→, 1-3  Switch tab
  j/k, ↑/↓       Select row
  r              Reload
  b              Back to site
  X              Log out

Articles
  n              New article
  e, enter       Edit article
  d              Delete article

Form
  tab/shift+tab  Next/previous field
  ←/→            Change category
  enter, ctrl+s  Save
  esc            Cancel`

var adminTabLabels = []string{admin.TabArticles.String(), admin.TabUsers.String(), admin.TabStats.String()}

func (m *adminModel) view() string {
	if m.dialogs.open() {
		return m.dialogs.view(m.width, m.height)
	}
	switch m.screen {
	case screenAdminLogin:
		return m.loginView()
	case screenArticleForm:
		return m.formView()
	}
	return m.dashboardView()
}

func (m *adminModel) header() string {
	right := ""
	if m.sess.Active() {
		right = m.sess.User.DisplayName("Admin") + " " + badgeAdminStyle.Render("admin")
	}
	return renderHeader("🛠 Admin Dashboard", right, m.width)
}

func (m *adminModel) loginView() string {
	w := min(56, m.width-4)
	body := m.loginForm.view(w - 6)
	if m.loginErr != "" {
		body += "\n\n" + errorStyle.Render(m.loginErr)
	}
	if m.busy {
		body += "\n\n" + helpDimStyle.Render("Logging in...")
	}
	body += "\n\n" + helpDimStyle.Render("ctrl+b back to home")

	card := formCardStyle.Width(w).Render(body)
	content := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, card)
	status := renderStatusBar("", "enter login  tab next  esc quit", m.width)
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), content, status)
}

func (m *adminModel) formView() string {
	w := min(80, m.width-4)
	card := formCardStyle.Width(w).Render(m.articleForm.view(w - 6))
	content := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, card)
	hint := "enter create  esc cancel  tab next field"
	if m.editing != nil {
		hint = "enter update  esc cancel  tab next field"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), content, renderStatusBar("", hint, m.width))
}

func (m *adminModel) dashboardView() string {
	tabs := renderTabs(adminTabLabels, int(m.tab), m.width, "")
	bodyHeight := max(3, m.height-3)

	var body string
	switch {
	case m.loading && m.rows() == 0 && m.tab != admin.TabStats:
		body = lipglossCenter(m.spinner.View()+" Loading...", m.width, bodyHeight)
	case m.tab == admin.TabUsers:
		body = m.usersTable(bodyHeight)
	case m.tab == admin.TabStats:
		body = m.statsView()
	default:
		body = m.articlesTable(bodyHeight)
	}
	body = lipgloss.NewStyle().Height(bodyHeight).Render(body)

	left := " " + m.tab.String()
	if m.tab != admin.TabStats {
		left += fmt.Sprintf(" · %d", m.rows())
	}
	if m.loading {
		left = m.spinner.View() + left
	}
	hints := "r reload  b site  X logout  ? help  q quit"
	if m.tab == admin.TabArticles {
		hints = "n new  e edit  d delete  " + hints
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), tabs, body, renderStatusBar(left, hints, m.width))
}

type column struct {
	title string
	width int
}

// renderTable lays out fixed-width columns; the last column takes what is left.
func renderTable(cols []column, rows [][]string, cursor, height, width int) string {
	used := 0
	for _, c := range cols[:len(cols)-1] {
		used += c.width + 1
	}
	cols[len(cols)-1].width = max(8, width-used-2)

	line := func(cells []string) string {
		parts := make([]string, len(cols))
		for i, c := range cols {
			v := ""
			if i < len(cells) {
				v = cells[i]
			}
			parts[i] = fmt.Sprintf("%-*s", c.width, truncateStr(v, c.width))
		}
		return strings.Join(parts, " ")
	}

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	out := []string{tableHeaderStyle.Render(line(titles))}

	start, end := visibleRange(len(rows), cursor, max(1, height-1), 1)
	for i := start; i < end; i++ {
		if i == cursor {
			out = append(out, tableSelectedStyle.Render(line(rows[i])))
		} else {
			out = append(out, tableRowStyle.Render(line(rows[i])))
		}
	}
	return strings.Join(out, "\n")
}

func (m *adminModel) articlesTable(height int) string {
	if len(m.articles) == 0 {
		return lipglossCenter("No articles yet. Press n to create one.", m.width, height)
	}
	cols := []column{{"ID", 6}, {"Category", 14}, {"Source", 16}, {"Author", 16}, {"Title", 0}}
	rows := make([][]string, len(m.articles))
	for i, a := range m.articles {
		rows[i] = []string{strconv.FormatInt(a.ID, 10), a.Category, a.Source, a.Author, a.Title}
	}
	return renderTable(cols, rows, m.cursor, height, m.width)
}

func (m *adminModel) usersTable(height int) string {
	if len(m.users) == 0 {
		return lipglossCenter("No users found.", m.width, height)
	}
	cols := []column{{"ID", 6}, {"Name", 20}, {"Role", 8}, {"Joined", 14}, {"Email", 0}}
	rows := make([][]string, len(m.users))
	for i, u := range m.users {
		rows[i] = []string{strconv.FormatInt(u.ID, 10), u.Name, u.Role, u.Joined(), u.Email}
	}
	return renderTable(cols, rows, m.cursor, height, m.width)
}

func statCard(label string, value int64) string {
	return statCardStyle.Render(statValueStyle.Render(strconv.FormatInt(value, 10)) + "\n" + helpDimStyle.Render(label))
}

func (m *adminModel) statsView() string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Users", m.stats.TotalUsers),
		statCard("Total Articles", m.stats.TotalArticles),
		statCard("Total Reads", m.stats.TotalReads),
	)
	return "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, cards)
}
