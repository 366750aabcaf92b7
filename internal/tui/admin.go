package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/veerladharma/news-aggregator/internal/admin"
	"github.com/veerladharma/news-aggregator/internal/news"
	"github.com/veerladharma/news-aggregator/internal/session"
)

type adminScreen int

const (
	screenAdminLogin adminScreen = iota
	screenDashboard
	screenArticleForm
)

const (
	labelTitle       = "Title"
	labelDescription = "Description"
	labelContent     = "Content"
	labelCategory    = "Category"
	labelTags        = "Tags (comma-separated)"
	labelSource      = "Source"
	labelAuthor      = "Author"
	labelImageURL    = "Image URL"
)

type adminModel struct {
	svc    *admin.Service
	sess   session.Session
	screen adminScreen

	loginForm form
	loginErr  string
	busy      bool

	tab      admin.Tab
	articles []news.Article
	users    []news.User
	stats    news.Stats
	cursor   int
	loading  bool
	spinner  spinner.Model

	articleForm form
	editing     *news.Article

	dialogs dialogQueue
	width   int
	height  int
}

func newAdminModel(svc *admin.Service, sess session.Session) *adminModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	m := &adminModel{svc: svc, sess: sess, spinner: sp, articles: []news.Article{}, users: []news.User{}}
	if sess.Admin() {
		m.screen = screenDashboard
	} else {
		m.resetLogin()
	}
	m.resetArticleForm()
	return m
}

func (m *adminModel) init() tea.Cmd {
	if m.screen == screenDashboard {
		return m.fetchTabCmd()
	}
	return nil
}

func (m *adminModel) resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *adminModel) resetLogin() {
	f := form{title: "Admin Login"}
	f.add(labelEmail, "admin@example.com", "", false)
	f.add(labelPassword, "••••••••", "", true)
	m.loginForm = f
	m.loginErr = ""
}

// resetArticleForm returns the form to its defaults: category Technology,
// source Admin and the signed-in user as author.
func (m *adminModel) resetArticleForm() {
	m.editing = nil
	m.articleForm = articleForm("New Article", news.NewArticleInput(m.sess.User.Name))
}

func articleForm(title string, in news.ArticleInput) form {
	f := form{title: title}
	f.add(labelTitle, "Article title", in.Title, false)
	f.add(labelDescription, "Short summary", in.Description, false)
	f.add(labelContent, "Full article text", in.Content, false)
	f.addChoice(labelCategory, news.ArticleCategories, in.Category)
	f.add(labelTags, "AI, Innovation", in.Tags, false)
	f.add(labelSource, "Admin", in.Source, false)
	f.add(labelAuthor, "Admin", in.Author, false)
	f.add(labelImageURL, "https://...", in.ImageURL, false)
	return f
}

func formArticleInput(f *form) news.ArticleInput {
	return news.ArticleInput{
		Title:       f.value(labelTitle),
		Description: f.value(labelDescription),
		Content:     f.value(labelContent),
		Category:    f.value(labelCategory),
		Tags:        f.value(labelTags),
		Source:      f.value(labelSource),
		Author:      f.value(labelAuthor),
		ImageURL:    f.value(labelImageURL),
	}
}

// fetchTabCmd loads whatever the active tab shows.
func (m *adminModel) fetchTabCmd() tea.Cmd {
	svc, sess := m.svc, m.sess
	m.loading = true
	var fetch tea.Cmd
	switch m.tab {
	case admin.TabUsers:
		fetch = func() tea.Msg {
			users, err := svc.Users(context.Background(), sess)
			return adminUsersMsg{users: users, err: err}
		}
	case admin.TabStats:
		fetch = func() tea.Msg {
			stats, err := svc.Stats(context.Background(), sess)
			return adminStatsMsg{stats: stats, err: err}
		}
	default:
		fetch = func() tea.Msg {
			articles, err := svc.Articles(context.Background(), sess)
			return adminArticlesMsg{articles: articles, err: err}
		}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

func (m *adminModel) loginCmd() tea.Cmd {
	svc := m.svc
	creds := news.Credentials{Email: m.loginForm.value(labelEmail), Password: m.loginForm.value(labelPassword)}
	m.busy = true
	m.loginErr = ""
	return func() tea.Msg {
		sess, err := svc.Login(context.Background(), creds)
		return adminLoginDoneMsg{sess: sess, err: err}
	}
}

func (m *adminModel) saveCmd() tea.Cmd {
	svc, sess := m.svc, m.sess
	in := formArticleInput(&m.articleForm)
	var editing *news.Article
	if m.editing != nil {
		e := *m.editing
		editing = &e
	}
	return func() tea.Msg {
		res, err := svc.Save(context.Background(), sess, in, editing)
		return mutationDoneMsg{result: res, err: err}
	}
}

func (m *adminModel) deleteCmd(id int64) tea.Cmd {
	svc, sess := m.svc, m.sess
	return func() tea.Msg {
		res, err := svc.Delete(context.Background(), sess, id)
		return mutationDoneMsg{result: res, delete: true, err: err}
	}
}

func (m *adminModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.dialogs.open() {
			return m.dialogs.handleKey(msg)
		}
		switch m.screen {
		case screenAdminLogin:
			return m.handleLoginKey(msg)
		case screenArticleForm:
			return m.handleFormKey(msg)
		}
		return m.handleDashboardKey(msg)

	case adminLoginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.loginErr = admin.LoginFailure(msg.err)
			return nil
		}
		m.sess = msg.sess
		m.screen = screenDashboard
		m.resetArticleForm()
		return m.fetchTabCmd()

	case adminArticlesMsg:
		m.loading = false
		m.articles = msg.articles
		m.clampCursor()
		return nil

	case adminUsersMsg:
		m.loading = false
		m.users = msg.users
		m.clampCursor()
		return nil

	case adminStatsMsg:
		m.loading = false
		if msg.err == nil {
			m.stats = msg.stats
		}
		return nil

	case mutationDoneMsg:
		if msg.err != nil {
			if msg.delete {
				m.dialogs.notice(admin.DeleteFailure(msg.err))
			} else {
				m.dialogs.notice(admin.SaveFailure(msg.err))
			}
			return nil
		}
		m.articles = msg.result.Articles
		m.clampCursor()
		if !msg.delete {
			m.resetArticleForm()
			m.screen = screenDashboard
		}
		m.dialogs.notice(msg.result.Notice)
		return nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *adminModel) rows() int {
	if m.tab == admin.TabUsers {
		return len(m.users)
	}
	return len(m.articles)
}

func (m *adminModel) clampCursor() {
	if m.cursor >= m.rows() {
		m.cursor = max(0, m.rows()-1)
	}
}

func (m *adminModel) handleLoginKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if m.busy {
			return nil
		}
		return m.loginCmd()
	case "tab", "down":
		m.loginForm.next()
		return nil
	case "shift+tab", "up":
		m.loginForm.prev()
		return nil
	case "ctrl+b":
		return navigate(ViewReader)
	case "esc":
		return tea.Quit
	}
	m.loginForm.update(msg)
	return nil
}

func (m *adminModel) switchTab(t admin.Tab) tea.Cmd {
	m.tab = t
	m.cursor = 0
	return m.fetchTabCmd()
}

func (m *adminModel) handleDashboardKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "tab", "right":
		return m.switchTab(m.tab.Next())
	case "shift+tab", "left":
		return m.switchTab(m.tab.Next().Next())
	case "1":
		return m.switchTab(admin.TabArticles)
	case "2":
		return m.switchTab(admin.TabUsers)
	case "3":
		return m.switchTab(admin.TabStats)
	case "j", "down":
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
		return nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	case "r":
		return m.fetchTabCmd()
	case "n":
		if m.tab == admin.TabArticles {
			m.resetArticleForm()
			m.screen = screenArticleForm
		}
		return nil
	case "e", "enter":
		if m.tab == admin.TabArticles && m.cursor < len(m.articles) {
			a := m.articles[m.cursor]
			m.editing = &a
			m.articleForm = articleForm("Edit Article", news.InputFromArticle(a))
			m.screen = screenArticleForm
		}
		return nil
	case "d":
		if m.tab == admin.TabArticles && m.cursor < len(m.articles) {
			m.dialogs.push(dialog{
				kind:      dialogConfirm,
				text:      admin.ConfirmDelete,
				onConfirm: m.deleteCmd(m.articles[m.cursor].ID),
			})
		}
		return nil
	case "b":
		return navigate(ViewReader)
	case "X":
		if err := m.svc.Logout(); err != nil {
			m.dialogs.notice("Logout failed: " + err.Error())
			return nil
		}
		m.sess = session.Session{}
		m.articles, m.users, m.stats = []news.Article{}, []news.User{}, news.Stats{}
		m.tab, m.cursor = admin.TabArticles, 0
		m.resetLogin()
		m.screen = screenAdminLogin
		return nil
	case "?":
		m.dialogs.push(dialog{kind: dialogHelp, text: adminHelp})
		return nil
	}
	return nil
}

func (m *adminModel) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.resetArticleForm()
		m.screen = screenDashboard
		return nil
	case "enter", "ctrl+s":
		in := formArticleInput(&m.articleForm)
		if m.editing != nil {
			in.ID = m.editing.ID
		}
		if err := news.Validate(in); err != nil {
			m.dialogs.notice(err.Error())
			return nil
		}
		return m.saveCmd()
	case "tab", "down":
		m.articleForm.next()
		return nil
	case "shift+tab", "up":
		m.articleForm.prev()
		return nil
	}
	m.articleForm.update(msg)
	return nil
}
