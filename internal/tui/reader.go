package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/veerladharma/news-aggregator/internal/news"
	"github.com/veerladharma/news-aggregator/internal/reader"
	"github.com/veerladharma/news-aggregator/internal/session"
)

type readerScreen int

const (
	screenAuth readerScreen = iota
	screenFeed
	screenPrefs
)

type authMode int

const (
	authLogin authMode = iota
	authRegister
	authForgot
)

const (
	labelName     = "Name"
	labelEmail    = "Email"
	labelPassword = "Password"

	labelInterests = "Interests (comma-separated)"
	labelSources   = "Preferred sources (comma-separated)"
)

type readerModel struct {
	svc     *reader.Service
	openURL func(string) error
	sess    session.Session
	screen  readerScreen

	auth     authMode
	authForm form
	busy     bool

	filter        reader.Filter
	prefs         news.Preferences
	articles      []news.Article
	cursor        int
	previewScroll int
	loading       bool
	searching     bool
	searchInput   textinput.Model
	spinner       spinner.Model

	prefsForm form

	dialogs dialogQueue
	width   int
	height  int
}

func newReaderModel(svc *reader.Service, sess session.Session, openURL func(string) error) *readerModel {
	ti := newInput("Search articles...", false)
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	m := &readerModel{
		svc:         svc,
		openURL:     openURL,
		sess:        sess,
		filter:      reader.DefaultFilter(),
		searchInput: ti,
		spinner:     sp,
	}
	if sess.Active() {
		m.screen = screenFeed
	} else {
		m.setAuthMode(authLogin)
	}
	return m
}

func (m *readerModel) init() tea.Cmd {
	if m.screen == screenFeed {
		return m.startSession()
	}
	return nil
}

func (m *readerModel) resize(width, height int) {
	m.width = width
	m.height = height
}

// startSession loads preferences and the feed side by side.
func (m *readerModel) startSession() tea.Cmd {
	return tea.Batch(m.loadPrefsCmd(), m.loadFeedCmd())
}

func (m *readerModel) setAuthMode(mode authMode) {
	prev := m.authForm
	m.auth = mode
	f := form{}
	switch mode {
	case authLogin:
		f.title = "Welcome Back"
		f.add(labelEmail, "you@example.com", prev.value(labelEmail), false)
		f.add(labelPassword, "••••••••", prev.value(labelPassword), true)
	case authRegister:
		f.title = "Create Account"
		f.add(labelName, "John Doe", prev.value(labelName), false)
		f.add(labelEmail, "you@example.com", prev.value(labelEmail), false)
		f.add(labelPassword, "••••••••", prev.value(labelPassword), true)
	case authForgot:
		f.title = "Reset Password"
		f.add(labelEmail, "you@example.com", prev.value(labelEmail), false)
	}
	m.authForm = f
}

// loadFeedCmd captures the current filter and preferences so a later
// change cannot alter an in-flight request.
func (m *readerModel) loadFeedCmd() tea.Cmd {
	m.loading = true
	query := m.filter.Query(m.prefs)
	svc, sess := m.svc, m.sess
	load := func() tea.Msg {
		articles, err := svc.Feed(context.Background(), sess, query)
		return feedLoadedMsg{articles: articles, err: err}
	}
	return tea.Batch(load, m.spinner.Tick)
}

func (m *readerModel) loadPrefsCmd() tea.Cmd {
	svc, sess := m.svc, m.sess
	return func() tea.Msg {
		prefs, err := svc.Preferences(context.Background(), sess)
		return prefsLoadedMsg{prefs: prefs, err: err}
	}
}

func (m *readerModel) submitAuthCmd() tea.Cmd {
	svc := m.svc
	email, password, name := m.authForm.value(labelEmail), m.authForm.value(labelPassword), m.authForm.value(labelName)
	switch m.auth {
	case authRegister:
		m.busy = true
		reg := news.Registration{Name: name, Email: email, Password: password}
		return func() tea.Msg {
			return registerDoneMsg{err: svc.Register(context.Background(), reg)}
		}
	case authForgot:
		notice, err := reader.ForgotPassword(news.ResetRequest{Email: email})
		if err != nil {
			m.dialogs.notice(reader.AuthFailure(err))
			return nil
		}
		m.dialogs.notice(notice)
		m.setAuthMode(authLogin)
		return nil
	default:
		m.busy = true
		creds := news.Credentials{Email: email, Password: password}
		return func() tea.Msg {
			sess, err := svc.Login(context.Background(), creds)
			return loginDoneMsg{sess: sess, err: err}
		}
	}
}

func (m *readerModel) interactCmd(typ news.InteractionType) tea.Cmd {
	if m.cursor >= len(m.articles) {
		return nil
	}
	svc, sess := m.svc, m.sess
	article, index := m.articles[m.cursor], m.cursor
	return func() tea.Msg {
		notice, err := svc.Interact(context.Background(), sess, article, index, typ)
		return interactionDoneMsg{notice: notice, err: err}
	}
}

func (m *readerModel) savePrefsCmd() tea.Cmd {
	svc, sess := m.svc, m.sess
	prefs := news.Preferences{
		Interests:        append([]string(nil), m.prefs.Interests...),
		PreferredSources: append([]string(nil), m.prefs.PreferredSources...),
	}
	return func() tea.Msg {
		notice, err := svc.SavePreferences(context.Background(), sess, prefs)
		return prefsSavedMsg{notice: notice, err: err}
	}
}

func (m *readerModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.dialogs.open() {
			return m.dialogs.handleKey(msg)
		}
		switch m.screen {
		case screenAuth:
			return m.handleAuthKey(msg)
		case screenPrefs:
			return m.handlePrefsKey(msg)
		}
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleFeedKey(msg)

	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.dialogs.notice(reader.AuthFailure(msg.err))
			return nil
		}
		m.sess = msg.sess
		m.screen = screenFeed
		m.authForm = form{}
		return m.startSession()

	case registerDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.dialogs.notice(reader.AuthFailure(msg.err))
			return nil
		}
		m.setAuthMode(authLogin)
		m.dialogs.notice(reader.NoticeRegistered)
		return nil

	case prefsLoadedMsg:
		if msg.err == nil {
			m.prefs = msg.prefs
		}
		return nil

	case feedLoadedMsg:
		m.loading = false
		m.articles = msg.articles
		if m.cursor >= len(m.articles) {
			m.cursor = max(0, len(m.articles)-1)
		}
		m.previewScroll = 0
		return nil

	case interactionDoneMsg:
		if msg.err == nil {
			m.dialogs.notice(msg.notice)
		}
		return nil

	case prefsSavedMsg:
		m.dialogs.notice(msg.notice)
		if msg.err != nil {
			return nil
		}
		m.screen = screenFeed
		return m.loadFeedCmd()

	case browserErrMsg:
		m.dialogs.notice(msg.err.Error())
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

func (m *readerModel) handleAuthKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if m.busy {
			return nil
		}
		return m.submitAuthCmd()
	case "tab", "down":
		m.authForm.next()
		return nil
	case "shift+tab", "up":
		m.authForm.prev()
		return nil
	case "ctrl+r":
		if m.auth == authRegister {
			m.setAuthMode(authLogin)
		} else {
			m.setAuthMode(authRegister)
		}
		return nil
	case "ctrl+f":
		m.setAuthMode(authForgot)
		return nil
	case "esc":
		if m.auth != authLogin {
			m.setAuthMode(authLogin)
			return nil
		}
		return tea.Quit
	}
	m.authForm.update(msg)
	return nil
}

func (m *readerModel) selectCategory(delta int) tea.Cmd {
	cats := news.ReaderCategories
	i := (indexOf(cats, m.filter.Category) + delta + len(cats)) % len(cats)
	m.filter.Category = cats[i]
	m.cursor = 0
	return m.loadFeedCmd()
}

func (m *readerModel) handleFeedKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "tab", "right", "]":
		return m.selectCategory(1)
	case "shift+tab", "left", "[":
		return m.selectCategory(-1)
	case "j", "down":
		if m.cursor < len(m.articles)-1 {
			m.cursor++
			m.previewScroll = 0
		}
		return nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.previewScroll = 0
		}
		return nil
	case "ctrl+d", "pgdown":
		m.previewScroll++
		return nil
	case "ctrl+u", "pgup":
		if m.previewScroll > 0 {
			m.previewScroll--
		}
		return nil
	case "/":
		m.searching = true
		m.searchInput.Focus()
		return nil
	case "f":
		m.filter.Live = !m.filter.Live
		return m.loadFeedCmd()
	case "l":
		return m.interactCmd(news.Like)
	case "b":
		return m.interactCmd(news.Bookmark)
	case "s":
		return m.interactCmd(news.Share)
	case "o", "enter":
		if m.cursor < len(m.articles) {
			return openBrowserCmd(m.openURL, m.articles[m.cursor].URL)
		}
		return nil
	case "p":
		m.openPrefs()
		return nil
	case "a":
		if m.sess.User.IsAdmin() {
			return navigate(ViewAdmin)
		}
		return nil
	case "X":
		return m.logout()
	case "?":
		m.dialogs.push(dialog{kind: dialogHelp, text: readerHelp})
		return nil
	}
	return nil
}

func (m *readerModel) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		if m.searchInput.Value() == "" {
			return nil
		}
		m.searchInput.SetValue("")
		m.filter.Search = ""
		return m.loadFeedCmd()
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return nil
	}

	m.searchInput, _ = m.searchInput.Update(msg)
	if v := m.searchInput.Value(); v != m.filter.Search {
		m.filter.Search = v
		m.cursor = 0
		return m.loadFeedCmd()
	}
	return nil
}

func (m *readerModel) openPrefs() {
	f := form{title: "Your Preferences"}
	f.add(labelInterests, "e.g., Technology, Health, Sports", news.JoinList(m.prefs.Interests), false)
	f.add(labelSources, "e.g., BBC, CNN, TechCrunch", news.JoinList(m.prefs.PreferredSources), false)
	m.prefsForm = f
	m.screen = screenPrefs
}

// handlePrefsKey applies every edit to the in-memory preferences at once, so
// cancelling keeps whatever was typed.
func (m *readerModel) handlePrefsKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.screen = screenFeed
		return nil
	case "enter", "ctrl+s":
		return m.savePrefsCmd()
	case "tab", "down":
		m.prefsForm.next()
		return nil
	case "shift+tab", "up":
		m.prefsForm.prev()
		return nil
	}
	if m.prefsForm.update(msg) {
		switch m.prefsForm.fields[m.prefsForm.focus].label {
		case labelInterests:
			m.prefs.Interests = news.SplitList(m.prefsForm.value(labelInterests))
		case labelSources:
			m.prefs.PreferredSources = news.SplitList(m.prefsForm.value(labelSources))
		}
	}
	return nil
}

func (m *readerModel) logout() tea.Cmd {
	if err := m.svc.Logout(); err != nil {
		m.dialogs.notice("Logout failed: " + err.Error())
		return nil
	}
	m.sess = session.Session{}
	m.prefs = news.Preferences{}
	m.articles = nil
	m.cursor = 0
	m.loading = false
	m.screen = screenAuth
	m.authForm = form{}
	m.setAuthMode(authLogin)
	return nil
}
