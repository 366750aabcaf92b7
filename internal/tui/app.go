package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/veerladharma/news-aggregator/internal/admin"
	"github.com/veerladharma/news-aggregator/internal/api"
	"github.com/veerladharma/news-aggregator/internal/browser"
	"github.com/veerladharma/news-aggregator/internal/reader"
	"github.com/veerladharma/news-aggregator/internal/session"
	"go.uber.org/zap"
)

// View is one of the two top-level screens.
type View int

const (
	ViewReader View = iota
	ViewAdmin
)

// AdminPath is the only path that selects the admin view.
const AdminPath = "/admin"

// ViewForPath picks the view for a startup path. Anything other than the
// literal admin path, including an empty one, is the reader.
func ViewForPath(path string) View {
	if path == AdminPath {
		return ViewAdmin
	}
	return ViewReader
}

func (v View) String() string {
	if v == ViewAdmin {
		return "admin"
	}
	return "reader"
}

// child is a top-level view hosted by App.
type child interface {
	init() tea.Cmd
	update(msg tea.Msg) tea.Cmd
	view() string
	resize(width, height int)
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Client *api.Client
	Store  session.Storage
	Log    *zap.Logger
	View   View
	// OpenURL opens article links; browser.Open when nil.
	OpenURL func(string) error
}

type App struct {
	opts   RunOpts
	view   View
	active child

	width  int
	height int
}

func NewApp(opts RunOpts) *App {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.OpenURL == nil {
		opts.OpenURL = browser.Open
	}
	a := &App{opts: opts}
	a.mount(opts.View)
	return a
}

// mount builds a fresh view from the stored session.
func (a *App) mount(v View) {
	sess, err := session.Load(a.opts.Store, a.opts.Log)
	if err != nil {
		a.opts.Log.Error("loading session", zap.Error(err))
		sess = session.Session{}
	}
	a.view = v
	switch v {
	case ViewAdmin:
		a.active = newAdminModel(admin.NewService(a.opts.Client, a.opts.Store, a.opts.Log), sess)
	default:
		a.active = newReaderModel(reader.NewService(a.opts.Client, a.opts.Store, a.opts.Log), sess, a.opts.OpenURL)
	}
	if a.width > 0 {
		a.active.resize(a.width, a.height)
	}
	a.opts.Log.Info("view mounted", zap.Stringer("view", v), zap.Bool("signed_in", sess.Active()))
}

// CurrentView reports which view is mounted.
func (a *App) CurrentView() View { return a.view }

func (a *App) Init() tea.Cmd {
	return a.active.init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.active.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case navigateMsg:
		a.mount(msg.view)
		return a, a.active.init()
	}

	return a, a.active.update(msg)
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  newsagg")
	}
	return a.active.view()
}

func navigate(v View) tea.Cmd {
	return func() tea.Msg { return navigateMsg{view: v} }
}

func openBrowserCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if err := open(url); err != nil {
			return browserErrMsg{err: err}
		}
		return nil
	}
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
