package tui

import (
	"github.com/veerladharma/news-aggregator/internal/admin"
	"github.com/veerladharma/news-aggregator/internal/news"
	"github.com/veerladharma/news-aggregator/internal/session"
)

// navigateMsg restarts the program in another view, like following a link.
type navigateMsg struct {
	view View
}

type browserErrMsg struct {
	err error
}

// Reader view

type loginDoneMsg struct {
	sess session.Session
	err  error
}

type registerDoneMsg struct {
	err error
}

type prefsLoadedMsg struct {
	prefs news.Preferences
	err   error
}

type feedLoadedMsg struct {
	articles []news.Article
	err      error
}

type interactionDoneMsg struct {
	notice string
	err    error
}

type prefsSavedMsg struct {
	notice string
	err    error
}

// Admin view

type adminLoginDoneMsg struct {
	sess session.Session
	err  error
}

type adminArticlesMsg struct {
	articles []news.Article
	err      error
}

type adminUsersMsg struct {
	users []news.User
	err   error
}

type adminStatsMsg struct {
	stats news.Stats
	err   error
}

type mutationDoneMsg struct {
	result admin.Mutation
	delete bool
	err    error
}
