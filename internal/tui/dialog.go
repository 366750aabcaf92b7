package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dialogKind int

const (
	dialogNotice dialogKind = iota
	dialogConfirm
	dialogHelp
)

// dialog is a blocking modal. While one is open it receives every key.
type dialog struct {
	kind      dialogKind
	text      string
	onConfirm tea.Cmd
}

// dialogQueue shows dialogs one at a time, oldest first.
type dialogQueue []dialog

func (q *dialogQueue) push(d dialog) { *q = append(*q, d) }

func (q *dialogQueue) notice(text string) { q.push(dialog{kind: dialogNotice, text: text}) }

func (q dialogQueue) open() bool { return len(q) > 0 }

// handleKey resolves the front dialog. It returns the confirm command when a
// confirmation was accepted.
func (q *dialogQueue) handleKey(msg tea.KeyMsg) tea.Cmd {
	if len(*q) == 0 {
		return nil
	}
	d := (*q)[0]
	switch d.kind {
	case dialogConfirm:
		switch msg.String() {
		case "y", "Y", "enter":
			*q = (*q)[1:]
			return d.onConfirm
		case "n", "N", "esc":
			*q = (*q)[1:]
		}
	default:
		switch msg.String() {
		case "enter", "esc", " ", "q", "?":
			*q = (*q)[1:]
		}
	}
	return nil
}

func (q dialogQueue) view(width, height int) string {
	if len(q) == 0 {
		return ""
	}
	d := q[0]
	hint, style := "enter ok", dialogStyle
	switch d.kind {
	case dialogConfirm:
		hint = "y confirm  n cancel"
	case dialogHelp:
		hint, style = "? close", helpCardStyle
	}
	maxW := width - 8
	if maxW < 20 {
		maxW = 20
	}
	body := lipgloss.NewStyle().Width(min(maxW, lipgloss.Width(d.text))).Render(d.text)
	card := style.Render(lipgloss.JoinVertical(lipgloss.Left, body, dialogHintStyle.Render(hint)))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
