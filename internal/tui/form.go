package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// field is a text input, or a fixed set of choices cycled with left/right
// when choices is non-nil.
type field struct {
	label   string
	input   textinput.Model
	choices []string
	choice  int
}

func (f *field) value() string {
	if f.choices != nil {
		return f.choices[f.choice]
	}
	return f.input.Value()
}

type form struct {
	title  string
	fields []field
	focus  int
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 2000
	ti.Cursor.SetMode(cursor.CursorStatic)
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func (f *form) add(label, placeholder, value string, secret bool) {
	in := newInput(placeholder, secret)
	in.SetValue(value)
	f.fields = append(f.fields, field{label: label, input: in})
	f.focusField(f.focus)
}

// addChoice adds a choice field. A selected value missing from choices is
// appended as an extra choice so it survives an untouched save.
func (f *form) addChoice(label string, choices []string, selected string) {
	fl := field{label: label, choices: choices}
	if i := slices.Index(choices, selected); i >= 0 {
		fl.choice = i
	} else if selected != "" {
		fl.choices = append(slices.Clip(choices), selected)
		fl.choice = len(fl.choices) - 1
	}
	f.fields = append(f.fields, fl)
}

// value returns the current value of the field with the given label.
func (f *form) value(label string) string {
	for i := range f.fields {
		if f.fields[i].label == label {
			return f.fields[i].value()
		}
	}
	return ""
}

func (f *form) focusField(i int) {
	if len(f.fields) == 0 {
		return
	}
	f.focus = (i + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		if f.fields[j].choices != nil {
			continue
		}
		if j == f.focus {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

func (f *form) next() { f.focusField(f.focus + 1) }
func (f *form) prev() { f.focusField(f.focus - 1) }

// update applies a key to the focused field and reports whether its value
// changed.
func (f *form) update(msg tea.KeyMsg) bool {
	if len(f.fields) == 0 {
		return false
	}
	fl := &f.fields[f.focus]
	if fl.choices != nil {
		switch msg.String() {
		case "left", "h":
			fl.choice = (fl.choice - 1 + len(fl.choices)) % len(fl.choices)
			return true
		case "right", "l", " ":
			fl.choice = (fl.choice + 1) % len(fl.choices)
			return true
		}
		return false
	}
	before := fl.input.Value()
	fl.input, _ = fl.input.Update(msg)
	return fl.input.Value() != before
}

func (f *form) view(width int) string {
	if width < 20 {
		width = 20
	}
	var b strings.Builder
	if f.title != "" {
		b.WriteString(formTitleStyle.Render(f.title))
		b.WriteString("\n")
	}
	for i := range f.fields {
		fl := &f.fields[i]
		label := formLabelStyle.Render(fl.label)
		if i == f.focus {
			label = formLabelActiveStyle.Render(fl.label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		if fl.choices != nil {
			b.WriteString(renderChoices(fl.choices, fl.choice, i == f.focus))
		} else {
			fl.input.Width = width - 4
			b.WriteString("  " + fl.input.View())
		}
		if i < len(f.fields)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func renderChoices(choices []string, selected int, focused bool) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		if i == selected {
			parts[i] = tabActiveStyle.Render(c)
		} else {
			parts[i] = tabInactiveStyle.Render(c)
		}
	}
	row := "  " + strings.Join(parts, " ")
	if focused {
		row += helpDimStyle.Render("  ←/→")
	}
	return lipgloss.NewStyle().Render(row)
}
