package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// field is a minimal single-line text input.
type field struct {
	label   string
	value   string
	secret  bool
	focused bool
}

func (f *field) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		if len(f.value) > 0 {
			runes := []rune(f.value)
			f.value = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		f.value += " "
	case tea.KeyRunes:
		f.value += string(msg.Runes)
	}
}

func (f field) view() string {
	marker := " "
	if f.focused {
		marker = ">"
	}
	shown := f.value
	if f.secret {
		shown = ""
		for range f.value {
			shown += "*"
		}
	}
	return fmt.Sprintf(" %s %s: %s", marker, f.label, shown)
}
