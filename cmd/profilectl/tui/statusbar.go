package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type shortcut struct{ key, label string }

var (
	listShortcuts = []shortcut{
		{"n", "new"}, {"e", "edit"}, {"d", "duplicate"}, {"x", "delete"}, {"r", "reload"}, {"q", "close"},
	}
	editorShortcuts = []shortcut{
		{"Tab", "next tab"}, {"Enter", "edit"}, {"Space", "toggle"}, {"Ctrl+S", "save"}, {"Esc", "cancel"},
	}
	fieldShortcuts = []shortcut{
		{"Enter", "apply"}, {"Esc", "discard"},
	}
)

// StatusBar renders the bottom row with a message and keyboard shortcuts.
type StatusBar struct {
	message   string
	shortcuts []shortcut
	width     int
}

// NewStatusBar creates a status bar showing the list shortcuts.
func NewStatusBar() StatusBar {
	return StatusBar{shortcuts: listShortcuts}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// Update sets the message and the shortcut set for the current screen.
func (s *StatusBar) Update(message string, shortcuts []shortcut) {
	s.message = message
	s.shortcuts = shortcuts
}

// View renders the status bar.
func (s StatusBar) View() string {
	keys := make([]string, len(s.shortcuts))
	for i, sc := range s.shortcuts {
		keys[i] = StatusBarKeyStyle.Render(sc.key) + ": " + sc.label
	}
	right := strings.Join(keys, " · ")

	gap := s.width - 2 - ansi.StringWidth(s.message) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return StatusBarStyle.Width(s.width).Render(s.message + strings.Repeat(" ", gap) + right)
}
