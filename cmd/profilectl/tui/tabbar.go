package tui

import (
	"strings"

	"github.com/pdf3md/profilectl/internal/editor"
)

// TabBar renders the editor's settings tabs along the top of the form.
type TabBar struct {
	tabs   []editor.Tab
	active editor.Tab
	width  int
}

// NewTabBar creates a tab bar over every editor tab.
func NewTabBar() TabBar {
	return TabBar{tabs: editor.AllTabs, active: editor.TabPage}
}

// SetWidth sets the available width for rendering.
func (t *TabBar) SetWidth(w int) {
	t.width = w
}

// SetActive highlights tab.
func (t *TabBar) SetActive(tab editor.Tab) {
	t.active = tab
}

// Active returns the highlighted tab.
func (t TabBar) Active() editor.Tab {
	return t.active
}

// View renders the tab bar as a single line.
func (t TabBar) View() string {
	parts := make([]string, 0, len(t.tabs))
	for _, tab := range t.tabs {
		if tab == t.active {
			parts = append(parts, ActiveTabStyle.Render(tab.String()))
		} else {
			parts = append(parts, InactiveTabStyle.Render(tab.String()))
		}
	}
	return TabBarStyle.Width(t.width).Render(strings.Join(parts, " "))
}
