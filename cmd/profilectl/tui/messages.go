package tui

import "github.com/pdf3md/profilectl/internal/editor"

// Screen identifies which view the manager shows.
type Screen int

const (
	ScreenList Screen = iota
	ScreenEditor
)

// --- Async results ---
// Each manager call runs inside a tea.Cmd and reports back with one of these.

// profilesLoadedMsg reports a finished list load.
type profilesLoadedMsg struct{ err error }

// editorOpenedMsg reports a finished template or profile fetch.
type editorOpenedMsg struct {
	editor *editor.Editor
	err    error
}

// saveDoneMsg reports a finished editor save.
type saveDoneMsg struct{ err error }

// actionDoneMsg reports a finished duplicate or delete.
type actionDoneMsg struct {
	action string
	name   string
	err    error
}

// OverlayCloseMsg is emitted when any overlay is dismissed.
type OverlayCloseMsg struct {
	Result    string // text result for text input overlays
	Confirmed bool   // true = OK/Submit, false = Cancel/Esc
}
