package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdf3md/profilectl/internal/editor"
	"github.com/pdf3md/profilectl/internal/manager"
	"github.com/pdf3md/profilectl/internal/profiles"
)

// pending identifies what an open overlay will do when it closes.
type pending int

const (
	pendingNone pending = iota
	pendingAlert
	pendingDelete
	pendingDuplicate
)

// Model is the bubbletea model behind `profilectl manage`. Every service call
// goes through the manager inside a tea.Cmd; the editor is only touched from
// Update.
type Model struct {
	ctx context.Context
	mgr *manager.Manager

	screen Screen
	cursor int

	editor      *editor.Editor
	tabs        TabBar
	fieldCursor int
	fieldInput  textinput.Model
	editingKey  string // key being typed into, "" when not editing

	overlay Overlay
	pending pending
	target  string

	status   StatusBar
	message  string
	changed  bool
	width    int
	height   int
	Quitting bool
}

// NewModel creates the manage screen over mgr.
func NewModel(ctx context.Context, mgr *manager.Manager) Model {
	return Model{
		ctx:    ctx,
		mgr:    mgr,
		tabs:   NewTabBar(),
		status: NewStatusBar(),
		width:  80,
		height: 24,
	}
}

// Changed reports whether any mutation succeeded during the session.
func (m Model) Changed() bool { return m.changed }

// Screen returns the current screen.
func (m Model) Screen() Screen { return m.screen }

// Init loads the profile list.
func (m Model) Init() tea.Cmd {
	return m.openCmd()
}

func (m Model) openCmd() tea.Cmd {
	ctx, mgr := m.ctx, m.mgr
	return func() tea.Msg {
		return profilesLoadedMsg{err: mgr.Open(ctx)}
	}
}

func (m Model) retryCmd() tea.Cmd {
	ctx, mgr := m.ctx, m.mgr
	return func() tea.Msg {
		return profilesLoadedMsg{err: mgr.Retry(ctx)}
	}
}

func (m Model) createCmd() tea.Cmd {
	ctx, mgr := m.ctx, m.mgr
	return func() tea.Msg {
		ed, err := mgr.BeginCreate(ctx)
		return editorOpenedMsg{editor: ed, err: err}
	}
}

func (m Model) editCmd(name string) tea.Cmd {
	ctx, mgr := m.ctx, m.mgr
	return func() tea.Msg {
		ed, err := mgr.BeginEdit(ctx, name)
		return editorOpenedMsg{editor: ed, err: err}
	}
}

func (m Model) saveCmd(draft profiles.Profile) tea.Cmd {
	ctx, mgr := m.ctx, m.mgr
	return func() tea.Msg {
		return saveDoneMsg{err: mgr.SaveDraft(ctx, draft)}
	}
}

func (m Model) duplicateCmd(source, newName string) tea.Cmd {
	ctx, mgr := m.ctx, m.mgr
	return func() tea.Msg {
		return actionDoneMsg{action: "duplicate", name: source, err: mgr.DuplicateAs(ctx, source, newName)}
	}
}

func (m Model) deleteCmd(name string) tea.Cmd {
	ctx, mgr := m.ctx, m.mgr
	return func() tea.Msg {
		return actionDoneMsg{action: "delete", name: name, err: mgr.DeleteConfirmed(ctx, name)}
	}
}

// Update handles messages for the whole manage screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.tabs.SetWidth(msg.Width)
		m.status.SetWidth(msg.Width)
		return m, nil

	case profilesLoadedMsg:
		m.clampCursor()
		if msg.err != nil {
			m.message = msg.err.Error()
		}
		return m, nil

	case editorOpenedMsg:
		if msg.err != nil {
			return m.alert("Error", msg.err), nil
		}
		m.editor = msg.editor
		m.screen = ScreenEditor
		m.fieldCursor = 0
		m.editingKey = ""
		m.tabs.SetActive(m.editor.Tab())
		m.message = ""
		return m, nil

	case saveDoneMsg:
		if m.editor != nil {
			m.editor.EndSave()
		}
		if msg.err != nil {
			return m.alert("Save failed", msg.err), nil
		}
		m.changed = true
		m.editor = nil
		m.screen = ScreenList
		m.message = "Profile saved"
		m.clampCursor()
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			return m.alert(capitalize(msg.action)+" failed", msg.err), nil
		}
		m.changed = true
		m.clampCursor()
		if msg.action == "delete" {
			m.message = fmt.Sprintf("Deleted %q", msg.name)
		} else {
			m.message = fmt.Sprintf("Duplicated %q", msg.name)
		}
		return m, nil

	case OverlayCloseMsg:
		return m.handleOverlayClose(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.mgr.Close()
			m.Quitting = true
			return m, tea.Quit
		}
		if m.overlay.Active() {
			var cmd tea.Cmd
			m.overlay, cmd = m.overlay.Update(msg)
			return m, cmd
		}
		if m.screen == ScreenEditor {
			return m.updateEditor(msg)
		}
		return m.updateList(msg)
	}

	if m.editingKey != "" {
		var cmd tea.Cmd
		m.fieldInput, cmd = m.fieldInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// alert opens an error overlay and leaves the current screen as it is.
func (m Model) alert(title string, err error) Model {
	text := err.Error()
	if errors.Is(err, profiles.ErrNameRequired) {
		text = "Profile name is required"
	}
	m.overlay = NewAlertOverlay(title, text)
	m.pending = pendingAlert
	return m
}

func (m Model) handleOverlayClose(msg OverlayCloseMsg) (tea.Model, tea.Cmd) {
	p, target := m.pending, m.target
	m.pending, m.target = pendingNone, ""
	if !msg.Confirmed {
		return m, nil
	}
	switch p {
	case pendingDelete:
		return m, m.deleteCmd(target)
	case pendingDuplicate:
		newName := strings.TrimSpace(msg.Result)
		if newName == "" {
			return m, nil
		}
		return m, m.duplicateCmd(target, newName)
	}
	return m, nil
}

func (m Model) selected() (profiles.Summary, bool) {
	list := m.mgr.Profiles()
	if m.cursor < 0 || m.cursor >= len(list) {
		return profiles.Summary{}, false
	}
	return list[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.mgr.Profiles())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.mgr.Close()
		m.Quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.mgr.Profiles())-1 {
			m.cursor++
		}
	case "r":
		m.message = ""
		return m, m.retryCmd()
	case "n":
		if m.mgr.Creating() {
			return m, nil
		}
		return m, m.createCmd()
	case "e", "enter":
		sel, ok := m.selected()
		if !ok || m.mgr.Busy(sel.Name) {
			return m, nil
		}
		if profiles.IsProtected(sel.Name) {
			return m.alert("Cannot edit", manager.ErrProtected), nil
		}
		return m, m.editCmd(sel.Name)
	case "d":
		sel, ok := m.selected()
		if !ok || m.mgr.Busy(sel.Name) {
			return m, nil
		}
		m.overlay = NewTextInputOverlay(fmt.Sprintf("Duplicate %q", sel.Name), sel.Name+" copy")
		m.pending, m.target = pendingDuplicate, sel.Name
	case "x", "delete":
		sel, ok := m.selected()
		if !ok || m.mgr.Busy(sel.Name) {
			return m, nil
		}
		if err := m.mgr.CanDelete(sel.Name); err != nil {
			return m.alert("Cannot delete", err), nil
		}
		m.overlay = NewConfirmOverlay("Delete profile", fmt.Sprintf("Are you sure you want to delete %q?", sel.Name))
		m.pending, m.target = pendingDelete, sel.Name
	}
	return m, nil
}

// editorRows returns the keys shown on the current tab, name and
// description first.
func (m Model) editorRows() []string {
	rows := []string{"name", "description"}
	for _, f := range editor.FieldsFor(m.editor.Tab()) {
		rows = append(rows, f.Key)
	}
	return rows
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editor.Saving() {
		return m, nil
	}
	if m.editingKey != "" {
		return m.updateFieldInput(msg)
	}

	rows := m.editorRows()
	switch msg.String() {
	case "esc":
		m.mgr.CancelEdit()
		m.editor = nil
		m.screen = ScreenList
		m.message = ""
		return m, nil
	case "tab":
		m.editor.NextTab()
		m.tabs.SetActive(m.editor.Tab())
		m.fieldCursor = 0
	case "shift+tab":
		m.editor.PrevTab()
		m.tabs.SetActive(m.editor.Tab())
		m.fieldCursor = 0
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(rows)-1 {
			m.fieldCursor++
		}
	case " ", "space":
		key := rows[m.fieldCursor]
		if f, ok := editor.Lookup(key); ok && (f.Kind == editor.KindBool || f.Kind == editor.KindChoice) {
			if err := m.editor.Toggle(key); err != nil {
				m.message = err.Error()
			}
		}
	case "enter":
		key := rows[m.fieldCursor]
		if f, ok := editor.Lookup(key); ok && f.Kind == editor.KindBool {
			if err := m.editor.Toggle(key); err != nil {
				m.message = err.Error()
			}
			return m, nil
		}
		value, _ := m.editor.Value(key)
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 40
		ti.SetValue(value)
		ti.Focus()
		m.fieldInput = ti
		m.editingKey = key
		return m, textinput.Blink
	case "ctrl+s":
		draft, err := m.editor.BeginSave()
		if err != nil {
			return m.alert("Cannot save", err), nil
		}
		m.message = "Saving..."
		return m, m.saveCmd(draft)
	}
	return m, nil
}

func (m Model) updateFieldInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editingKey = ""
		return m, nil
	case "enter":
		if err := m.editor.Set(m.editingKey, m.fieldInput.Value()); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.editingKey = ""
		m.message = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.fieldInput, cmd = m.fieldInput.Update(msg)
	return m, cmd
}

// View renders the current screen with any overlay on top.
func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var body string
	if m.screen == ScreenEditor && m.editor != nil {
		body = m.viewEditor()
		if m.editingKey != "" {
			m.status.Update(m.message, fieldShortcuts)
		} else {
			m.status.Update(m.message, editorShortcuts)
		}
	} else {
		body = m.viewList()
		m.status.Update(m.message, listShortcuts)
	}

	bodyHeight := max(m.height-1, 1)
	frame := lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body) + "\n" + m.status.View()
	if m.overlay.Active() {
		return Composite(frame, m.overlay.View(), m.width, m.height)
	}
	return frame
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Formatting Profiles"))
	b.WriteString("\n\n")

	if err := m.mgr.LoadErr(); err != nil {
		b.WriteString(ErrorStyle.Render(err.Error()))
		b.WriteString("\n")
		b.WriteString(DescriptionStyle.Render("Press r to retry."))
		b.WriteString("\n\n")
	}

	list := m.mgr.Profiles()
	if len(list) == 0 && m.mgr.LoadErr() == nil {
		if m.mgr.Loading() {
			b.WriteString(DescriptionStyle.Render("Loading profiles..."))
		} else {
			b.WriteString(DescriptionStyle.Render("No profiles found."))
		}
		b.WriteString("\n")
	}

	for i, p := range list {
		name := p.Name
		if profiles.IsProtected(name) {
			name += " " + ProtectedTagStyle.Render("[default]")
		}
		prefix := "  "
		style := RowStyle
		switch {
		case m.mgr.Busy(p.Name):
			style = BusyRowStyle
			name += " (working...)"
		case i == m.cursor:
			prefix = "> "
			style = CursorRowStyle
		}
		b.WriteString(prefix + style.Render(name) + "\n")
		if p.Description != "" {
			b.WriteString("    " + DescriptionStyle.Render(p.Description) + "\n")
		}
	}
	if m.mgr.Creating() {
		b.WriteString("\n" + DescriptionStyle.Render("Creating..."))
	}
	return ContentPaneStyle.Render(b.String())
}

func (m Model) viewEditor() string {
	var b strings.Builder
	title := m.editor.Title()
	if m.editor.Dirty() {
		title += " *"
	}
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.tabs.View())
	b.WriteString("\n\n")

	for i, key := range m.editorRows() {
		label := key
		switch key {
		case "name":
			label = "Profile Name"
		case "description":
			label = "Description"
		default:
			if f, ok := editor.Lookup(key); ok {
				label = f.Label
			}
		}

		value, _ := m.editor.Value(key)
		if key == m.editingKey {
			value = m.fieldInput.View()
		}

		prefix := "  "
		style := RowStyle
		if i == m.fieldCursor {
			prefix = "> "
			style = CursorRowStyle
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, style.Render(fmt.Sprintf("%-24s", label)), value))
	}

	if m.editor.Saving() {
		b.WriteString("\n" + DescriptionStyle.Render("Saving..."))
	}
	return ContentPaneStyle.Render(b.String())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
