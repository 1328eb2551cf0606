package tui

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdf3md/profilectl/internal/manager"
	"github.com/pdf3md/profilectl/internal/profiles"
)

type memStore struct {
	mu       sync.Mutex
	profiles map[string]profiles.Profile
	calls    []string
	listErr  error
	fail     map[string]error
}

func newMemStore(names ...string) *memStore {
	s := &memStore{profiles: map[string]profiles.Profile{}, fail: map[string]error{}}
	for _, n := range names {
		s.profiles[strings.ToLower(n)] = profiles.Template(n, "")
	}
	return s
}

func (s *memStore) note(call string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	return s.fail[call]
}

func (s *memStore) List(context.Context) ([]profiles.Summary, error) {
	if err := s.note("list"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := []profiles.Summary{}
	for _, p := range s.profiles {
		out = append(out, p.Summarize())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) Get(_ context.Context, name string) (profiles.Profile, error) {
	if err := s.note("get:" + name); err != nil {
		return profiles.Profile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[strings.ToLower(name)]
	if !ok {
		return profiles.Profile{}, errors.New("not found")
	}
	return p, nil
}

func (s *memStore) Create(_ context.Context, p profiles.Profile) (string, error) {
	if err := s.note("create:" + p.Name); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[strings.ToLower(p.Name)] = p
	return "ok", nil
}

func (s *memStore) Update(_ context.Context, name string, p profiles.Profile) (string, error) {
	if err := s.note("update:" + name); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[strings.ToLower(name)] = p
	return "ok", nil
}

func (s *memStore) Delete(_ context.Context, name string) (string, error) {
	if err := s.note("delete:" + name); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, strings.ToLower(name))
	return "ok", nil
}

func (s *memStore) Duplicate(_ context.Context, source, newName string) (string, error) {
	if err := s.note("duplicate:" + source + "->" + newName); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profiles[strings.ToLower(source)]
	p.Name = newName
	s.profiles[strings.ToLower(newName)] = p
	return "ok", nil
}

func (s *memStore) Template(_ context.Context, name, description string) (profiles.Profile, error) {
	if err := s.note("template"); err != nil {
		return profiles.Profile{}, err
	}
	return profiles.Template(name, description), nil
}

func (s *memStore) mutations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, c := range s.calls {
		if c != "list" && c != "template" && !strings.HasPrefix(c, "get:") {
			out = append(out, c)
		}
	}
	return out
}

// settle runs cmd and feeds back the messages this package produces,
// repeating until no further command is returned.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		switch msg.(type) {
		case profilesLoadedMsg, editorOpenedMsg, saveDoneMsg, actionDoneMsg, OverlayCloseMsg:
		default:
			return m
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		case "ctrl+u":
			msg = tea.KeyMsg{Type: tea.KeyCtrlU}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, cmd := m.Update(msg)
		m = settle(t, next.(Model), cmd)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func openModel(t *testing.T, store *memStore) Model {
	t.Helper()
	m := NewModel(context.Background(), manager.New(store))
	m = settle(t, m, m.Init())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func TestModelLoadsList(t *testing.T) {
	m := openModel(t, newMemStore("Default", "Report"))
	assert.Equal(t, ScreenList, m.Screen())
	view := m.View()
	assert.Contains(t, view, "Default")
	assert.Contains(t, view, "[default]")
	assert.Contains(t, view, "Report")
}

func TestModelRetryAfterLoadFailure(t *testing.T) {
	store := newMemStore("Report")
	store.listErr = errors.New("failed to fetch profiles")
	m := openModel(t, store)
	assert.Contains(t, m.View(), "Press r to retry")

	store.mu.Lock()
	store.listErr = nil
	store.mu.Unlock()

	m = press(t, m, "r")
	assert.NotContains(t, m.View(), "Press r to retry")
	assert.Contains(t, m.View(), "Report")
	assert.Equal(t, []string{"list", "list"}, store.calls)
}

func TestModelCreateProfile(t *testing.T) {
	store := newMemStore("Default")
	m := openModel(t, store)

	m = press(t, m, "n")
	require.Equal(t, ScreenEditor, m.Screen())
	assert.Contains(t, m.View(), "Create Profile")

	// Replace the template name on the first row.
	m = press(t, m, "enter", "ctrl+u")
	m = typeText(t, m, "Letter")
	m = press(t, m, "enter", "ctrl+s")

	assert.Equal(t, ScreenList, m.Screen())
	assert.True(t, m.Changed())
	assert.Equal(t, []string{"create:Letter"}, store.mutations())
	assert.Contains(t, m.View(), "Letter")
}

func TestModelBlankNameBlocksSave(t *testing.T) {
	store := newMemStore("Default", "Report")
	m := openModel(t, store)

	m = press(t, m, "down", "e")
	require.Equal(t, ScreenEditor, m.Screen())
	m = press(t, m, "enter", "ctrl+u", "enter", "ctrl+s")

	assert.Equal(t, ScreenEditor, m.Screen())
	assert.True(t, m.overlay.Active())
	assert.Contains(t, m.overlay.View(), "Profile name is required")
	assert.Empty(t, store.mutations())

	m = press(t, m, "enter")
	assert.False(t, m.overlay.Active())
	assert.Equal(t, ScreenEditor, m.Screen())
}

func TestModelRenameFromEditor(t *testing.T) {
	store := newMemStore("Default", "Report")
	m := openModel(t, store)

	m = press(t, m, "down", "enter")
	require.Equal(t, ScreenEditor, m.Screen())
	assert.Contains(t, m.View(), "Edit: Report")

	m = press(t, m, "enter", "ctrl+u")
	m = typeText(t, m, "Memo")
	m = press(t, m, "enter", "ctrl+s")

	assert.Equal(t, []string{"create:Memo", "delete:Report"}, store.mutations())
	assert.Equal(t, ScreenList, m.Screen())
}

func TestModelToggleAndTabs(t *testing.T) {
	store := newMemStore("Default", "Report")
	m := openModel(t, store)
	m = press(t, m, "down", "e")

	// Page Numbers tab: name, description, enabled, position.
	m = press(t, m, "tab", "tab", "tab", "tab")
	assert.Equal(t, "Page Numbers", m.editor.Tab().String())
	m = press(t, m, "down", "down", "space")
	enabled, err := m.editor.Value("page_numbers.enabled")
	require.NoError(t, err)
	assert.Equal(t, "false", enabled)

	m = press(t, m, "down", "space")
	pos, err := m.editor.Value("page_numbers.position")
	require.NoError(t, err)
	assert.Equal(t, string(profiles.FooterLeft), pos)

	m = press(t, m, "esc")
	assert.Equal(t, ScreenList, m.Screen())
	assert.Empty(t, store.mutations())
}

func TestModelBadFieldValueKeepsDraft(t *testing.T) {
	m := openModel(t, newMemStore("Default", "Report"))
	m = press(t, m, "down", "e", "down", "down", "enter", "ctrl+u")
	m = typeText(t, m, "wide")
	m = press(t, m, "enter")

	width, err := m.editor.Value("page.width")
	require.NoError(t, err)
	assert.Equal(t, "8.5", width)
	assert.Equal(t, "page.width", m.editingKey)
}

func TestModelDefaultIsProtected(t *testing.T) {
	store := newMemStore("Default", "Report")
	m := openModel(t, store)

	m = press(t, m, "e")
	assert.True(t, m.overlay.Active())
	assert.Equal(t, ScreenList, m.Screen())
	m = press(t, m, "enter", "x")
	assert.True(t, m.overlay.Active())
	assert.Equal(t, OverlayAlert, m.overlay.Type())
	assert.Equal(t, []string{"list"}, store.calls)
}

func TestModelDeleteConfirm(t *testing.T) {
	store := newMemStore("Default", "Report")
	m := openModel(t, store)

	// Cursor starts on Cancel.
	m = press(t, m, "down", "x", "enter")
	assert.Empty(t, store.mutations())

	m = press(t, m, "x", "tab", "enter")
	assert.Equal(t, []string{"delete:Report"}, store.mutations())
	assert.NotContains(t, m.View(), "Report")
	assert.Equal(t, 0, m.cursor)
}

func TestModelDuplicate(t *testing.T) {
	store := newMemStore("Default", "Report")
	m := openModel(t, store)

	m = press(t, m, "down", "d")
	require.Equal(t, OverlayTextInput, m.overlay.Type())
	m = typeText(t, m, "Report 2")
	m = press(t, m, "enter")
	assert.Equal(t, []string{"duplicate:Report->Report 2"}, store.mutations())
	assert.Contains(t, m.View(), "Report 2")

	// Empty input is a no-op.
	m = press(t, m, "d", "enter")
	assert.Len(t, store.mutations(), 1)
}

func TestModelOperationFailureAlerts(t *testing.T) {
	store := newMemStore("Default", "Report")
	store.fail["delete:Report"] = errors.New("Failed to delete profile 'Report'")
	m := openModel(t, store)

	m = press(t, m, "down", "x", "y")
	require.True(t, m.overlay.Active())
	view := m.overlay.View()
	assert.Contains(t, view, "Delete failed")
	assert.Contains(t, view, "Failed to delete profile: Failed to delete profile 'Report'")
	assert.Equal(t, ScreenList, m.Screen())
}

func TestModelQuit(t *testing.T) {
	m := openModel(t, newMemStore("Default"))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	assert.True(t, m.Quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, "", m.View())
}
