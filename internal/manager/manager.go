// Package manager drives the list / create / edit / duplicate / delete flow
// over the profile service.
package manager

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pdf3md/profilectl/internal/editor"
	"github.com/pdf3md/profilectl/internal/profiles"
	"go.uber.org/zap"
)

// Store is the subset of the profile service the manager needs.
// *client.Client satisfies it.
type Store interface {
	List(ctx context.Context) ([]profiles.Summary, error)
	Get(ctx context.Context, name string) (profiles.Profile, error)
	Create(ctx context.Context, p profiles.Profile) (string, error)
	Update(ctx context.Context, name string, p profiles.Profile) (string, error)
	Delete(ctx context.Context, name string) (string, error)
	Duplicate(ctx context.Context, sourceName, newName string) (string, error)
	Template(ctx context.Context, name, description string) (profiles.Profile, error)
}

// Prompter asks the user for input. Prompt returns ok=false when cancelled.
type Prompter interface {
	Prompt(message string) (value string, ok bool)
	Confirm(message string) bool
}

// Mode is the manager's current view.
type Mode int

const (
	ModeClosed Mode = iota
	ModeList
	ModeEditing
	ModeCreating
)

func (m Mode) String() string {
	switch m {
	case ModeClosed:
		return "closed"
	case ModeList:
		return "list"
	case ModeEditing:
		return "editing"
	case ModeCreating:
		return "creating"
	default:
		return "unknown"
	}
}

// Template defaults for the create flow.
const (
	NewProfileName        = "New Profile"
	NewProfileDescription = "Custom formatting profile"
)

// Manager is the state machine behind the manage screen. Its busy set and
// list are owned by the instance; methods are safe for concurrent use so
// actions on different profiles may overlap.
type Manager struct {
	store    Store
	prompter Prompter
	logger   *zap.Logger

	// OnChanged, when set, is called after every successful mutation.
	OnChanged func()

	mu       sync.Mutex
	mode     Mode
	list     []profiles.Summary
	loading  bool
	loadErr  error
	editor   *editor.Editor
	busy     map[string]bool
	creating bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithPrompter sets the prompter used by Duplicate and Delete.
func WithPrompter(p Prompter) Option {
	return func(m *Manager) { m.prompter = p }
}

// WithLogger sets the manager's logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithOnChanged sets the callback fired after successful mutations.
func WithOnChanged(fn func()) Option {
	return func(m *Manager) { m.OnChanged = fn }
}

// New creates a closed Manager over store.
func New(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: zap.NewNop(),
		busy:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mode returns the current view.
func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Profiles returns a copy of the last loaded list.
func (m *Manager) Profiles() []profiles.Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]profiles.Summary, len(m.list))
	copy(out, m.list)
	return out
}

// LoadErr returns the error from the last list load, if it failed.
func (m *Manager) LoadErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

// Loading reports whether a list load is in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Creating reports whether a template fetch is in flight.
func (m *Manager) Creating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creating
}

// Busy reports whether an action is in flight for name.
func (m *Manager) Busy(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy[busyKey(name)]
}

// Editor returns the open editor, or nil in list mode.
func (m *Manager) Editor() *editor.Editor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editor
}

// Open shows the list and loads it.
func (m *Manager) Open(ctx context.Context) error {
	m.mu.Lock()
	m.mode = ModeList
	m.editor = nil
	m.mu.Unlock()
	return m.Load(ctx)
}

// Close discards all transient state.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = ModeClosed
	m.list = nil
	m.loadErr = nil
	m.editor = nil
}

// Load fetches the profile list. On failure the previous list is kept and
// LoadErr reports a *LoadError until the next successful load.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	list, err := m.store.List(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		m.logger.Warn("loading profiles failed", zap.Error(err))
		m.loadErr = &LoadError{Err: err}
		return m.loadErr
	}
	m.list = list
	m.loadErr = nil
	return nil
}

// Retry re-issues the list load.
func (m *Manager) Retry(ctx context.Context) error {
	return m.Load(ctx)
}

// BeginCreate fetches a template and opens the editor with no original name.
func (m *Manager) BeginCreate(ctx context.Context) (*editor.Editor, error) {
	m.mu.Lock()
	if m.mode == ModeClosed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	if m.creating {
		m.mu.Unlock()
		return nil, ErrBusy
	}
	m.creating = true
	m.mu.Unlock()

	tmpl, err := m.store.Template(ctx, NewProfileName, NewProfileDescription)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.creating = false
	if err != nil {
		return nil, &LoadError{Name: NewProfileName, Err: err}
	}
	m.editor = editor.New(tmpl, "")
	m.mode = ModeCreating
	return m.editor, nil
}

// BeginEdit fetches name and opens the editor remembering name as the original.
func (m *Manager) BeginEdit(ctx context.Context, name string) (*editor.Editor, error) {
	if profiles.IsProtected(name) {
		return nil, ErrProtected
	}
	if err := m.acquire(name); err != nil {
		return nil, err
	}
	defer m.release(name)

	p, err := m.store.Get(ctx, name)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.editor = editor.New(p, name)
	m.mode = ModeEditing
	return m.editor, nil
}

// CancelEdit closes the editor without saving.
func (m *Manager) CancelEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editor = nil
	if m.mode != ModeClosed {
		m.mode = ModeList
	}
}

// SaveDraft persists draft for the open editor. Without an original name it
// creates; with an unchanged (case-insensitive) name it updates; with a new
// name it creates the new profile and then deletes the old one. If that
// delete fails both profiles remain on the service. Every name the save
// touches is held busy until it settles.
//
// On success the list is reloaded, OnChanged fires and the manager returns
// to list mode. On failure the editor stays open.
func (m *Manager) SaveDraft(ctx context.Context, draft profiles.Profile) error {
	m.mu.Lock()
	ed := m.editor
	m.mu.Unlock()
	original := ""
	if ed != nil {
		original = ed.OriginalName()
	}

	targets := []string{strings.TrimSpace(draft.Name)}
	if original != "" && !profiles.SameName(original, draft.Name) {
		targets = append(targets, original)
	} else if original != "" {
		targets[0] = original
	}
	for i, name := range targets {
		if err := m.acquire(name); err != nil {
			for _, held := range targets[:i] {
				m.release(held)
			}
			return err
		}
	}
	defer func() {
		for _, name := range targets {
			m.release(name)
		}
	}()

	if err := m.persist(ctx, original, draft); err != nil {
		return err
	}

	m.mu.Lock()
	if m.editor == ed {
		m.editor = nil
		m.mode = ModeList
	}
	m.mu.Unlock()

	m.reloadAfterMutation(ctx)
	return nil
}

// Save runs the open editor's save, routing the draft through SaveDraft.
func (m *Manager) Save(ctx context.Context) error {
	ed := m.Editor()
	if ed == nil {
		return fmt.Errorf("no profile is being edited")
	}
	return ed.Save(ctx, m.SaveDraft)
}

func (m *Manager) persist(ctx context.Context, original string, draft profiles.Profile) error {
	newName := strings.TrimSpace(draft.Name)
	switch {
	case original == "":
		if _, err := m.store.Create(ctx, draft); err != nil {
			return &OperationError{Action: "save", Name: newName, Err: err}
		}
		m.logger.Debug("created profile", zap.String("name", newName))

	case profiles.SameName(newName, original):
		if _, err := m.store.Update(ctx, original, draft); err != nil {
			return &OperationError{Action: "save", Name: original, Err: err}
		}
		m.logger.Debug("updated profile", zap.String("name", original))

	default:
		if _, err := m.store.Create(ctx, draft); err != nil {
			return &OperationError{Action: "save", Name: newName, Err: err}
		}
		if _, err := m.store.Delete(ctx, original); err != nil {
			m.logger.Warn("renamed profile but old copy remains",
				zap.String("old", original),
				zap.String("new", newName),
				zap.Error(err),
			)
			return &OperationError{Action: "save", Name: original, Err: err}
		}
		m.logger.Debug("renamed profile", zap.String("old", original), zap.String("new", newName))
	}
	return nil
}

// Duplicate prompts for a name and copies source under it. An empty or
// cancelled prompt is a no-op.
func (m *Manager) Duplicate(ctx context.Context, source string) error {
	if m.prompter == nil {
		return fmt.Errorf("duplicate needs a prompter")
	}
	newName, ok := m.prompter.Prompt(fmt.Sprintf("Enter name for the copy of %q:", source))
	if !ok {
		return nil
	}
	return m.DuplicateAs(ctx, source, newName)
}

// DuplicateAs copies source under newName without prompting.
func (m *Manager) DuplicateAs(ctx context.Context, source, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil
	}
	if err := m.acquire(source); err != nil {
		return err
	}
	defer m.release(source)

	if _, err := m.store.Duplicate(ctx, source, newName); err != nil {
		return &OperationError{Action: "duplicate", Name: source, Err: err}
	}
	m.reloadAfterMutation(ctx)
	return nil
}

// CanDelete reports whether name may be deleted at all.
func (m *Manager) CanDelete(name string) error {
	if profiles.IsProtected(name) {
		return ErrProtected
	}
	return nil
}

// Delete asks for confirmation and removes name. The default profile is
// rejected before any prompt or request.
func (m *Manager) Delete(ctx context.Context, name string) error {
	if err := m.CanDelete(name); err != nil {
		return err
	}
	if m.prompter == nil {
		return fmt.Errorf("delete needs a prompter")
	}
	if !m.prompter.Confirm(fmt.Sprintf("Are you sure you want to delete %q?", name)) {
		return nil
	}
	return m.DeleteConfirmed(ctx, name)
}

// DeleteConfirmed removes name without prompting.
func (m *Manager) DeleteConfirmed(ctx context.Context, name string) error {
	if err := m.CanDelete(name); err != nil {
		return err
	}
	if err := m.acquire(name); err != nil {
		return err
	}
	defer m.release(name)

	if _, err := m.store.Delete(ctx, name); err != nil {
		return &OperationError{Action: "delete", Name: name, Err: err}
	}
	m.reloadAfterMutation(ctx)
	return nil
}

// reloadAfterMutation refreshes the list and notifies the parent. A failed
// reload is recorded in LoadErr and does not fail the mutation.
func (m *Manager) reloadAfterMutation(ctx context.Context) {
	_ = m.Load(ctx)
	if m.OnChanged != nil {
		m.OnChanged()
	}
}

func busyKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (m *Manager) acquire(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := busyKey(name)
	if m.busy[key] {
		return ErrBusy
	}
	m.busy[key] = true
	return nil
}

func (m *Manager) release(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.busy, busyKey(name))
}
