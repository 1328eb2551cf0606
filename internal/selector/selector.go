// Package selector holds the profile choice shown next to a conversion: it
// loads the list, auto-selects a sensible profile and can be disabled while
// a conversion runs.
package selector

import (
	"context"
	"errors"
	"sync"

	"github.com/pdf3md/profilectl/internal/manager"
	"github.com/pdf3md/profilectl/internal/profiles"
)

// ErrDisabled is returned by Select while the selector is disabled.
var ErrDisabled = errors.New("profile selection is disabled")

// Lister is the part of the profile service the selector reads.
type Lister interface {
	List(ctx context.Context) ([]profiles.Summary, error)
}

// Selector tracks the selected profile name.
type Selector struct {
	lister   Lister
	onChange func(name string)

	mu       sync.Mutex
	list     []profiles.Summary
	selected string
	disabled bool
	loadErr  error
}

// New creates a selector with an optional initial selection. onChange, when
// non-nil, is called whenever the selection changes.
func New(lister Lister, selected string, onChange func(name string)) *Selector {
	return &Selector{lister: lister, selected: selected, onChange: onChange}
}

// PickDefault returns the protected default profile if present, otherwise
// the first entry. It returns "" for an empty list.
func PickDefault(list []profiles.Summary) string {
	for _, s := range list {
		if profiles.IsProtected(s.Name) {
			return s.Name
		}
	}
	if len(list) > 0 {
		return list[0].Name
	}
	return ""
}

// Load fetches the list. With nothing selected and a non-empty list it
// selects PickDefault and reports the choice.
func (s *Selector) Load(ctx context.Context) error {
	list, err := s.lister.List(ctx)

	s.mu.Lock()
	if err != nil {
		s.loadErr = &manager.LoadError{Err: err}
		s.mu.Unlock()
		return s.loadErr
	}
	s.list = list
	s.loadErr = nil
	var picked string
	if s.selected == "" {
		picked = PickDefault(list)
		s.selected = picked
	}
	s.mu.Unlock()

	if picked != "" && s.onChange != nil {
		s.onChange(picked)
	}
	return nil
}

// Retry re-issues the list load.
func (s *Selector) Retry(ctx context.Context) error {
	return s.Load(ctx)
}

// Select changes the selection to name.
func (s *Selector) Select(name string) error {
	s.mu.Lock()
	if s.disabled {
		s.mu.Unlock()
		return ErrDisabled
	}
	changed := s.selected != name
	s.selected = name
	s.mu.Unlock()

	if changed && s.onChange != nil {
		s.onChange(name)
	}
	return nil
}

// Selected returns the current selection.
func (s *Selector) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Names returns every loaded profile name in list order.
func (s *Selector) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.list))
	for i, p := range s.list {
		out[i] = p.Name
	}
	return out
}

// Profiles returns a copy of the loaded list.
func (s *Selector) Profiles() []profiles.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]profiles.Summary, len(s.list))
	copy(out, s.list)
	return out
}

// LoadErr returns the last load failure, if any.
func (s *Selector) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// SetDisabled enables or disables every control.
func (s *Selector) SetDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = disabled
}

// Disabled reports whether the selector is disabled.
func (s *Selector) Disabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled
}

// CanManage reports whether the manage action is available.
func (s *Selector) CanManage() bool {
	return !s.Disabled()
}
