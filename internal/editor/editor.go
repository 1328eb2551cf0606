// Package editor holds the in-memory draft behind the profile editor form.
package editor

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pdf3md/profilectl/internal/profiles"
)

// ErrSaving is returned for edits attempted while a save is in flight.
var ErrSaving = errors.New("save in progress")

// ValidationError is a local rejection that never reaches the service.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// SaveFunc persists a draft. It is supplied by whoever opened the editor.
type SaveFunc func(ctx context.Context, draft profiles.Profile) error

// Editor holds a draft copy of one profile.
type Editor struct {
	original     profiles.Profile
	draft        profiles.Profile
	originalName string
	tab          Tab
	saving       bool
}

// New opens an editor on p. originalName is the stored name of the profile
// being edited, or "" when p is a fresh template.
func New(p profiles.Profile, originalName string) *Editor {
	return &Editor{
		original:     p.Clone(),
		draft:        p.Clone(),
		originalName: originalName,
		tab:          TabPage,
	}
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() profiles.Profile { return e.draft.Clone() }

// OriginalName returns the name the profile was loaded under, if any.
func (e *Editor) OriginalName() string { return e.originalName }

// IsNew reports whether the editor was opened on a template.
func (e *Editor) IsNew() bool { return e.originalName == "" }

// Title is the heading shown above the form.
func (e *Editor) Title() string {
	if e.IsNew() {
		return "Create Profile"
	}
	return "Edit: " + e.originalName
}

// Dirty reports whether the draft differs from what the editor was opened on.
func (e *Editor) Dirty() bool {
	return !reflect.DeepEqual(e.original, e.draft)
}

// Saving reports whether a save is in flight.
func (e *Editor) Saving() bool { return e.saving }

// Tab returns the active tab.
func (e *Editor) Tab() Tab { return e.tab }

// SetTab switches to tab.
func (e *Editor) SetTab(tab Tab) {
	for _, t := range AllTabs {
		if t == tab {
			e.tab = tab
			return
		}
	}
}

// NextTab advances to the next tab, wrapping around.
func (e *Editor) NextTab() {
	e.tab = AllTabs[(int(e.tab)+1)%len(AllTabs)]
}

// PrevTab moves to the previous tab, wrapping around.
func (e *Editor) PrevTab() {
	e.tab = AllTabs[(int(e.tab)+len(AllTabs)-1)%len(AllTabs)]
}

// SetName replaces the draft's name.
func (e *Editor) SetName(name string) error {
	if e.saving {
		return ErrSaving
	}
	e.draft.Name = name
	return nil
}

// SetDescription replaces the draft's description.
func (e *Editor) SetDescription(desc string) error {
	if e.saving {
		return ErrSaving
	}
	e.draft.Description = desc
	return nil
}

// Set parses value and stores it in the leaf named key (see Fields). The
// draft is left untouched when value does not parse.
func (e *Editor) Set(key, value string) error {
	if e.saving {
		return ErrSaving
	}
	switch key {
	case "name":
		return e.SetName(value)
	case "description":
		return e.SetDescription(value)
	}
	f, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("unknown field %q", key)
	}
	next := e.draft
	if err := f.apply(&next, value); err != nil {
		return err
	}
	e.draft = next
	return nil
}

// Value returns the display value of key in the draft.
func (e *Editor) Value(key string) (string, error) {
	switch key {
	case "name":
		return e.draft.Name, nil
	case "description":
		return e.draft.Description, nil
	}
	f, ok := Lookup(key)
	if !ok {
		return "", fmt.Errorf("unknown field %q", key)
	}
	return f.Get(e.draft), nil
}

// Toggle flips a boolean field or advances a choice field to its next option.
func (e *Editor) Toggle(key string) error {
	f, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("unknown field %q", key)
	}
	cur := f.Get(e.draft)
	switch f.Kind {
	case KindBool:
		b, _ := strconv.ParseBool(cur)
		return e.Set(key, strconv.FormatBool(!b))
	case KindChoice:
		next := f.Options[0]
		for i, opt := range f.Options {
			if opt == cur {
				next = f.Options[(i+1)%len(f.Options)]
				break
			}
		}
		return e.Set(key, next)
	default:
		return fmt.Errorf("%s cannot be toggled", key)
	}
}

// Apply sets several fields from key=value assignments, stopping at the first error.
func (e *Editor) Apply(assignments []string) error {
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %q: expected key=value", a)
		}
		if err := e.Set(strings.TrimSpace(key), value); err != nil {
			return err
		}
	}
	return nil
}

// BeginSave validates the draft and marks the editor as saving. The caller
// must call EndSave once the save settles, whatever the outcome.
func (e *Editor) BeginSave() (profiles.Profile, error) {
	if e.saving {
		return profiles.Profile{}, ErrSaving
	}
	if strings.TrimSpace(e.draft.Name) == "" {
		return profiles.Profile{}, &ValidationError{Field: "name", Err: profiles.ErrNameRequired}
	}
	e.saving = true
	return e.draft.Clone(), nil
}

// EndSave re-enables editing after a save settles.
func (e *Editor) EndSave() {
	e.saving = false
}

// Save validates the draft and hands it to fn. Interaction is disabled for
// the duration of fn and re-enabled afterwards.
func (e *Editor) Save(ctx context.Context, fn SaveFunc) error {
	draft, err := e.BeginSave()
	if err != nil {
		return err
	}
	defer e.EndSave()
	return fn(ctx, draft)
}
