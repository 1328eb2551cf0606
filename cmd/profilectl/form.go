package main

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/pdf3md/profilectl/internal/editor"
	"github.com/pdf3md/profilectl/internal/profiles"
)

// huhPrompter implements manager.Prompter with huh forms.
type huhPrompter struct{}

func (huhPrompter) Prompt(message string) (string, bool) {
	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(message).
				Value(&value),
		),
	).Run()
	if err != nil {
		return "", false
	}
	return value, true
}

func (huhPrompter) Confirm(message string) bool {
	var confirm bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&confirm),
		),
	).Run()
	return err == nil && confirm
}

// formValues holds one string per editable key while a form runs, plus the
// value each key started with so untouched fields are left alone.
type formValues struct {
	text    map[string]*string
	flags   map[string]*bool
	initial map[string]string
}

// buildEditorForm lays out the editor as one huh group per tab, with name and
// description on the first page.
func buildEditorForm(ed *editor.Editor) (*huh.Form, *formValues) {
	vals := &formValues{
		text:    map[string]*string{},
		flags:   map[string]*bool{},
		initial: map[string]string{},
	}
	draft := ed.Draft()

	name, desc := draft.Name, draft.Description
	vals.text["name"] = &name
	vals.text["description"] = &desc
	vals.initial["name"] = name
	vals.initial["description"] = desc

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Profile Name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("Profile name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&desc),
		).Title(ed.Title()),
	}

	for _, tab := range editor.AllTabs {
		var fields []huh.Field
		for _, f := range editor.FieldsFor(tab) {
			fields = append(fields, formField(f, draft, vals))
		}
		groups = append(groups, huh.NewGroup(fields...).Title(tab.String()))
	}
	return huh.NewForm(groups...), vals
}

func formField(f editor.Field, draft profiles.Profile, vals *formValues) huh.Field {
	current := f.Get(draft)
	vals.initial[f.Key] = current
	switch f.Kind {
	case editor.KindBool:
		b, _ := strconv.ParseBool(current)
		vals.flags[f.Key] = &b
		return huh.NewConfirm().
			Title(f.Label).
			Affirmative("Yes").
			Negative("No").
			Value(&b)
	case editor.KindChoice:
		v := current
		vals.text[f.Key] = &v
		options := f.Options
		if !slices.Contains(options, current) {
			// Keep values the service accepts but the menu does not list.
			options = append([]string{current}, options...)
		}
		return huh.NewSelect[string]().
			Title(f.Label).
			Options(huh.NewOptions(options...)...).
			Value(&v)
	default:
		v := current
		vals.text[f.Key] = &v
		return huh.NewInput().
			Title(f.Label).
			Value(&v).
			Validate(func(s string) error {
				if s == current {
					return nil
				}
				// Parse against a scratch editor so the real draft only
				// changes once the whole form is accepted.
				return editor.New(draft, "").Set(f.Key, s)
			})
	}
}

// apply writes the fields the user changed back into ed.
func (v *formValues) apply(ed *editor.Editor) error {
	for key, val := range v.text {
		if *val == v.initial[key] {
			continue
		}
		if err := ed.Set(key, *val); err != nil {
			return err
		}
	}
	for key, val := range v.flags {
		s := strconv.FormatBool(*val)
		if s == v.initial[key] {
			continue
		}
		if err := ed.Set(key, s); err != nil {
			return err
		}
	}
	return nil
}

// runEditorForm shows the editor form and applies the result.
func runEditorForm(ed *editor.Editor) error {
	form, vals := buildEditorForm(ed)
	if err := form.Run(); err != nil {
		return err
	}
	return vals.apply(ed)
}

// selectProfile asks the user to pick one of names.
func selectProfile(names []string, current string) (string, error) {
	options := make([]huh.Option[string], 0, len(names))
	for _, name := range names {
		label := name
		if profiles.SameName(name, current) {
			label += " (selected)"
		}
		options = append(options, huh.NewOption(label, name))
	}

	choice := current
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Formatting profile").
				Options(options...).
				Value(&choice),
		),
	).Run()
	if err != nil {
		return "", err
	}
	return choice, nil
}

// describeErr turns a manager error into the line shown to the user.
func describeErr(err error) error {
	if errors.Is(err, profiles.ErrNameRequired) {
		return errors.New("Profile name is required")
	}
	return err
}
