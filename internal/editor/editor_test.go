package editor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pdf3md/profilectl/internal/editor"
	"github.com/pdf3md/profilectl/internal/profiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEditor(t *testing.T) {
	t.Run("create flow", func(t *testing.T) {
		e := editor.New(profiles.Template("New Profile", "Custom formatting profile"), "")
		assert.True(t, e.IsNew())
		assert.Equal(t, "Create Profile", e.Title())
		assert.Equal(t, editor.TabPage, e.Tab())
		assert.False(t, e.Dirty())
	})

	t.Run("edit flow", func(t *testing.T) {
		e := editor.New(profiles.Template("Report", ""), "Report")
		assert.False(t, e.IsNew())
		assert.Equal(t, "Edit: Report", e.Title())
		assert.Equal(t, "Report", e.OriginalName())
	})
}

func TestSetReplacesOnlyTouchedLeaf(t *testing.T) {
	orig := profiles.Template("Report", "")
	e := editor.New(orig, "Report")

	require.NoError(t, e.Set("page.width", "7.25"))
	d := e.Draft()
	assert.Equal(t, 7.25, d.Page.Width)

	// Siblings are preserved.
	want := orig.Page
	want.Width = 7.25
	assert.Equal(t, want, d.Page)
	assert.Equal(t, orig.Fonts, d.Fonts)
	assert.Equal(t, orig.Tables, d.Tables)
	assert.True(t, e.Dirty())

	// The profile handed to New is never mutated.
	assert.Equal(t, 8.5, orig.Page.Width)
}

func TestSetFontBoldDoesNotAliasOriginal(t *testing.T) {
	orig := profiles.Default()
	e := editor.New(orig, "Default")
	require.NoError(t, e.Set("fonts.table_header.bold", "false"))
	assert.False(t, *e.Draft().Fonts.TableHeader.Bold)
	assert.True(t, *orig.Fonts.TableHeader.Bold)
}

func TestSetRejectsBadValues(t *testing.T) {
	e := editor.New(profiles.Default(), "Default")
	tests := []struct {
		key, value string
	}{
		{"page.width", "wide"},
		{"fonts.body.size", "10.5"},
		{"fonts.body.name", "Comic Sans"},
		{"tables.border_style", "wavy"},
		{"page_numbers.position", "header_left"},
		{"headings.bold", "maybe"},
		{"nope.field", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Error(t, e.Set(tt.key, tt.value))
		})
	}
	assert.False(t, e.Dirty())
}

func TestSetEveryField(t *testing.T) {
	e := editor.New(profiles.Default(), "")
	values := map[editor.Kind]string{
		editor.KindNumber:  "1.5",
		editor.KindInteger: "12",
		editor.KindBool:    "false",
		editor.KindText:    "#ff0000",
	}
	for _, f := range editor.Fields() {
		v := values[f.Kind]
		if f.Kind == editor.KindChoice {
			v = f.Options[len(f.Options)-1]
		}
		require.NoError(t, e.Set(f.Key, v), f.Key)
	}
	d := e.Draft()
	assert.Equal(t, 1.5, d.Page.Width)
	assert.Equal(t, 12.0, d.Headings.H6Size)
	assert.Equal(t, 12, d.Tables.BorderWidth)
	assert.Equal(t, "ff0000", d.Tables.BorderColor)
	assert.Equal(t, "dashed", d.Tables.BorderStyle)
	assert.Equal(t, profiles.FooterRight, d.PageNumbers.Position)
	assert.False(t, d.PageNumbers.Enabled)
}

func TestFieldsCoverEveryTab(t *testing.T) {
	for _, tab := range editor.AllTabs {
		assert.NotEmpty(t, editor.FieldsFor(tab), tab.String())
	}
	assert.Len(t, editor.FieldsFor(editor.TabHeadings), 7)
}

func TestTabs(t *testing.T) {
	e := editor.New(profiles.Default(), "")
	e.PrevTab()
	assert.Equal(t, editor.TabPageNumbers, e.Tab())
	e.NextTab()
	assert.Equal(t, editor.TabPage, e.Tab())
	e.SetTab(editor.TabTables)
	assert.Equal(t, "Tables", e.Tab().String())
	e.SetTab(editor.Tab(42))
	assert.Equal(t, editor.TabTables, e.Tab())
}

func TestToggle(t *testing.T) {
	e := editor.New(profiles.Default(), "")
	require.NoError(t, e.Toggle("headings.bold"))
	v, err := e.Value("headings.bold")
	require.NoError(t, err)
	assert.Equal(t, "false", v)

	require.NoError(t, e.Toggle("page_numbers.position"))
	v, _ = e.Value("page_numbers.position")
	assert.Equal(t, "footer_left", v)

	assert.Error(t, e.Toggle("page.width"))
}

func TestApply(t *testing.T) {
	e := editor.New(profiles.Default(), "")
	require.NoError(t, e.Apply([]string{"name=Narrow", "page.width=6", "description=Tight margins"}))
	d := e.Draft()
	assert.Equal(t, "Narrow", d.Name)
	assert.Equal(t, "Tight margins", d.Description)
	assert.Equal(t, 6.0, d.Page.Width)

	assert.Error(t, e.Apply([]string{"page.width"}))
}

func TestSaveRejectsBlankName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		e := editor.New(profiles.Default(), "")
		require.NoError(t, e.SetName(name))

		called := false
		err := e.Save(context.Background(), func(context.Context, profiles.Profile) error {
			called = true
			return nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, profiles.ErrNameRequired)
		var vErr *editor.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.False(t, called)
		assert.False(t, e.Saving())
	}
}

func TestSaveDisablesEditingUntilSettled(t *testing.T) {
	e := editor.New(profiles.Template("Report", ""), "")

	var seen profiles.Profile
	err := e.Save(context.Background(), func(_ context.Context, draft profiles.Profile) error {
		seen = draft
		assert.True(t, e.Saving())
		assert.ErrorIs(t, e.Set("page.width", "5"), editor.ErrSaving)
		assert.ErrorIs(t, e.SetName("x"), editor.ErrSaving)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Report", seen.Name)
	assert.False(t, e.Saving())
}

func TestSaveReenablesAfterFailure(t *testing.T) {
	e := editor.New(profiles.Template("Report", ""), "")
	boom := errors.New("boom")
	err := e.Save(context.Background(), func(context.Context, profiles.Profile) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, e.Saving())
	assert.NoError(t, e.Set("page.width", "5"))
}

func TestBeginSaveTwice(t *testing.T) {
	e := editor.New(profiles.Template("Report", ""), "")
	_, err := e.BeginSave()
	require.NoError(t, err)
	_, err = e.BeginSave()
	assert.ErrorIs(t, err, editor.ErrSaving)
	e.EndSave()
	_, err = e.BeginSave()
	assert.NoError(t, err)
}
