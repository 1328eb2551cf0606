package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdf3md/profilectl/internal/profiles"
	"github.com/pdf3md/profilectl/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "profiles"), nil)
	require.NoError(t, err)
	return s
}

func TestOpenCreatesDefault(t *testing.T) {
	s := openStore(t)
	_, err := os.Stat(filepath.Join(s.Dir(), "default.json"))
	require.NoError(t, err)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Default", list[0].Name)
	assert.Equal(t, profiles.SchemaVersion, list[0].Version)
}

func TestOpenKeepsExistingDefault(t *testing.T) {
	dir := t.TempDir()
	custom := profiles.Default()
	custom.Description = "tuned"
	s, err := store.Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(custom))

	s, err = store.Open(dir, nil)
	require.NoError(t, err)
	p, err := s.Load("default")
	require.NoError(t, err)
	assert.Equal(t, "tuned", p.Description)
}

func TestSaveLoadAndSort(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save(profiles.Template("Zeta", "")))
	require.NoError(t, s.Save(profiles.Template("Annual Report", "yearly")))

	_, err := os.Stat(filepath.Join(s.Dir(), "annual_report.json"))
	require.NoError(t, err)

	list, err := s.List()
	require.NoError(t, err)
	var names []string
	for _, p := range list {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Annual Report", "Default", "Zeta"}, names)

	p, err := s.Load("annual report")
	require.NoError(t, err)
	assert.Equal(t, "Annual Report", p.Name)
	assert.Equal(t, "yearly", p.Description)
}

func TestLoadMergesDefaults(t *testing.T) {
	s := openStore(t)
	raw := `{"name": "Slim", "page": {"width": 6}}`
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "slim.json"), []byte(raw), 0644))

	p, err := s.Load("Slim")
	require.NoError(t, err)
	assert.Equal(t, 6.0, p.Page.Width)
	assert.Equal(t, profiles.Default().Page.Height, p.Page.Height)
	assert.Equal(t, profiles.Default().Fonts.Body.Name, p.Fonts.Body.Name)
}

func TestListSkipsUnreadable(t *testing.T) {
	s := openStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "broken.json"), []byte("{"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0644))

	list, err := s.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSaveRejectsInvalid(t *testing.T) {
	s := openStore(t)
	p := profiles.Template("Bad", "")
	p.Tables.MinColWidth = 0
	assert.Error(t, s.Save(p))

	p = profiles.Template("  ", "")
	assert.ErrorIs(t, s.Save(p), profiles.ErrNameRequired)
}

func TestDelete(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save(profiles.Template("Temp", "")))

	require.NoError(t, s.Delete("temp"))
	_, err := s.Load("Temp")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.Delete("Temp"), store.ErrNotFound)
	assert.ErrorIs(t, s.Delete("DEFAULT"), store.ErrProtected)
}

func TestDuplicate(t *testing.T) {
	s := openStore(t)
	src := profiles.Template("Report", "mine")
	src.Page.Width = 7
	require.NoError(t, s.Save(src))

	require.NoError(t, s.Duplicate("Report", "Report Copy"))
	p, err := s.Load("Report Copy")
	require.NoError(t, err)
	assert.Equal(t, "Report Copy", p.Name)
	assert.Equal(t, "Copy of Report", p.Description)
	assert.Equal(t, 7.0, p.Page.Width)

	assert.ErrorIs(t, s.Duplicate("ghost", "x"), store.ErrNotFound)
}
