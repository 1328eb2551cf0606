package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdf3md/profilectl/internal/client"
	"github.com/pdf3md/profilectl/internal/manager"
	"github.com/pdf3md/profilectl/internal/profiles"
	"github.com/pdf3md/profilectl/internal/server"
	"github.com/pdf3md/profilectl/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "profiles"), nil)
	require.NoError(t, err)
	ts := httptest.NewServer(server.New(s, nil))
	t.Cleanup(ts.Close)
	return ts, s
}

func doJSON(t *testing.T, method, url, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	out := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestListIncludesDefault(t *testing.T) {
	ts, _ := newService(t)
	status, body := doJSON(t, http.MethodGet, ts.URL+"/api/profiles", "")
	assert.Equal(t, http.StatusOK, status)
	list, ok := body["profiles"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "Default", list[0].(map[string]any)["name"])
}

func TestGetMissing(t *testing.T) {
	ts, _ := newService(t)
	status, body := doJSON(t, http.MethodGet, ts.URL+"/api/profiles/ghost", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Profile 'ghost' not found", body["error"])
}

func TestTemplateRoute(t *testing.T) {
	ts, _ := newService(t)
	status, body := doJSON(t, http.MethodGet, ts.URL+"/api/profiles/template?name=Draft", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Draft", body["name"])
	assert.Equal(t, "Custom profile: Draft", body["description"])

	_, body = doJSON(t, http.MethodGet, ts.URL+"/api/profiles/template", "")
	assert.Equal(t, "New Profile", body["name"])

	_, body = doJSON(t, http.MethodGet, ts.URL+"/api/profiles/template?name=", "")
	assert.Equal(t, "", body["name"])
	assert.Equal(t, "Custom profile: ", body["description"])
}

func TestCreateValidation(t *testing.T) {
	ts, _ := newService(t)

	status, body := doJSON(t, http.MethodPost, ts.URL+"/api/profiles", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No profile data provided", body["error"])

	status, body = doJSON(t, http.MethodPost, ts.URL+"/api/profiles", `{"name":"Bad","tables":{"min_col_width":-1}}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "Invalid profile: ")

	status, body = doJSON(t, http.MethodPost, ts.URL+"/api/profiles", `{"name":"Good"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Profile 'Good' saved successfully", body["message"])
}

func TestUpdateForcesPathName(t *testing.T) {
	ts, st := newService(t)
	require.NoError(t, st.Save(profiles.Template("Report", "")))

	status, body := doJSON(t, http.MethodPut, ts.URL+"/api/profiles/Report", `{"name":"Other","description":"changed"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Profile 'Report' updated successfully", body["message"])

	p, err := st.Load("Report")
	require.NoError(t, err)
	assert.Equal(t, "Report", p.Name)
	assert.Equal(t, "changed", p.Description)
	_, err = st.Load("Other")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteDefaultRefused(t *testing.T) {
	ts, _ := newService(t)
	status, body := doJSON(t, http.MethodDelete, ts.URL+"/api/profiles/Default", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Failed to delete profile 'Default'", body["error"])
}

func TestDuplicateRequiresName(t *testing.T) {
	ts, _ := newService(t)
	status, body := doJSON(t, http.MethodPost, ts.URL+"/api/profiles/Default/duplicate", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "New profile name required", body["error"])
}

func TestUnknownRoute(t *testing.T) {
	ts, _ := newService(t)
	status, body := doJSON(t, http.MethodGet, ts.URL+"/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found", body["error"])
}

func TestClientRoundTrip(t *testing.T) {
	ts, _ := newService(t)
	c := client.New(ts.URL)
	ctx := context.Background()

	p := profiles.Template("My Report/v2", "slashes survive encoding")
	p.Page.Width = 6
	_, err := c.Create(ctx, p)
	require.NoError(t, err)

	got, err := c.Get(ctx, "My Report/v2")
	require.NoError(t, err)
	assert.Equal(t, "My Report/v2", got.Name)
	assert.Equal(t, 6.0, got.Page.Width)

	msg, err := c.Duplicate(ctx, "My Report/v2", "Copy")
	require.NoError(t, err)
	assert.Equal(t, "Profile duplicated as 'Copy'", msg)

	_, err = c.Delete(ctx, "default")
	require.Error(t, err)
	assert.Equal(t, "Failed to delete profile 'default'", err.Error())

	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestManagerRenameAgainstService(t *testing.T) {
	ts, st := newService(t)
	require.NoError(t, st.Save(profiles.Template("Report", "")))

	changed := 0
	m := manager.New(client.New(ts.URL), manager.WithOnChanged(func() { changed++ }))
	ctx := context.Background()
	require.NoError(t, m.Open(ctx))
	assert.Len(t, m.Profiles(), 2)

	ed, err := m.BeginEdit(ctx, "Report")
	require.NoError(t, err)
	require.NoError(t, ed.SetName("Annual Report"))
	require.NoError(t, ed.Set("page.width", "7"))
	require.NoError(t, m.Save(ctx))

	var names []string
	for _, s := range m.Profiles() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Annual Report", "Default"}, names)
	assert.Equal(t, 1, changed)

	p, err := st.Load("Annual Report")
	require.NoError(t, err)
	assert.Equal(t, 7.0, p.Page.Width)

	ed, err = m.BeginCreate(ctx)
	require.NoError(t, err)
	assert.Equal(t, manager.NewProfileDescription, ed.Draft().Description)
	require.NoError(t, ed.SetName("Fresh"))
	require.NoError(t, m.Save(ctx))
	assert.Len(t, m.Profiles(), 3)
}
