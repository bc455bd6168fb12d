package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/autotranslate/internal/dictionary"
)

func loadStore(t *testing.T, dir, name, content string) *dictionary.Store {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	s, err := dictionary.Load(path)
	require.NoError(t, err)
	return s
}

func TestResolve_ProjectWins(t *testing.T) {
	dir := t.TempDir()
	global := loadStore(t, dir, "global.json", `{"en_hr": {"translate": "prevediGlobalno"}}`)
	project := loadStore(t, dir, "project.json", `{"en_hr": {"translate": "prevediProjektno"}}`)

	r := New(global, project)
	got, ok := r.Resolve("en", "hr", "translate")
	require.True(t, ok)
	assert.Equal(t, "prevediProjektno", got)

	withoutProject := New(global, nil)
	got, ok = withoutProject.Resolve("en", "hr", "translate")
	require.True(t, ok)
	assert.Equal(t, "prevediGlobalno", got)
}

func TestResolve_FallsBackToGlobal(t *testing.T) {
	dir := t.TempDir()
	global := loadStore(t, dir, "global.json", `{"en_hr": {"hello": "bok"}}`)

	r := New(global, nil)
	got, ok := r.Resolve("en", "hr", "hello")
	require.True(t, ok)
	assert.Equal(t, "bok", got)

	project := loadStore(t, dir, "project.json", `{"en_hr": {"other": "drugo"}}`)
	r = New(global, project)
	got, ok = r.Resolve("en", "hr", "hello")
	require.True(t, ok)
	assert.Equal(t, "bok", got)
}

func TestResolve_ClosedProjectIsSkipped(t *testing.T) {
	dir := t.TempDir()
	global := loadStore(t, dir, "global.json", `{"en_hr": {"hello": "bok"}}`)
	project := dictionary.New(filepath.Join(dir, "project.json"))
	project.Insert("en_hr", "hello", "zdravo")

	r := New(global, project)
	got, ok := r.Resolve("en", "hr", "hello")
	require.True(t, ok)
	assert.Equal(t, "bok", got)
}

func TestResolve_Absent(t *testing.T) {
	dir := t.TempDir()
	r := New(loadStore(t, dir, "global.json", "{}"), loadStore(t, dir, "project.json", "{}"))

	_, ok := r.Resolve("en", "hr", "missing")
	assert.False(t, ok)
}

func TestRecord_EmptyStore(t *testing.T) {
	dir := t.TempDir()
	r := New(loadStore(t, dir, "global.json", "{}"), nil)

	r.Record("en", "hr", "translate", "prevedi")

	got, ok := r.Resolve("en", "hr", "translate")
	require.True(t, ok)
	assert.Equal(t, "prevedi", got)
	assert.False(t, r.UseProjectDict())
}

func TestRecord_WritesThroughBothTiers(t *testing.T) {
	dir := t.TempDir()
	global := loadStore(t, dir, "global.json", "{}")
	project := loadStore(t, dir, "project.json", "{}")
	r := New(global, project)

	r.Record("en", "hr", "translateGlobal", "prevediGlobalno")

	got, ok := New(global, nil).Resolve("en", "hr", "translateGlobal")
	require.True(t, ok)
	assert.Equal(t, "prevediGlobalno", got)

	got, ok = project.Lookup("en_hr", "translateGlobal")
	require.True(t, ok)
	assert.Equal(t, "prevediGlobalno", got)
}

func TestRecord_WritesClosedProjectTier(t *testing.T) {
	dir := t.TempDir()
	global := loadStore(t, dir, "global.json", "{}")
	project := dictionary.New(filepath.Join(dir, "project.json"))
	r := New(global, project)

	r.Record("en", "hr", "hello", "bok")

	assert.Equal(t, 1, project.Pending())
	assert.Equal(t, "bok", project.Snapshot()["en_hr"]["hello"])
}

func TestRecord_SuppressedInEveryTier(t *testing.T) {
	dir := t.TempDir()
	global := loadStore(t, dir, "global.json", "{}")
	project := loadStore(t, dir, "project.json", "{}")
	r := New(global, project)

	r.Record("en", "hr", "bad", dictionary.ArgumentErrorPrefix+" invalid language")

	_, ok := r.Resolve("en", "hr", "bad")
	assert.False(t, ok)
	_, ok = global.Lookup("en_hr", "bad")
	assert.False(t, ok)
	_, ok = project.Lookup("en_hr", "bad")
	assert.False(t, ok)
}

func TestSave_FlushesDirtyTiersOnce(t *testing.T) {
	dir := t.TempDir()
	global := loadStore(t, dir, "global.json", "{}")
	project := loadStore(t, dir, "project.json", "{}")
	r := New(global, project)

	r.Record("en", "hr", "hello", "bok")
	require.NoError(t, r.Save())
	assert.False(t, global.Dirty())
	assert.False(t, project.Dirty())

	for _, name := range []string{"global.json", "project.json"} {
		reloaded, err := dictionary.Load(filepath.Join(dir, name))
		require.NoError(t, err)
		got, ok := reloaded.Lookup("en_hr", "hello")
		assert.True(t, ok, name)
		assert.Equal(t, "bok", got, name)
	}

	globalInfo, err := os.Stat(global.Path())
	require.NoError(t, err)

	require.NoError(t, r.Save(), "nothing pending, nothing written")
	after, err := os.Stat(global.Path())
	require.NoError(t, err)
	assert.Equal(t, globalInfo.ModTime(), after.ModTime())
}

func TestSave_ErrorKeepsCounters(t *testing.T) {
	dir := t.TempDir()
	global := loadStore(t, dir, "global.json", "{}")
	project := dictionary.New(filepath.Join(dir, "missing", "project.json"))
	r := New(global, project)

	r.Record("en", "hr", "hello", "bok")
	require.Error(t, r.Save())

	assert.Equal(t, 1, global.Pending(), "global stays dirty until every tier is written")
	assert.Equal(t, 1, project.Pending())
}

func TestSave_WithoutProjectTier(t *testing.T) {
	dir := t.TempDir()
	global := loadStore(t, dir, "global.json", "{}")
	r := New(global, nil)

	r.Record("en", "hr", "hello", "bok")
	require.NoError(t, r.Save())

	_, err := os.Stat(filepath.Join(dir, "project.json"))
	assert.True(t, os.IsNotExist(err))
}
