package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/autotranslate/internal/config"
	"codeberg.org/snonux/autotranslate/internal/dictionary"
)

// Workspace is a temporary configuration directory with an optional project
type Workspace struct {
	Dir        string
	ProjectDir string
	Options    config.Options
}

// CreateWorkspace creates a config directory and a project directory and
// writes the given configuration file content. The returned options point
// at both directories.
func CreateWorkspace(t *testing.T, configJSON string) *Workspace {
	t.Helper()

	dir := t.TempDir()
	project := filepath.Join(dir, "project")
	require.NoError(t, os.MkdirAll(project, 0755))

	if configJSON != "" {
		CreateTestFile(t, filepath.Join(dir, config.ConfigFileName), []byte(configJSON))
	}

	return &Workspace{
		Dir:        dir,
		ProjectDir: project,
		Options: config.Options{
			PathToGlobalConfig: dir,
			PathToProject:      project,
		},
	}
}

// GlobalDictFile returns the default global dictionary path of the workspace
func (w *Workspace) GlobalDictFile() string {
	return filepath.Join(w.Dir, config.GlobalDictFileName)
}

// ProjectDictFile returns the default project dictionary path of the workspace
func (w *Workspace) ProjectDictFile() string {
	return filepath.Join(w.ProjectDir, config.ProjectDictFile)
}

// CreateTestFile writes content to path, creating parent directories
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
}

// WriteDictionary writes entries as a dictionary file
func WriteDictionary(t *testing.T, path string, entries dictionary.Entries) {
	t.Helper()

	data, err := json.Marshal(entries)
	require.NoError(t, err)
	CreateTestFile(t, path, data)
}

// ReadDictionary reads a dictionary file written by the application
func ReadDictionary(t *testing.T, path string) dictionary.Entries {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries dictionary.Entries
	require.NoError(t, json.Unmarshal(data, &entries), "dictionary %s is not valid JSON", path)
	return entries
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	assert.FileExists(t, path)
}

func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	assert.NoFileExists(t, path)
}
