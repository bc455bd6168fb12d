package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths_Explicit(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "project")

	paths, err := ResolvePaths(Options{
		PathToGlobalConfig: dir,
		ConfigFileName:     "cfg.json",
		GlobalDictFileName: "global.json",
		PathToProject:      project,
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "cfg.json"), paths.ConfigFile)
	assert.Equal(t, filepath.Join(dir, "global.json"), paths.GlobalDictFile, "dictionary dir defaults to config dir")
	assert.True(t, paths.UseProjectDict)
	assert.Equal(t, filepath.Join(project, ProjectDictFile), paths.ProjectDictFile)
}

func TestResolvePaths_SeparateDictionaryDir(t *testing.T) {
	dir := t.TempDir()
	dictDir := filepath.Join(dir, "dicts")

	paths, err := ResolvePaths(Options{
		PathToGlobalConfig:     dir,
		PathToGlobalDictionary: dictDir,
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ConfigFileName), paths.ConfigFile)
	assert.Equal(t, filepath.Join(dictDir, GlobalDictFileName), paths.GlobalDictFile)
	assert.False(t, paths.UseProjectDict)
	assert.Empty(t, paths.ProjectDictFile)
}

func TestResolvePaths_DefaultsToUserHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	paths, err := ResolvePaths(Options{})
	require.NoError(t, err)

	base := filepath.Join(home, UserHomeFolder)
	assert.Equal(t, filepath.Join(base, ConfigFileName), paths.ConfigFile)
	assert.Equal(t, filepath.Join(base, GlobalDictFileName), paths.GlobalDictFile)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	created, err := EnsureConfigFile(path)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, false, body["automaticTranslation"])
	assert.Equal(t, "google", body["translatorProvider"])
	assert.Equal(t, PlaceholderKey, body["azureTranslateKey"])
	assert.Equal(t, PlaceholderKey, body["googleTranslateKey"])
}

func TestEnsureFiles_DoNotTouchExisting(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "cfg.json")
	dict := filepath.Join(dir, "dict.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{"automaticTranslation": true}`), 0644))
	require.NoError(t, os.WriteFile(dict, []byte(`{"en_hr": {"a": "b"}}`), 0644))

	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(cfg, past, past))
	require.NoError(t, os.Chtimes(dict, past, past))

	created, err := EnsureConfigFile(cfg)
	require.NoError(t, err)
	assert.False(t, created)
	created, err = EnsureDictionaryFile(dict)
	require.NoError(t, err)
	assert.False(t, created)

	for _, path := range []string{cfg, dict} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(past), path)
	}
}

func TestEnsureDictionaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), GlobalDictFileName)

	created, err := EnsureDictionaryFile(path)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(data))
}

func TestEnsureFile_Directory(t *testing.T) {
	_, err := EnsureDictionaryFile(t.TempDir())
	assert.Error(t, err)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeConfig(t, `{
		"automaticTranslation": true,
		"translatorProvider": "Azure",
		"azureTranslateKey": "az-key",
		"azureRegion": "westeurope",
		"googleTranslateKey": "g-key"
	}`)

	s, err := LoadSettings(path, nil)
	require.NoError(t, err)

	assert.True(t, s.AutomaticTranslation)
	assert.Equal(t, ProviderAzure, s.TranslatorProvider)
	assert.Equal(t, "az-key", s.AzureTranslateKey)
	assert.Equal(t, "westeurope", s.AzureRegion)
	assert.Equal(t, "g-key", s.GoogleTranslateKey)
	assert.Equal(t, "gpt-4o-mini", s.OpenAIModel)
	assert.Equal(t, 5, s.BreakerMaxFailures)
	assert.Equal(t, 30*time.Second, s.BreakerTimeout)
	assert.True(t, s.HasCredentials())
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(writeConfig(t, `{}`), nil)
	require.NoError(t, err)

	assert.False(t, s.AutomaticTranslation)
	assert.Empty(t, s.TranslatorProvider)
	assert.False(t, s.HasCredentials())
}

func TestLoadSettings_EnvOverride(t *testing.T) {
	t.Setenv("AUTOTRANSLATE_GOOGLETRANSLATEKEY", "from-env")
	path := writeConfig(t, `{"translatorProvider": "google", "googleTranslateKey": "from-file"}`)

	s, err := LoadSettings(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.GoogleTranslateKey)
}

func TestLoadSettings_FlagOverride(t *testing.T) {
	path := writeConfig(t, `{"automaticTranslation": false, "translatorProvider": "google"}`)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("auto", false, "")
	flags.String("provider", "", "")
	require.NoError(t, flags.Parse([]string{"--auto", "--provider", "openai"}))

	s, err := LoadSettings(path, flags)
	require.NoError(t, err)
	assert.True(t, s.AutomaticTranslation)
	assert.Equal(t, ProviderOpenAI, s.TranslatorProvider)
}

func TestLoadSettings_UnchangedFlagsKeepFileValues(t *testing.T) {
	path := writeConfig(t, `{"automaticTranslation": true, "translatorProvider": "azure"}`)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("auto", false, "")
	flags.String("provider", "", "")
	require.NoError(t, flags.Parse(nil))

	s, err := LoadSettings(path, flags)
	require.NoError(t, err)
	assert.True(t, s.AutomaticTranslation)
	assert.Equal(t, ProviderAzure, s.TranslatorProvider)
}

func TestLoadSettings_Errors(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)

	_, err = LoadSettings(writeConfig(t, `{"automaticTranslation": `), nil)
	assert.Error(t, err)

	_, err = LoadSettings(writeConfig(t, `{"circuitBreaker": true, "breakerMaxFailures": 0}`), nil)
	var fieldErr FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, KeyBreakerMaxFailures, fieldErr.Field)
}

func TestHasCredentials_PlaceholderIsNotAKey(t *testing.T) {
	s := &Settings{TranslatorProvider: ProviderGoogle, GoogleTranslateKey: PlaceholderKey}
	assert.False(t, s.HasCredentials())

	s.GoogleTranslateKey = "real"
	assert.True(t, s.HasCredentials())

	s.TranslatorProvider = "deepl"
	assert.False(t, s.HasCredentials())
}
