package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Default file and folder names
const (
	UserHomeFolder     = ".auto-translate"
	ConfigFileName     = ".auto-translate-config.json"
	GlobalDictFileName = ".global-dictionary.json"
	ProjectDictFile    = ".project-dictionary.json"

	// PlaceholderKey is written into a fresh config file in place of real credentials
	PlaceholderKey = "please-enter-the-key"
)

// Options selects where configuration and dictionaries live. Empty fields
// fall back to the defaults above.
type Options struct {
	PathToGlobalConfig     string
	ConfigFileName         string
	PathToGlobalDictionary string
	GlobalDictFileName     string
	PathToProject          string
	ProjectDictFileName    string
}

// Paths holds the resolved file locations
type Paths struct {
	ConfigFile      string
	GlobalDictFile  string
	ProjectDictFile string
	UseProjectDict  bool
}

// ResolvePaths applies defaults to opts. The per-user folder is only
// created when it is actually needed as a default.
func ResolvePaths(opts Options) (Paths, error) {
	configDir := opts.PathToGlobalConfig
	if configDir == "" {
		home, err := UserHome()
		if err != nil {
			return Paths{}, err
		}
		configDir = home
	}

	dictDir := opts.PathToGlobalDictionary
	if dictDir == "" {
		dictDir = configDir
	}

	configName := opts.ConfigFileName
	if configName == "" {
		configName = ConfigFileName
	}
	globalName := opts.GlobalDictFileName
	if globalName == "" {
		globalName = GlobalDictFileName
	}

	paths := Paths{
		ConfigFile:     filepath.Clean(filepath.Join(configDir, configName)),
		GlobalDictFile: filepath.Clean(filepath.Join(dictDir, globalName)),
		UseProjectDict: opts.PathToProject != "",
	}

	if paths.UseProjectDict {
		projectName := opts.ProjectDictFileName
		if projectName == "" {
			projectName = ProjectDictFile
		}
		paths.ProjectDictFile = filepath.Clean(filepath.Join(opts.PathToProject, projectName))
	}

	return paths, nil
}

// UserHome returns ~/.auto-translate, creating it if it does not exist
func UserHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, UserHomeFolder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return dir, nil
}

// defaultConfig keeps the key order of a freshly written config file stable
type defaultConfig struct {
	AutomaticTranslation bool   `json:"automaticTranslation"`
	TranslatorProvider   string `json:"translatorProvider"`
	AzureTranslateKey    string `json:"azureTranslateKey"`
	GoogleTranslateKey   string `json:"googleTranslateKey"`
}

// EnsureConfigFile writes a default configuration to path if it does not exist
func EnsureConfigFile(path string) (bool, error) {
	return ensureFile(path, defaultConfig{
		AutomaticTranslation: false,
		TranslatorProvider:   ProviderGoogle,
		AzureTranslateKey:    PlaceholderKey,
		GoogleTranslateKey:   PlaceholderKey,
	})
}

// EnsureDictionaryFile writes an empty dictionary to path if it does not exist
func EnsureDictionaryFile(path string) (bool, error) {
	return ensureFile(path, struct{}{})
}

// ensureFile reports whether it created the file
func ensureFile(path string, content any) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return false, fmt.Errorf("%s is a directory", path)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	if err := enc.Encode(content); err != nil {
		return false, fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return true, nil
}
