package cli

import "codeberg.org/snonux/autotranslate/internal/config"

// Flags holds all command-line flag values
type Flags struct {
	// File locations
	ConfigDir       string
	ConfigFile      string
	DictDir         string
	DictFile        string
	ProjectDir      string
	ProjectDictFile string

	// Logging
	LogLevel string
	LogFile  string

	// Translation
	FromLang    string
	ToLang      string
	Auto        bool
	Provider    string
	Concurrency int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogLevel:    "warn",
		FromLang:    "en",
		Concurrency: 4,
	}
}

// Options converts the file location flags for translation.Init. Empty
// values fall back to the config package defaults.
func (f *Flags) Options() config.Options {
	return config.Options{
		PathToGlobalConfig:     f.ConfigDir,
		ConfigFileName:         f.ConfigFile,
		PathToGlobalDictionary: f.DictDir,
		GlobalDictFileName:     f.DictFile,
		PathToProject:          f.ProjectDir,
		ProjectDictFileName:    f.ProjectDictFile,
	}
}
