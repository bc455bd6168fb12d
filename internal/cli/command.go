package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/autotranslate/internal"
	"codeberg.org/snonux/autotranslate/internal/logging"
	"codeberg.org/snonux/autotranslate/internal/translation"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autotranslate",
		Short: "Dictionary-backed text translation",
		Long: `autotranslate translates short texts, answering from a global and an
optional per-project dictionary before asking a translation provider.

Translations returned by the provider are recorded in the dictionaries and
reused on later runs.

Examples:
  autotranslate translate --to hr "Hello world"       # Translate a text
  autotranslate translate --to hr greeting "Hello"     # Translate, store under a key
  autotranslate lookup --to hr "Hello world"           # Dictionary only
  autotranslate add --to hr "Hello world" "Bok svijete"
  autotranslate batch --to de --project . texts.txt     # Translate a file
  autotranslate config                                 # Show paths and dictionaries`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newTranslateCommand(flags),
		newLookupCommand(flags),
		newAddCommand(flags),
		newBatchCommand(flags),
		newConfigCommand(flags),
		newExportCommand(flags),
		newModelsCommand(flags),
		newArchiveCommand(flags),
		newVersionCommand(),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	pf := cmd.PersistentFlags()

	// File locations
	pf.StringVar(&flags.ConfigDir, "config-dir", "", "directory of the config file (default is $HOME/.auto-translate)")
	pf.StringVar(&flags.ConfigFile, "config-file", "", "config file name (default is .auto-translate-config.json)")
	pf.StringVar(&flags.DictDir, "dict-dir", "", "directory of the global dictionary (default is the config directory)")
	pf.StringVar(&flags.DictFile, "dict-file", "", "global dictionary file name (default is .global-dictionary.json)")
	pf.StringVarP(&flags.ProjectDir, "project", "p", "", "project directory; enables the project dictionary")
	pf.StringVar(&flags.ProjectDictFile, "project-dict-file", "", "project dictionary file name (default is .project-dictionary.json)")

	// Logging
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level: debug, info, warn, error")
	pf.StringVar(&flags.LogFile, "log-file", "", "write JSON logs to this file instead of stderr")

	// Translation
	pf.StringVarP(&flags.FromLang, "from", "f", flags.FromLang, "source language code")
	pf.StringVarP(&flags.ToLang, "to", "t", flags.ToLang, "target language code")
	pf.BoolVar(&flags.Auto, "auto", false, "enable automatic translation, overriding the config file")
	pf.StringVar(&flags.Provider, "provider", "", "translation provider: google, azure, openai or gemini, overriding the config file")
}

// newLogger builds the logger selected by the logging flags
func newLogger(flags *Flags) (*logrus.Logger, error) {
	opts := logging.DefaultOptions()
	opts.Level = flags.LogLevel
	opts.FilePath = flags.LogFile
	return logging.New(opts)
}

// newTranslator initializes a translator for cmd. The --auto and --provider
// flags override the config file only when they were given.
func newTranslator(cmd *cobra.Command, flags *Flags) (*translation.Translator, error) {
	log, err := newLogger(flags)
	if err != nil {
		return nil, err
	}
	return translation.InitWithFlags(flags.Options(), cmd.Flags(), log)
}

func requireLanguages(flags *Flags) error {
	if flags.FromLang == "" {
		return fmt.Errorf("source language is required (--from)")
	}
	if flags.ToLang == "" {
		return fmt.Errorf("target language is required (--to)")
	}
	return nil
}
