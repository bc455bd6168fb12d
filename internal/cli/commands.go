package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/autotranslate/internal"
	"codeberg.org/snonux/autotranslate/internal/archive"
	"codeberg.org/snonux/autotranslate/internal/batch"
	"codeberg.org/snonux/autotranslate/internal/config"
	"codeberg.org/snonux/autotranslate/internal/export"
	"codeberg.org/snonux/autotranslate/internal/models"
	"codeberg.org/snonux/autotranslate/internal/processor"
)

// ErrNotFound is returned by lookup when no dictionary has the text
var ErrNotFound = errors.New("not found in dictionary")

func newTranslateCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "translate <key> [text]",
		Short: "Translate a text, answering from the dictionaries when possible",
		Long: `Translate looks the key up in the dictionaries. On a miss, and when
automatic translation is enabled, the text (or the key if no text is given)
is sent to the provider and the result is recorded under the key.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLanguages(flags); err != nil {
				return err
			}
			t, err := newTranslator(cmd, flags)
			if err != nil {
				return err
			}

			text := ""
			if len(args) == 2 {
				text = args[1]
			}

			proc := processor.NewProcessor(t, processor.Options{
				FromLang: flags.FromLang,
				ToLang:   flags.ToLang,
				Out:      cmd.OutOrStdout(),
				ErrOut:   cmd.ErrOrStderr(),
			})
			_, err = proc.ProcessSingle(cmd.Context(), args[0], text)
			return err
		},
	}
}

func newLookupCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <text>",
		Short: "Look a text up in the dictionaries without calling a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLanguages(flags); err != nil {
				return err
			}
			t, err := newTranslator(cmd, flags)
			if err != nil {
				return err
			}

			translation, ok := t.FindInDictionary(args[0], flags.FromLang, flags.ToLang)
			if !ok {
				return fmt.Errorf("'%s': %w", args[0], ErrNotFound)
			}
			fmt.Fprintln(cmd.OutOrStdout(), translation)
			return nil
		},
	}
}

func newAddCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text> <translation>",
		Short: "Record a translation in the dictionaries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLanguages(flags); err != nil {
				return err
			}
			t, err := newTranslator(cmd, flags)
			if err != nil {
				return err
			}

			t.AddToDictionary(args[0], args[1], flags.FromLang, flags.ToLang)
			return t.SaveDictionary()
		},
	}
}

func newBatchCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Translate every line of a file",
		Long: `Batch translates a file with one entry per line. A line is either the
text itself, or "key = text" to store the translation under a separate key.
Blank lines and lines starting with '#' are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLanguages(flags); err != nil {
				return err
			}
			entries, err := batch.ReadBatchFile(args[0])
			if err != nil {
				return err
			}
			t, err := newTranslator(cmd, flags)
			if err != nil {
				return err
			}

			proc := processor.NewProcessor(t, processor.Options{
				FromLang:    flags.FromLang,
				ToLang:      flags.ToLang,
				Concurrency: flags.Concurrency,
				Out:         cmd.OutOrStdout(),
				ErrOut:      cmd.ErrOrStderr(),
			})
			_, err = proc.ProcessBatch(cmd.Context(), entries)
			return err
		},
	}
	cmd.Flags().IntVarP(&flags.Concurrency, "concurrency", "c", flags.Concurrency, "number of provider requests in flight")
	return cmd
}

func newConfigCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print file locations, provider selection and dictionaries as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := newTranslator(cmd, flags)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "    ")
			return enc.Encode(t.Config())
		},
	}
}

func newExportCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <database>",
		Short: "Copy the dictionaries into a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := newTranslator(cmd, flags)
			if err != nil {
				return err
			}

			n, err := export.ToFile(cmd.Context(), args[0], export.TiersOf(t))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d translations to %s\n", n, args[0])
			return nil
		},
	}
}

func newModelsCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List OpenAI chat models usable with the openai provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := config.ResolvePaths(flags.Options())
			if err != nil {
				return err
			}
			if _, err := config.EnsureConfigFile(paths.ConfigFile); err != nil {
				return err
			}
			settings, err := config.LoadSettings(paths.ConfigFile, cmd.Flags())
			if err != nil {
				return err
			}

			lister := models.NewLister(settings.OpenAIKey)
			return lister.ListAvailableModels(cmd.Context(), cmd.OutOrStdout(), settings.OpenAIModel)
		},
	}
}

func newArchiveCommand(flags *Flags) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Keep a timestamped copy of the dictionaries",
		Long: `Archive copies the global dictionary, and the project dictionary when
--project is given, into an "archive" directory next to each file. With
--reset the files are moved instead, so the next run starts empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := config.ResolvePaths(flags.Options())
			if err != nil {
				return err
			}

			files := []string{paths.GlobalDictFile}
			if paths.UseProjectDict {
				files = append(files, paths.ProjectDictFile)
			}

			for _, file := range files {
				archived, err := archive.Dictionary(file, reset)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dictionary archived to: %s\n", archived)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "move the dictionaries instead of copying them")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "autotranslate %s\n", internal.Version)
		},
	}
}
