package translation

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"codeberg.org/snonux/autotranslate/internal/config"
	"codeberg.org/snonux/autotranslate/internal/dictionary"
	"codeberg.org/snonux/autotranslate/internal/logging"
	"codeberg.org/snonux/autotranslate/internal/provider"
	"codeberg.org/snonux/autotranslate/internal/resolver"
)

// ErrAutomaticTranslationDisabled is returned on a dictionary miss when
// automatic translation is turned off
var ErrAutomaticTranslationDisabled = errors.New("automatic translation is not enabled")

// Translator answers translation requests from the dictionaries and, on a
// miss, from the configured provider
type Translator struct {
	paths     config.Paths
	resolver  *resolver.Resolver
	provider  provider.Provider
	automatic bool
	log       *logrus.Logger
}

// New creates a Translator from already loaded parts. A nil provider is
// treated as no provider.
func New(res *resolver.Resolver, p provider.Provider, automatic bool, log *logrus.Logger) *Translator {
	if p == nil {
		p = provider.None{}
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Translator{
		resolver:  res,
		provider:  p,
		automatic: automatic,
		log:       log,
	}
}

// Init resolves the file locations, creates missing config and dictionary
// files, loads both dictionaries and selects the provider
func Init(opts config.Options, log *logrus.Logger) (*Translator, error) {
	return InitWithFlags(opts, nil, log)
}

// InitWithFlags is Init with command line overrides for the configuration
func InitWithFlags(opts config.Options, flags *pflag.FlagSet, log *logrus.Logger) (*Translator, error) {
	if log == nil {
		log = logging.Discard()
	}

	paths, err := config.ResolvePaths(opts)
	if err != nil {
		return nil, err
	}

	if err := ensureFiles(paths, log); err != nil {
		return nil, err
	}

	unreadable := false

	global, err := dictionary.Load(paths.GlobalDictFile)
	if err != nil {
		log.WithFields(logging.DictionaryFields("global", paths.GlobalDictFile)).WithError(err).
			Warn("could not parse dictionary, automatic translation disabled")
		unreadable = true
	}

	var project *dictionary.Store
	if paths.UseProjectDict {
		project, err = dictionary.Load(paths.ProjectDictFile)
		if err != nil {
			log.WithFields(logging.DictionaryFields("project", paths.ProjectDictFile)).WithError(err).
				Warn("could not parse dictionary, automatic translation disabled")
			unreadable = true
		}
	}

	settings, err := config.LoadSettings(paths.ConfigFile, flags)
	if err != nil {
		return nil, err
	}

	p, err := provider.New(settings, log)
	if err != nil {
		return nil, err
	}

	t := New(resolver.New(global, project), p, settings.AutomaticTranslation && !unreadable, log)
	t.paths = paths

	log.WithFields(logrus.Fields{
		"provider":  p.Name(),
		"automatic": t.automatic,
		"project":   paths.UseProjectDict,
	}).Debug("translator initialized")

	return t, nil
}

type ensureStep struct {
	path   string
	ensure func(string) (bool, error)
}

func ensureFiles(paths config.Paths, log *logrus.Logger) error {
	steps := []ensureStep{
		{paths.ConfigFile, config.EnsureConfigFile},
		{paths.GlobalDictFile, config.EnsureDictionaryFile},
	}
	if paths.UseProjectDict {
		steps = append(steps, ensureStep{paths.ProjectDictFile, config.EnsureDictionaryFile})
	}

	for _, step := range steps {
		created, err := step.ensure(step.path)
		if err != nil {
			return err
		}
		if created {
			log.WithField("path", step.path).Info("created missing file")
		}
	}
	return nil
}

// TranslateText returns the translation recorded for key, or asks the
// provider to translate text and records the result under key. Provider
// errors are returned unchanged. Without a provider, or when the provider
// has nothing to say, the result is empty and nothing is recorded.
func (t *Translator) TranslateText(ctx context.Context, key, text, fromLang, toLang string) (string, error) {
	fields := logging.TranslationFields(key, fromLang, toLang)

	if translation, ok := t.resolver.Resolve(fromLang, toLang, key); ok {
		t.log.WithFields(fields).Debug("dictionary hit")
		return translation, nil
	}

	if !t.automatic {
		return "", ErrAutomaticTranslationDisabled
	}

	t.log.WithFields(fields).WithField("provider", t.provider.Name()).Info("dictionary miss, asking provider")

	translation, err := t.provider.Translate(ctx, text, fromLang, toLang)
	if err != nil {
		return "", err
	}
	if translation == "" {
		return "", nil
	}

	t.resolver.Record(fromLang, toLang, key, translation)
	return translation, nil
}

// FindInDictionary looks text up in the dictionaries only
func (t *Translator) FindInDictionary(text, fromLang, toLang string) (string, bool) {
	return t.resolver.Resolve(fromLang, toLang, text)
}

// AddToDictionary records a translation in every enabled dictionary
func (t *Translator) AddToDictionary(text, translation, fromLang, toLang string) {
	t.resolver.Record(fromLang, toLang, text, translation)
}

// SaveDictionary writes the dictionaries that changed since the last save
func (t *Translator) SaveDictionary() error {
	if err := t.resolver.Save(); err != nil {
		return fmt.Errorf("failed to save dictionary: %w", err)
	}
	return nil
}

// AutomaticTranslation reports whether misses are sent to the provider
func (t *Translator) AutomaticTranslation() bool {
	return t.automatic
}

// Provider returns the active provider
func (t *Translator) Provider() provider.Provider {
	return t.provider
}

// Resolver returns the dictionaries behind the translator
func (t *Translator) Resolver() *resolver.Resolver {
	return t.resolver
}
