package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Provider identifiers accepted in translatorProvider
const (
	ProviderGoogle = "google"
	ProviderAzure  = "azure"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// EnvPrefix prefixes environment overrides, e.g. AUTOTRANSLATE_GOOGLETRANSLATEKEY
const EnvPrefix = "AUTOTRANSLATE"

// Configuration keys as they appear in the JSON config file
const (
	KeyAutomaticTranslation = "automaticTranslation"
	KeyTranslatorProvider   = "translatorProvider"
	KeyAzureTranslateKey    = "azureTranslateKey"
	KeyAzureRegion          = "azureRegion"
	KeyGoogleTranslateKey   = "googleTranslateKey"
	KeyOpenAIKey            = "openaiKey"
	KeyOpenAIModel          = "openaiModel"
	KeyGeminiKey            = "geminiKey"
	KeyGeminiModel          = "geminiModel"
	KeyCircuitBreaker       = "circuitBreaker"
	KeyBreakerMaxFailures   = "breakerMaxFailures"
	KeyBreakerTimeout       = "breakerTimeout"
)

// flagBindings maps config keys to the CLI flags that may override them
var flagBindings = map[string]string{
	KeyAutomaticTranslation: "auto",
	KeyTranslatorProvider:   "provider",
}

// Settings is the provider selection read from the configuration file.
// Credentials are passed through untouched.
type Settings struct {
	AutomaticTranslation bool
	TranslatorProvider   string

	AzureTranslateKey  string
	AzureRegion        string
	GoogleTranslateKey string
	OpenAIKey          string
	OpenAIModel        string
	GeminiKey          string
	GeminiModel        string

	CircuitBreaker     bool
	BreakerMaxFailures int
	BreakerTimeout     time.Duration
}

// LoadSettings reads the JSON configuration at path. Values can be
// overridden by AUTOTRANSLATE_* environment variables and, when flags is
// non-nil, by the --auto and --provider flags.
func LoadSettings(path string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagBindings {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	s := &Settings{
		AutomaticTranslation: v.GetBool(KeyAutomaticTranslation),
		TranslatorProvider:   strings.ToLower(strings.TrimSpace(v.GetString(KeyTranslatorProvider))),
		AzureTranslateKey:    v.GetString(KeyAzureTranslateKey),
		AzureRegion:          v.GetString(KeyAzureRegion),
		GoogleTranslateKey:   v.GetString(KeyGoogleTranslateKey),
		OpenAIKey:            v.GetString(KeyOpenAIKey),
		OpenAIModel:          v.GetString(KeyOpenAIModel),
		GeminiKey:            v.GetString(KeyGeminiKey),
		GeminiModel:          v.GetString(KeyGeminiModel),
		CircuitBreaker:       v.GetBool(KeyCircuitBreaker),
		BreakerMaxFailures:   v.GetInt(KeyBreakerMaxFailures),
		BreakerTimeout:       v.GetDuration(KeyBreakerTimeout),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAutomaticTranslation, false)
	v.SetDefault(KeyOpenAIModel, "gpt-4o-mini")
	v.SetDefault(KeyGeminiModel, "gemini-2.0-flash")
	v.SetDefault(KeyCircuitBreaker, false)
	v.SetDefault(KeyBreakerMaxFailures, 5)
	v.SetDefault(KeyBreakerTimeout, "30s")
}
