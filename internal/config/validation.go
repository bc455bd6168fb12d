package config

import "fmt"

// FieldError names the configuration key that failed validation
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks the settings that have a restricted range. Provider
// names are not checked: an unknown provider means no provider.
func (s *Settings) Validate() error {
	if s.CircuitBreaker {
		if s.BreakerMaxFailures < 1 {
			return FieldError{Field: KeyBreakerMaxFailures, Reason: "must be at least 1"}
		}
		if s.BreakerTimeout <= 0 {
			return FieldError{Field: KeyBreakerTimeout, Reason: "must be a positive duration"}
		}
	}
	return nil
}

// HasCredentials reports whether a key is configured for the selected provider
func (s *Settings) HasCredentials() bool {
	switch s.TranslatorProvider {
	case ProviderGoogle:
		return KeySet(s.GoogleTranslateKey)
	case ProviderAzure:
		return KeySet(s.AzureTranslateKey)
	case ProviderOpenAI:
		return KeySet(s.OpenAIKey)
	case ProviderGemini:
		return KeySet(s.GeminiKey)
	default:
		return false
	}
}

// KeySet reports whether key holds a real credential. The placeholder
// written into a fresh config file does not count.
func KeySet(key string) bool {
	return key != "" && key != PlaceholderKey
}
