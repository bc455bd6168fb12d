package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/autotranslate/internal/config"
)

// ErrMissingCredentials is returned when the selected provider has no key configured
var ErrMissingCredentials = errors.New("missing translation provider credentials")

// Provider translates text between two languages
//
//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks
type Provider interface {
	// Translate returns the translation of text from fromLang to toLang
	Translate(ctx context.Context, text, fromLang, toLang string) (string, error)

	// Name returns the provider name
	Name() string
}

// requestTimeout bounds a single HTTP round trip to a provider
const requestTimeout = 30 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// New creates the provider selected in the settings. An unknown or empty
// provider name yields None. Missing credentials are not an error here;
// the provider reports ErrMissingCredentials when it is first used.
func New(s *config.Settings, log *logrus.Logger) (Provider, error) {
	if s == nil {
		return None{}, nil
	}

	var p Provider
	switch s.TranslatorProvider {
	case config.ProviderGoogle:
		p = NewGoogle(s.GoogleTranslateKey)
	case config.ProviderAzure:
		p = NewAzure(s.AzureTranslateKey, s.AzureRegion)
	case config.ProviderOpenAI:
		p = NewOpenAI(s.OpenAIKey, s.OpenAIModel)
	case config.ProviderGemini:
		p = NewGemini(s.GeminiKey, s.GeminiModel)
	default:
		if s.TranslatorProvider != "" && log != nil {
			log.WithField("provider", s.TranslatorProvider).Warn("unknown translation provider, automatic translation yields no result")
		}
		return None{}, nil
	}

	if s.CircuitBreaker {
		if s.BreakerMaxFailures < 1 || s.BreakerTimeout <= 0 {
			return nil, fmt.Errorf("invalid circuit breaker settings for %s", p.Name())
		}
		p = WithBreaker(p, BreakerSettings{
			MaxFailures: uint32(s.BreakerMaxFailures),
			Timeout:     s.BreakerTimeout,
		}, log)
	}

	return p, nil
}

// None is the absent provider. It never fails and never returns a translation.
type None struct{}

// Translate always returns an empty result
func (None) Translate(context.Context, string, string, string) (string, error) {
	return "", nil
}

// Name returns the provider name
func (None) Name() string {
	return "none"
}

// IsNone reports whether p is the absent provider
func IsNone(p Provider) bool {
	if p == nil {
		return true
	}
	_, ok := p.(None)
	return ok
}

func missingKey(name string) error {
	return fmt.Errorf("%s: %w", name, ErrMissingCredentials)
}
