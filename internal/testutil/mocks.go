package testutil

import (
	"context"
	"fmt"
	"sync"
)

// FakeProvider is a hand-written translation provider for tests that need
// canned answers rather than call expectations. It is safe for concurrent use.
type FakeProvider struct {
	Translations map[string]string
	Errors       map[string]error

	mu    sync.Mutex
	calls []string
}

// NewFakeProvider creates a FakeProvider with the given canned translations
func NewFakeProvider(translations map[string]string) *FakeProvider {
	return &FakeProvider{
		Translations: translations,
		Errors:       make(map[string]error),
	}
}

// Name returns the provider name
func (f *FakeProvider) Name() string {
	return "fake"
}

// Translate returns the canned translation or error for text. Unknown
// texts get a generated translation.
func (f *FakeProvider) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf("%s (%s->%s)", text, fromLang, toLang))
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := f.Errors[text]; ok {
		return "", err
	}
	if translation, ok := f.Translations[text]; ok {
		return translation, nil
	}
	return fmt.Sprintf("%s in %s", text, toLang), nil
}

// Calls returns the recorded calls in order
func (f *FakeProvider) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}
