package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"codeberg.org/snonux/autotranslate/internal/config"
)

const defaultGeminiModel = "gemini-2.0-flash"

// Gemini translates with a Gemini model through the genai SDK. The client
// is created on first use because construction needs a context.
type Gemini struct {
	apiKey string
	model  string

	once      sync.Once
	client    *genai.Client
	clientErr error
}

// NewGemini creates a Gemini provider. An empty model selects gemini-2.0-flash.
func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = defaultGeminiModel
	}
	return &Gemini{apiKey: apiKey, model: model}
}

// Name returns the provider name
func (g *Gemini) Name() string {
	return config.ProviderGemini
}

// Translate translates text using the configured Gemini model
func (g *Gemini) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	if !config.KeySet(g.apiKey) {
		return "", missingKey(g.Name())
	}

	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText("You are a translation engine. Respond with only the translation, nothing else.", genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(translationPrompt(text, fromLang, toLang)), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	translation := strings.TrimSpace(resp.Text())
	if translation == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return translation, nil
}

func (g *Gemini) getClient(ctx context.Context) (*genai.Client, error) {
	g.once.Do(func() {
		g.client, g.clientErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if g.clientErr != nil {
			g.clientErr = fmt.Errorf("failed to create gemini client: %w", g.clientErr)
		}
	})
	return g.client, g.clientErr
}
