package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/autotranslate/internal/config"
)

// Overridden in tests; empty means the SDK default
var openaiBaseURL = ""

// OpenAI translates with a chat completion model
type OpenAI struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAI creates an OpenAI provider. An empty model selects gpt-4o-mini.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = openai.GPT4oMini
	}

	cfg := openai.DefaultConfig(apiKey)
	if openaiBaseURL != "" {
		cfg.BaseURL = openaiBaseURL
	}

	return &OpenAI{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Name returns the provider name
func (o *OpenAI) Name() string {
	return config.ProviderOpenAI
}

// Translate translates text using the configured chat model
func (o *OpenAI) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	if !config.KeySet(o.apiKey) {
		return "", missingKey(o.Name())
	}

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a translation engine. Respond with only the translation, nothing else.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: translationPrompt(text, fromLang, toLang),
			},
		},
		Temperature: 0.3,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// translationPrompt is shared by the language model providers
func translationPrompt(text, fromLang, toLang string) string {
	return fmt.Sprintf("Translate the following text from language code '%s' to language code '%s'. Keep placeholders and punctuation.\n\n%s", fromLang, toLang, text)
}
