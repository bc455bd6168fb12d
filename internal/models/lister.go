package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/autotranslate/internal/config"
	"codeberg.org/snonux/autotranslate/internal/provider"
)

// Overridden in tests
var openaiBaseURL = ""

// Lister handles listing the OpenAI models usable for translation
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	cfg := openai.DefaultConfig(apiKey)
	if openaiBaseURL != "" {
		cfg.BaseURL = openaiBaseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(cfg),
	}
}

// ChatModels returns the sorted IDs of the chat models available to the key
func (l *Lister) ChatModels(ctx context.Context) ([]string, error) {
	if !config.KeySet(l.apiKey) {
		return nil, fmt.Errorf("openai: %w (set openaiKey in the config file or AUTOTRANSLATE_OPENAIKEY)", provider.ErrMissingCredentials)
	}

	list, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var chatModels []string
	for _, model := range list.Models {
		if isChatModel(model.ID) {
			chatModels = append(chatModels, model.ID)
		}
	}
	sort.Strings(chatModels)
	return chatModels, nil
}

// ListAvailableModels prints the chat models, marking the configured one
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer, current string) error {
	chatModels, err := l.ChatModels(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Chat models usable for translation:")
	if len(chatModels) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return nil
	}
	for _, model := range chatModels {
		marker := " "
		if model == current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, model)
	}
	return nil
}

func isChatModel(id string) bool {
	// audio, realtime, tts and search variants do not answer plain chat prompts
	for _, skip := range []string{"tts", "audio", "realtime", "transcribe", "search", "image"} {
		if strings.Contains(id, skip) {
			return false
		}
	}
	return strings.HasPrefix(id, "gpt-") || strings.HasPrefix(id, "o1") ||
		strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4") || strings.Contains(id, "chat")
}
