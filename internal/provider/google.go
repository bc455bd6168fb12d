package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"codeberg.org/snonux/autotranslate/internal/config"
)

// Overridden in tests
var googleTranslateURL = "https://translation.googleapis.com/language/translate/v2"

// Google calls the Cloud Translation v2 REST API with an API key
type Google struct {
	apiKey     string
	httpClient *http.Client
}

// NewGoogle creates a Google provider
func NewGoogle(apiKey string) *Google {
	return &Google{
		apiKey:     apiKey,
		httpClient: newHTTPClient(),
	}
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

type googleError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Name returns the provider name
func (g *Google) Name() string {
	return config.ProviderGoogle
}

// Translate translates text using Google Translate
func (g *Google) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	if !config.KeySet(g.apiKey) {
		return "", missingKey(g.Name())
	}

	form := url.Values{}
	form.Set("q", text)
	form.Set("source", fromLang)
	form.Set("target", toLang)
	form.Set("format", "text")
	form.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTranslateURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create google request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("google translate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read google response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr googleError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("google translate error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("google translate error: status %d", resp.StatusCode)
	}

	var result googleResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("invalid google response: %w", err)
	}
	if len(result.Data.Translations) == 0 {
		return "", fmt.Errorf("no translation returned by google")
	}

	return result.Data.Translations[0].TranslatedText, nil
}
