package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"codeberg.org/snonux/autotranslate/internal/config"
)

// Overridden in tests
var azureTranslateURL = "https://api.cognitive.microsofttranslator.com/translate"

// Azure calls the Translator v3 REST API. The region is only needed for
// regional or multi-service resources.
type Azure struct {
	apiKey     string
	region     string
	httpClient *http.Client
}

// NewAzure creates an Azure provider
func NewAzure(apiKey, region string) *Azure {
	return &Azure{
		apiKey:     apiKey,
		region:     region,
		httpClient: newHTTPClient(),
	}
}

type azureRequestItem struct {
	Text string `json:"Text"`
}

type azureResponseItem struct {
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

type azureError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Name returns the provider name
func (a *Azure) Name() string {
	return config.ProviderAzure
}

// Translate translates text using Azure Translator
func (a *Azure) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	if !config.KeySet(a.apiKey) {
		return "", missingKey(a.Name())
	}

	payload, err := json.Marshal([]azureRequestItem{{Text: text}})
	if err != nil {
		return "", fmt.Errorf("failed to encode azure request: %w", err)
	}

	query := url.Values{}
	query.Set("api-version", "3.0")
	query.Set("from", fromLang)
	query.Set("to", toLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, azureTranslateURL+"?"+query.Encode(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create azure request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", a.apiKey)
	if a.region != "" {
		req.Header.Set("Ocp-Apim-Subscription-Region", a.region)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("azure translate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read azure response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr azureError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("azure translate error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("azure translate error: status %d", resp.StatusCode)
	}

	var result []azureResponseItem
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("invalid azure response: %w", err)
	}
	if len(result) == 0 || len(result[0].Translations) == 0 {
		return "", fmt.Errorf("no translation returned by azure")
	}

	return result[0].Translations[0].Text, nil
}
