package models

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/autotranslate/internal/provider"
)

func newTestLister(t *testing.T) *Lister {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[
			{"id":"gpt-4o-mini","object":"model"},
			{"id":"tts-1","object":"model"},
			{"id":"gpt-4o-mini-tts","object":"model"},
			{"id":"dall-e-3","object":"model"},
			{"id":"gpt-4o","object":"model"},
			{"id":"o3-mini","object":"model"},
			{"id":"whisper-1","object":"model"}
		]}`))
	}))
	t.Cleanup(srv.Close)

	old := openaiBaseURL
	openaiBaseURL = srv.URL
	t.Cleanup(func() { openaiBaseURL = old })

	return NewLister("test-api-key")
}

func TestChatModels(t *testing.T) {
	got, err := newTestLister(t).ChatModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o", "gpt-4o-mini", "o3-mini"}, got)
}

func TestListAvailableModels(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, newTestLister(t).ListAvailableModels(context.Background(), &out, "gpt-4o-mini"))

	assert.Contains(t, out.String(), "* gpt-4o-mini\n")
	assert.Contains(t, out.String(), "  gpt-4o\n")
	assert.NotContains(t, out.String(), "tts-1")
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	err := NewLister("").ListAvailableModels(context.Background(), &bytes.Buffer{}, "")
	assert.ErrorIs(t, err, provider.ErrMissingCredentials)
}

func TestIsChatModel(t *testing.T) {
	tests := map[string]bool{
		"gpt-4o":                 true,
		"gpt-3.5-turbo":          true,
		"o1-preview":             true,
		"chatgpt-4o-latest":      true,
		"gpt-4o-realtime":        false,
		"gpt-4o-audio-preview":   false,
		"gpt-4o-mini-transcribe": false,
		"text-embedding-3-small": false,
		"gpt-image-1":            false,
	}
	for id, want := range tests {
		assert.Equal(t, want, isChatModel(id), id)
	}
}
