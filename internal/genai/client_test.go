// internal/genai/client_test.go
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/48d31kh413k/NavixAI/internal/common/config"
	"github.com/48d31kh413k/NavixAI/internal/common/logger"
)

func testConfig(baseURL string) config.GenAIConfig {
	return config.GenAIConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "gpt-3.5-turbo",
		MaxTokens:   100,
		Temperature: 0.7,
		Timeout:     2000,
		MaxRetries:  2,
	}
}

func completionBody(text string) string {
	return fmt.Sprintf(`{"choices": [{"message": {"content": %q}}]}`, text)
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		fmt.Fprint(w, completionBody("restaurant, museum, park"))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), logger.NewNoOpLogger())
	got, err := c.Generate(context.Background(), "suggest activities")

	require.NoError(t, err)
	assert.Equal(t, "restaurant, museum, park", got)
}

func TestGenerateRetriesOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, completionBody("cafe, spa"))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), logger.NewNoOpLogger())
	got, err := c.Generate(context.Background(), "suggest activities")

	require.NoError(t, err)
	assert.Equal(t, "cafe, spa", got)
	assert.Equal(t, 2, calls)
}

func TestGenerateExhaustedRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), logger.NewNoOpLogger())
	_, err := c.Generate(context.Background(), "suggest activities")

	assert.ErrorIs(t, err, ErrGenAIFailed)
}

func TestGenerateMissingCredential(t *testing.T) {
	cfg := testConfig("http://unused")
	cfg.APIKey = ""
	c := NewClient(cfg, logger.NewNoOpLogger())

	_, err := c.Generate(context.Background(), "suggest activities")

	assert.ErrorIs(t, err, ErrGenAIFailed)
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), logger.NewNoOpLogger())
	_, err := c.Generate(context.Background(), "suggest activities")

	assert.ErrorIs(t, err, ErrGenAIFailed)
}
