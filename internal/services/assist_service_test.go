package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/notehq/note-api/internal/config"
	"github.com/notehq/note-api/internal/services"
	"github.com/stretchr/testify/require"
)

func TestAssistClient_Disabled(t *testing.T) {
	client := services.NewAssistClient(&config.Config{})
	require.False(t, client.Enabled())

	_, err := client.Complete(context.Background(), "hello")
	require.ErrorIs(t, err, services.ErrAssistDisabled)
}

func TestAssistClient_Complete(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]any

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"summarized"}}]}`))
	}))
	defer upstream.Close()

	client := services.NewAssistClient(&config.Config{
		AIAPIURL: upstream.URL,
		AIAPIKey: "test-key",
		AIModel:  "test-model",
	})
	require.True(t, client.Enabled())

	text, err := client.Complete(context.Background(), "summarize my note")
	require.NoError(t, err)
	require.Equal(t, "summarized", text)

	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "/chat/completions", gotPath)
	require.Equal(t, "test-model", gotBody["model"])
}

func TestAssistClient_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	client := services.NewAssistClient(&config.Config{AIAPIURL: upstream.URL})

	_, err := client.Complete(context.Background(), "hello")
	require.Error(t, err)
	require.NotErrorIs(t, err, services.ErrAssistDisabled)
}
