package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietpath/ripple/internal/core/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func successBody(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSON(text) + `}]}}]}`
}

func mustJSON(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func TestClient_UnavailableWithoutCredential(t *testing.T) {
	client := NewClient()

	assert.False(t, client.Available())

	_, err := client.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrInsightUnavailable)
}

func TestClient_Generate_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(successBody("A generated reflection.")))
	})

	client := NewClient(WithBaseURL(server.URL))
	client.SetCredential("test-key")

	text, err := client.Generate(context.Background(), "my prompt")

	require.NoError(t, err)
	assert.Equal(t, "A generated reflection.", text)
	assert.Equal(t, "/models/"+DefaultModel+":generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "my prompt", gotBody.Contents[0].Parts[0].Text)
	assert.Equal(t, 0.7, gotBody.GenerationConfig.Temperature)
	assert.Equal(t, 0.95, gotBody.GenerationConfig.TopP)
	assert.Equal(t, 40, gotBody.GenerationConfig.TopK)
	assert.Equal(t, 1024, gotBody.GenerationConfig.MaxOutputTokens)
}

func TestClient_Generate_NonSuccessStatus(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	client := NewClient(WithBaseURL(server.URL))
	client.SetCredential("test-key")

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, domain.ErrInsightRequest)
}

func TestClient_Generate_MalformedBody(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	client := NewClient(WithBaseURL(server.URL))
	client.SetCredential("test-key")

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, domain.ErrInsightRequest)
}

func TestClient_Generate_MissingText(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	client := NewClient(WithBaseURL(server.URL))
	client.SetCredential("test-key")

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, domain.ErrInsightRequest)
}

func TestClient_Generate_NetworkFailure(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	client := NewClient(WithBaseURL(server.URL))
	client.SetCredential("test-key")

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, domain.ErrInsightRequest)
}

func TestClient_WithModel(t *testing.T) {
	var gotPath string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(successBody("ok")))
	})

	client := NewClient(WithBaseURL(server.URL), WithModel("gemini-2.0-pro"))
	client.SetCredential("test-key")

	_, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "/models/gemini-2.0-pro:generateContent", gotPath)
}
