package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-intake/internal/domain"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	googleai "github.com/google/generative-ai-go/genai"
)

// stubConfig overrides only the getters NewProvider reads.
type stubConfig struct {
	domain.Config
	provider string
	apiKey   string
	project  string
	openAI   string
	baseURL  string
}

func (c stubConfig) GetAIProvider() string          { return c.provider }
func (c stubConfig) GetGenAIAPIKey() string         { return c.apiKey }
func (c stubConfig) GetGoogleCloudProject() string  { return c.project }
func (c stubConfig) GetGoogleCloudLocation() string { return "us-central1" }
func (c stubConfig) GetOpenAIAPIKey() string        { return c.openAI }
func (c stubConfig) GetOpenAIBaseURL() string       { return c.baseURL }

func TestNewProvider_Disabled(t *testing.T) {
	for _, name := range []string{"", "none", " NONE "} {
		provider, err := NewProvider(context.Background(), stubConfig{provider: name})
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", name, err)
		}
		if provider != nil {
			t.Fatalf("expected no provider for %q", name)
		}
	}
}

func TestNewProvider_Errors(t *testing.T) {
	tests := []stubConfig{
		{provider: "claude"},
		{provider: ProviderGemini},
		{provider: ProviderGenAI},
		{provider: ProviderVertex},
		{provider: ProviderOpenAI},
	}

	for _, cfg := range tests {
		t.Run(cfg.provider, func(t *testing.T) {
			if _, err := NewProvider(context.Background(), cfg); err == nil {
				t.Fatalf("expected error for provider %q without credentials", cfg.provider)
			}
		})
	}
}

func newOpenAITestServer(t *testing.T, content string, gotModel *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		*gotModel = req.Model

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   req.Model,
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]string{"role": "assistant", "content": content},
				},
			},
		})
	}))
}

func TestOpenAIProvider_GenerateContent(t *testing.T) {
	var gotModel string
	server := newOpenAITestServer(t, `{"skills":["Go"]}`, &gotModel)
	defer server.Close()

	provider, err := NewProvider(context.Background(), stubConfig{
		provider: ProviderOpenAI,
		openAI:   "sk-test",
		baseURL:  server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer provider.Close()

	model, err := provider.Model("gpt-4o-mini")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := model.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"skills":["Go"]}` {
		t.Fatalf("unexpected content %q", out)
	}
	if gotModel != "gpt-4o-mini" {
		t.Fatalf("expected model gpt-4o-mini in request, got %q", gotModel)
	}
}

func TestOpenAIProvider_EmptyChoice(t *testing.T) {
	var gotModel string
	server := newOpenAITestServer(t, "", &gotModel)
	defer server.Close()

	provider, err := NewOpenAIProvider("sk-test", server.URL+"/v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	model, _ := provider.Model("gpt-4o-mini")

	if _, err := model.GenerateContent(context.Background(), "prompt"); !errors.Is(err, errEmptyResponse) {
		t.Fatalf("expected errEmptyResponse, got %v", err)
	}
}

func TestOpenAIProvider_RejectsBlankModel(t *testing.T) {
	provider, err := NewOpenAIProvider("sk-test", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := provider.Model("  "); err == nil {
		t.Fatalf("expected blank model name to be rejected")
	}
}

func TestGeminiResponseText(t *testing.T) {
	resp := &googleai.GenerateContentResponse{
		Candidates: []*googleai.Candidate{{
			Content: &googleai.Content{Parts: []googleai.Part{googleai.Text(`{"skills":`), googleai.Text(`[]}`)}},
		}},
	}
	got, err := geminiResponseText(resp)
	if err != nil || got != `{"skills":[]}` {
		t.Fatalf("unexpected result %q, %v", got, err)
	}

	if _, err := geminiResponseText(&googleai.GenerateContentResponse{}); !errors.Is(err, errEmptyResponse) {
		t.Fatalf("expected errEmptyResponse, got %v", err)
	}
}

func TestVertexResponseText(t *testing.T) {
	resp := &vertexgenai.GenerateContentResponse{
		Candidates: []*vertexgenai.Candidate{{
			Content: &vertexgenai.Content{Parts: []vertexgenai.Part{vertexgenai.Text("hello "), vertexgenai.Text("world")}},
		}},
	}
	got, err := vertexResponseText(resp)
	if err != nil || got != "hello world" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}

	empty := &vertexgenai.GenerateContentResponse{
		Candidates: []*vertexgenai.Candidate{{Content: &vertexgenai.Content{}}},
	}
	if _, err := vertexResponseText(empty); !errors.Is(err, errEmptyResponse) {
		t.Fatalf("expected errEmptyResponse, got %v", err)
	}
}
