package llm

import (
	"context"
	"errors"
	"fmt"

	"resume-intake/internal/domain"

	"google.golang.org/genai"
)

// GenAIProvider uses the unified google.golang.org/genai SDK against the
// Gemini API backend.
type GenAIProvider struct {
	client *genai.Client
}

func NewGenAIProvider(ctx context.Context, apiKey string) (*GenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("GENAI_API_KEY is required for the genai provider")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GenAIProvider{client: client}, nil
}

// Model implements domain.ModelProvider.
func (p *GenAIProvider) Model(name string) (domain.GenerativeModel, error) {
	name, err := checkModelName(name)
	if err != nil {
		return nil, err
	}
	return &genAIModel{client: p.client, name: name}, nil
}

// Close is a no-op; the SDK client holds no closable resources.
func (p *GenAIProvider) Close() error {
	return nil
}

type genAIModel struct {
	client *genai.Client
	name   string
}

func (m *genAIModel) GenerateContent(ctx context.Context, prompt string) (string, error) {
	temperature := float32(extractionTemperature)
	resp, err := m.client.Models.GenerateContent(ctx, m.name, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
