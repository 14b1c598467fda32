package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-intake/internal/domain"

	googleai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider serves models from the Gemini developer API.
type GeminiProvider struct {
	client *googleai.Client
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("GENAI_API_KEY is required for the gemini provider")
	}

	client, err := googleai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiProvider{client: client}, nil
}

// Model implements domain.ModelProvider.
func (p *GeminiProvider) Model(name string) (domain.GenerativeModel, error) {
	name, err := checkModelName(name)
	if err != nil {
		return nil, err
	}

	model := p.client.GenerativeModel(name)
	model.SetTemperature(extractionTemperature)
	return &geminiModel{model: model}, nil
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

type geminiModel struct {
	model *googleai.GenerativeModel
}

func (m *geminiModel) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := m.model.GenerateContent(ctx, googleai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return geminiResponseText(resp)
}

func geminiResponseText(resp *googleai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(googleai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", errEmptyResponse
	}
	return b.String(), nil
}
