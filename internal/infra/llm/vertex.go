package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-intake/internal/domain"

	"cloud.google.com/go/vertexai/genai"
)

// VertexProvider serves Gemini models through Vertex AI using application
// default credentials.
type VertexProvider struct {
	client *genai.Client
}

func NewVertexProvider(ctx context.Context, projectID, location string) (*VertexProvider, error) {
	if projectID == "" {
		return nil, errors.New("GOOGLE_CLOUD_PROJECT is required for the vertex provider")
	}
	if location == "" {
		location = "us-central1"
	}

	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}

	return &VertexProvider{client: client}, nil
}

// Model implements domain.ModelProvider.
func (p *VertexProvider) Model(name string) (domain.GenerativeModel, error) {
	name, err := checkModelName(name)
	if err != nil {
		return nil, err
	}

	model := p.client.GenerativeModel(name)
	model.SetTemperature(extractionTemperature)
	return &vertexModel{model: model}, nil
}

func (p *VertexProvider) Close() error {
	return p.client.Close()
}

type vertexModel struct {
	model *genai.GenerativeModel
}

func (m *vertexModel) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return vertexResponseText(resp)
}

func vertexResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", errEmptyResponse
	}
	return b.String(), nil
}
