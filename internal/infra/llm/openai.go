package llm

import (
	"context"
	"errors"
	"fmt"

	"resume-intake/internal/domain"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider serves chat completion models from any OpenAI compatible
// endpoint.
type OpenAIProvider struct {
	client *openai.Client
}

func NewOpenAIProvider(apiKey, baseURL string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required for the openai provider")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAIProvider{client: openai.NewClientWithConfig(config)}, nil
}

// Model implements domain.ModelProvider.
func (p *OpenAIProvider) Model(name string) (domain.GenerativeModel, error) {
	name, err := checkModelName(name)
	if err != nil {
		return nil, err
	}
	return &openAIModel{client: p.client, name: name}, nil
}

func (p *OpenAIProvider) Close() error {
	return nil
}

type openAIModel struct {
	client *openai.Client
	name   string
}

func (m *openAIModel) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       m.name,
		Temperature: extractionTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
