package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-intake/internal/domain"
)

// Provider names accepted by AI_PROVIDER.
const (
	ProviderNone   = "none"
	ProviderGemini = "gemini"
	ProviderVertex = "vertex"
	ProviderGenAI  = "genai"
	ProviderOpenAI = "openai"
)

// extractionTemperature keeps structured answers stable between uploads.
const extractionTemperature = 0.2

var errEmptyResponse = errors.New("model returned no text")

// NewProvider builds the model provider selected in cfg. It returns a nil
// provider and no error when AI extraction is disabled.
func NewProvider(ctx context.Context, cfg domain.Config) (domain.ModelProvider, error) {
	switch name := strings.ToLower(strings.TrimSpace(cfg.GetAIProvider())); name {
	case "", ProviderNone:
		return nil, nil
	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg.GetGenAIAPIKey())
	case ProviderVertex:
		return NewVertexProvider(ctx, cfg.GetGoogleCloudProject(), cfg.GetGoogleCloudLocation())
	case ProviderGenAI:
		return NewGenAIProvider(ctx, cfg.GetGenAIAPIKey())
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.GetOpenAIAPIKey(), cfg.GetOpenAIBaseURL())
	default:
		return nil, fmt.Errorf("unknown AI provider %q", name)
	}
}

// checkModelName rejects identifiers no backend can serve.
func checkModelName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("model name is empty")
	}
	return name, nil
}
