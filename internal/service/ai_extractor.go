package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"resume-intake/internal/domain"
)

const resumePromptTemplate = `
Extract the following information from the resume text. Return as JSON with these keys:
- skills: array of technical skills and technologies
- experience: summary of work experience and job roles
- education: summary of education and qualifications
- projects: summary of projects and achievements

Be specific and extract actual information from the resume. If a section is not found, use "Not specified".

Resume text:
%s
`

var codeFencePattern = regexp.MustCompile("```json\n?|\n?```")

// AIExtractor asks a generative model for structured resume fields.
type AIExtractor struct {
	provider domain.ModelProvider
	models   []string
	logger   domain.Logger
}

// NewAIExtractor creates an extractor that tries models in order.
func NewAIExtractor(provider domain.ModelProvider, models []string, logger domain.Logger) *AIExtractor {
	return &AIExtractor{
		provider: provider,
		models:   append([]string(nil), models...),
		logger:   logger,
	}
}

// Extract implements domain.FieldExtractor.
func (a *AIExtractor) Extract(ctx context.Context, text string) (*domain.ResumeFields, error) {
	model, name, err := a.selectModel()
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Requesting structured extraction", "model", name, "text_length", len(text))

	raw, err := model.GenerateContent(ctx, buildResumePrompt(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrModelCall, name, err)
	}

	a.logger.Debug("Model response received", "model", name, "response_length", len(raw))

	return parseModelResponse(raw)
}

// selectModel returns the first candidate the provider can instantiate.
func (a *AIExtractor) selectModel() (domain.GenerativeModel, string, error) {
	for _, name := range a.models {
		model, err := a.provider.Model(name)
		if err != nil {
			a.logger.Debug("Model not available, trying next", "model", name, "error", err)
			continue
		}
		return model, name, nil
	}
	return nil, "", domain.ErrNoModelAvailable
}

func buildResumePrompt(text string) string {
	return fmt.Sprintf(resumePromptTemplate, text)
}

func stripCodeFences(raw string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(strings.TrimSpace(raw), ""))
}

// parseModelResponse decodes a model answer into ResumeFields. Only the
// skills array is validated; prose fields are coerced to strings.
func parseModelResponse(raw string) (*domain.ResumeFields, error) {
	var parsed any
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrResponseParse, err)
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level value is not an object", domain.ErrInvalidResponseShape)
	}

	rawSkills, ok := obj["skills"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: skills is missing or not an array", domain.ErrInvalidResponseShape)
	}

	fields := &domain.ResumeFields{
		Skills:     make([]string, 0, len(rawSkills)),
		Experience: proseValue(obj["experience"]),
		Education:  proseValue(obj["education"]),
		Projects:   proseValue(obj["projects"]),
	}
	for _, item := range rawSkills {
		if skill := strings.TrimSpace(scalarString(item)); skill != "" {
			fields.Skills = append(fields.Skills, skill)
		}
	}

	return fields, nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// proseValue flattens a model supplied field into a single string.
func proseValue(v any) string {
	switch t := v.(type) {
	case nil:
		return domain.NotSpecified
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(proseValue(item)); s != "" && s != domain.NotSpecified {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return domain.NotSpecified
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return domain.NotSpecified
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

// IsAIError reports whether err came from the AI extraction path.
func IsAIError(err error) bool {
	return errors.Is(err, domain.ErrNoModelAvailable) ||
		errors.Is(err, domain.ErrModelCall) ||
		errors.Is(err, domain.ErrResponseParse) ||
		errors.Is(err, domain.ErrInvalidResponseShape)
}
