package service

import (
	"context"
	"strings"

	"resume-intake/internal/domain"
)

// ResumeExtractor prefers AI extraction and falls back to patterns. It never
// returns an error.
type ResumeExtractor struct {
	ai       domain.FieldExtractor
	fallback *FallbackExtractor
	logger   domain.Logger
}

// NewResumeExtractor creates an orchestrator. ai may be nil, in which case
// only the pattern extractor runs.
func NewResumeExtractor(ai domain.FieldExtractor, fallback *FallbackExtractor, logger domain.Logger) *ResumeExtractor {
	return &ResumeExtractor{
		ai:       ai,
		fallback: fallback,
		logger:   logger,
	}
}

// Extract returns normalized fields for text along with the method used.
func (r *ResumeExtractor) Extract(ctx context.Context, text string) domain.ExtractionResult {
	if r.ai != nil {
		fields, err := r.ai.Extract(ctx, text)
		if err == nil && fields != nil {
			r.logger.Info("AI extraction successful", "skills_count", len(fields.Skills))
			return domain.ExtractionResult{Fields: normalizeFields(*fields), Method: domain.ExtractionMethodAI}
		}
		r.logger.Warn("AI extraction failed, falling back to pattern extraction", "error", err, "ai_error", IsAIError(err))
	}

	return domain.ExtractionResult{
		Fields: normalizeFields(r.fallback.Extract(text)),
		Method: domain.ExtractionMethodFallback,
	}
}

// normalizeFields enforces the stored invariants: unique non-empty skills and
// bounded, non-empty prose. Applying it twice changes nothing.
func normalizeFields(fields domain.ResumeFields) domain.ResumeFields {
	skills := make([]string, 0, len(fields.Skills))
	for _, skill := range fields.Skills {
		if skill != "" {
			skills = append(skills, skill)
		}
	}

	return domain.ResumeFields{
		Skills:     dedupeSkills(skills),
		Experience: normalizeProse(fields.Experience, experienceRule),
		Education:  normalizeProse(fields.Education, educationRule),
		Projects:   normalizeProse(fields.Projects, projectsRule),
	}
}

func normalizeProse(value string, rule sectionRule) string {
	if strings.TrimSpace(value) == "" {
		return domain.NotSpecified
	}
	return boundText(value, rule.maxLength, rule.ellipsis)
}
