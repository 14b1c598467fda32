package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"resume-intake/internal/domain"
)

func TestResumeExtractor_FallsBackOnAnyAIError(t *testing.T) {
	fallback := NewFallbackExtractor(NewMockLogger())
	want := fallback.Extract(sampleResume)

	for _, aiErr := range []error{
		domain.ErrNoModelAvailable,
		domain.ErrModelCall,
		domain.ErrResponseParse,
		domain.ErrInvalidResponseShape,
		errors.New("unexpected transport failure"),
	} {
		t.Run(aiErr.Error(), func(t *testing.T) {
			ai := &MockFieldExtractor{err: aiErr}
			orchestrator := NewResumeExtractor(ai, fallback, NewMockLogger())

			result := orchestrator.Extract(context.Background(), sampleResume)

			if result.Method != domain.ExtractionMethodFallback {
				t.Fatalf("expected fallback method, got %s", result.Method)
			}
			if !reflect.DeepEqual(result.Fields, want) {
				t.Fatalf("expected fallback output\n got %+v\nwant %+v", result.Fields, want)
			}
			if ai.calls != 1 {
				t.Fatalf("expected a single AI attempt, got %d", ai.calls)
			}
		})
	}
}

func TestResumeExtractor_NilAIUsesFallback(t *testing.T) {
	fallback := NewFallbackExtractor(NewMockLogger())
	orchestrator := NewResumeExtractor(nil, fallback, NewMockLogger())

	result := orchestrator.Extract(context.Background(), sampleResume)

	if result.Method != domain.ExtractionMethodFallback {
		t.Fatalf("expected fallback method, got %s", result.Method)
	}
	if !reflect.DeepEqual(result.Fields, fallback.Extract(sampleResume)) {
		t.Fatalf("expected fallback output, got %+v", result.Fields)
	}
}

func TestResumeExtractor_AIResultNormalized(t *testing.T) {
	ai := &MockFieldExtractor{fields: &domain.ResumeFields{
		Skills:     []string{"Go", "Go", "", "Rust"},
		Experience: "   ",
		Education:  strings.Repeat("e", 700),
		Projects:   strings.Repeat("p", 900),
	}}
	orchestrator := NewResumeExtractor(ai, NewFallbackExtractor(NewMockLogger()), NewMockLogger())

	result := orchestrator.Extract(context.Background(), "text")

	if result.Method != domain.ExtractionMethodAI {
		t.Fatalf("expected ai method, got %s", result.Method)
	}
	if !reflect.DeepEqual(result.Fields.Skills, []string{"Go", "Rust"}) {
		t.Fatalf("unexpected skills: %v", result.Fields.Skills)
	}
	if result.Fields.Experience != domain.NotSpecified {
		t.Fatalf("expected blank experience to become %q, got %q", domain.NotSpecified, result.Fields.Experience)
	}
	if utf8.RuneCountInString(result.Fields.Education) != domain.MaxEducationLength {
		t.Fatalf("expected education bounded to %d", domain.MaxEducationLength)
	}
	if utf8.RuneCountInString(result.Fields.Projects) != domain.MaxProjectsLength || !strings.HasSuffix(result.Fields.Projects, "...") {
		t.Fatalf("expected projects bounded with ellipsis, got %d runes", utf8.RuneCountInString(result.Fields.Projects))
	}
}

func TestResumeExtractor_AIEmptySkillsGetSentinel(t *testing.T) {
	ai := &MockFieldExtractor{fields: &domain.ResumeFields{
		Skills:     []string{},
		Experience: "Not specified",
		Education:  "Not specified",
		Projects:   "Not specified",
	}}
	orchestrator := NewResumeExtractor(ai, NewFallbackExtractor(NewMockLogger()), NewMockLogger())

	result := orchestrator.Extract(context.Background(), "text")

	if !reflect.DeepEqual(result.Fields.Skills, []string{domain.SkillsSentinel}) {
		t.Fatalf("expected sentinel skills, got %v", result.Fields.Skills)
	}
}

func TestNormalizeFields_Idempotent(t *testing.T) {
	inputs := []domain.ResumeFields{
		NewFallbackExtractor(NewMockLogger()).Extract(sampleResume),
		{Skills: []string{"a", "a"}, Experience: strings.Repeat("x", 2000), Education: "", Projects: "p"},
		{},
	}

	for i, in := range inputs {
		once := normalizeFields(in)
		twice := normalizeFields(once)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("input %d: normalization is not idempotent:\n%+v\n%+v", i, once, twice)
		}
	}
}
