package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"resume-intake/internal/domain"
)

const (
	maxSectionSkills = 15
	maxJobMatches    = 3
	maxDegreeMatches = 2
	maxProjectLines  = 3
)

// sectionRule describes how one prose field is located by header patterns.
type sectionRule struct {
	patterns  []*regexp.Regexp
	minLength int
	maxLength int
	ellipsis  bool
}

var (
	experienceRule = sectionRule{patterns: experiencePatterns, minLength: 20, maxLength: domain.MaxExperienceLength, ellipsis: true}
	educationRule  = sectionRule{patterns: educationPatterns, minLength: 10, maxLength: domain.MaxEducationLength}
	projectsRule   = sectionRule{patterns: projectPatterns, minLength: 20, maxLength: domain.MaxProjectsLength, ellipsis: true}
)

// FallbackExtractor derives ResumeFields from keyword lists and section
// header patterns. It makes no external calls.
type FallbackExtractor struct {
	logger domain.Logger
}

// NewFallbackExtractor creates a pattern based extractor.
func NewFallbackExtractor(logger domain.Logger) *FallbackExtractor {
	return &FallbackExtractor{logger: logger}
}

// Extract always returns populated fields; sentinels fill whatever is missing.
func (f *FallbackExtractor) Extract(text string) domain.ResumeFields {
	fields := domain.ResumeFields{
		Skills:     f.extractSkills(text),
		Experience: f.extractExperience(text),
		Education:  f.extractEducation(text),
		Projects:   f.extractProjects(text),
	}

	f.logger.Debug("Fallback extraction result",
		"text_length", len(text),
		"skills_count", len(fields.Skills),
		"experience_length", utf8.RuneCountInString(fields.Experience),
		"education_length", utf8.RuneCountInString(fields.Education),
		"projects_length", utf8.RuneCountInString(fields.Projects),
	)

	return fields
}

func (f *FallbackExtractor) extractSkills(text string) []string {
	lowerText := strings.ToLower(text)

	var skills []string
	for _, keyword := range skillKeywords {
		if strings.Contains(lowerText, keyword) {
			skills = append(skills, keyword)
		}
	}

	for _, pattern := range skillsSectionPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil || m[1] == "" {
			continue
		}

		var extra []string
		for _, fragment := range skillSeparators.Split(m[1], -1) {
			fragment = strings.TrimFunc(fragment, isSectionSpace)
			if isSectionSkill(fragment) {
				extra = append(extra, fragment)
			}
		}
		if len(extra) > maxSectionSkills {
			extra = extra[:maxSectionSkills]
		}
		skills = append(skills, extra...)
		break
	}

	return dedupeSkills(skills)
}

// isSectionSkill filters fragments split out of a skills section. Fragments
// that restate a known keyword are dropped since the keyword scan covers them.
func isSectionSkill(fragment string) bool {
	n := utf8.RuneCountInString(fragment)
	if n <= 1 || n >= 50 {
		return false
	}
	if strings.Contains(fragment, "—") || strings.Contains(fragment, "•") {
		return false
	}

	lower := strings.ToLower(fragment)
	for _, keyword := range skillKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}
	return true
}

func (f *FallbackExtractor) extractExperience(text string) string {
	if section, ok := findSection(text, experienceRule); ok {
		return section
	}

	var jobs []string
	for _, pattern := range jobPatterns {
		jobs = append(jobs, pattern.FindAllString(text, maxJobMatches)...)
	}
	if len(jobs) > 0 {
		return boundText(strings.Join(jobs, ", "), experienceRule.maxLength, experienceRule.ellipsis)
	}

	return domain.ExperienceNotFound
}

func (f *FallbackExtractor) extractEducation(text string) string {
	if section, ok := findSection(text, educationRule); ok {
		return section
	}

	var degrees []string
	for _, pattern := range degreePatterns {
		degrees = append(degrees, pattern.FindAllString(text, maxDegreeMatches)...)
	}
	if len(degrees) > 0 {
		return boundText(strings.Join(degrees, ", "), educationRule.maxLength, educationRule.ellipsis)
	}

	return domain.EducationNotFound
}

func (f *FallbackExtractor) extractProjects(text string) string {
	if section, ok := findSection(text, projectsRule); ok {
		return section
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if len(lines) == maxProjectLines {
			break
		}
		n := utf8.RuneCountInString(line)
		if n > 20 && n < 200 && containsAny(strings.ToLower(line), projectKeywords) {
			lines = append(lines, line)
		}
	}
	if len(lines) > 0 {
		return boundText(strings.Join(lines, ". "), projectsRule.maxLength, projectsRule.ellipsis)
	}

	return domain.ProjectsNotFound
}

// findSection tries the rule's patterns in order. For each match the body
// group is preferred; the header group is used when the body is too short.
func findSection(text string, rule sectionRule) (string, bool) {
	for _, pattern := range rule.patterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		for _, group := range []int{2, 1} {
			if group >= len(m) {
				continue
			}
			candidate := strings.TrimFunc(m[group], isSectionSpace)
			if utf8.RuneCountInString(candidate) > rule.minLength {
				return boundText(collapseWhitespace(candidate), rule.maxLength, rule.ellipsis), true
			}
		}
	}
	return "", false
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSectionSpace), " ")
}

// boundText cuts s to at most max runes. With ellipsis the cut text ends in
// "..." and the marker counts toward max.
func boundText(s string, max int, ellipsis bool) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if ellipsis {
		return string(runes[:max-3]) + "..."
	}
	return string(runes[:max])
}

func dedupeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		out = append(out, skill)
	}
	if len(out) == 0 {
		return []string{domain.SkillsSentinel}
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
