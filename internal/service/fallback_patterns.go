package service

import (
	"regexp"
	"strings"
)

// skillKeywords are matched as lower-case substrings of the resume text.
// Order matters: matched keywords are reported in this order.
var skillKeywords = []string{
	"javascript", "python", "java", "c++", "c#", "php", "ruby", "go", "rust",
	"react", "angular", "vue", "node.js", "express", "django", "flask",
	"html", "css", "sass", "bootstrap", "tailwind",
	"sql", "mysql", "postgresql", "mongodb", "redis",
	"git", "docker", "kubernetes", "aws", "azure", "gcp",
	"linux", "windows", "macos",
	"agile", "scrum", "kanban", "typescript", "next.js", "redux",
}

// projectKeywords mark a line as describing a project.
var projectKeywords = []string{"project", "application", "system", "website", "app", "platform", "tool"}

// sectionSpace lists the characters a resume may use as whitespace around
// headers: ASCII spaces plus \v, NBSP, the Unicode space separators, line and
// paragraph separators and the BOM.
const sectionSpace = `\s\x{0B}\x{A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

// mustCompileSection compiles pattern with every \s widened to sectionSpace,
// inside and outside character classes.
func mustCompileSection(pattern string) *regexp.Regexp {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			i++
			if pattern[i] == 's' {
				if inClass {
					b.WriteString(sectionSpace)
				} else {
					b.WriteString("[" + sectionSpace + "]")
				}
				continue
			}
			b.WriteByte(c)
			b.WriteByte(pattern[i])
		case c == '[' && !inClass:
			inClass = true
			b.WriteByte(c)
		case c == ']' && inClass:
			inClass = false
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return regexp.MustCompile(b.String())
}

// isSectionSpace reports whether r is one of the sectionSpace characters.
func isSectionSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0xA0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

// Section patterns are tried in order and the first acceptable match wins.
// Each ends with the header that closes the section (or a final newline);
// RE2 has no lookahead, so the closing header is consumed but never captured.
var (
	skillsSectionPatterns = []*regexp.Regexp{
		mustCompileSection(`(?i)(?:SKILLS|skills|technical skills|technologies|competencies|expertise)([\s\S]*?)\n\s*(?:experience|EXPERIENCE|education|EDUCATION|projects|PROJECTS|certifications|CERTIFICATIONS|$)`),
		mustCompileSection(`(?i)(?:core competencies|key skills|programming skills)([\s\S]*?)\n\s*(?:experience|EXPERIENCE|$)`),
	}

	experiencePatterns = []*regexp.Regexp{
		mustCompileSection(`(?i)\n(WORK EXPERIENCE|work experience|professional experience|employment|EXPERIENCE|career|CAREER)\n([\s\S]*?)\n\s*(?:EDUCATION|education|projects|PROJECTS|skills|SKILLS|$)`),
		mustCompileSection(`(?i)\n(work history|career history|WORK HISTORY|CAREER HISTORY|professional background)\n([\s\S]*?)\n\s*(?:EDUCATION|education|$)`),
		mustCompileSection(`(?i)(?:EXPERIENCE|experience)([\s\S]*?)\n\s*(?:EDUCATION|education|projects|PROJECTS|$)`),
	}

	educationPatterns = []*regexp.Regexp{
		mustCompileSection(`(?i)\n(EDUCATION|education|academic background|qualifications|ACADEMIC|DEGREE)\n([\s\S]*?)\n\s*(?:PROJECTS|projects|experience|EXPERIENCE|skills|SKILLS|$)`),
		mustCompileSection(`(?i)\n(academic|degree|bachelor|master|phd|ACADEMIC|DEGREE|BACHELOR|MASTER|PHD)\n([\s\S]*?)\n\s*(?:PROJECTS|projects|$)`),
		mustCompileSection(`(?i)(?:EDUCATION|education)([\s\S]*?)\n\s*(?:PROJECTS|projects|experience|EXPERIENCE|$)`),
	}

	projectPatterns = []*regexp.Regexp{
		mustCompileSection(`(?i)\n(PROJECTS|projects|personal projects|key projects|portfolio|PORTFOLIO)\n([\s\S]*?)\n\s*(?:SKILLS|skills|experience|EXPERIENCE|education|EDUCATION|certifications|CERTIFICATIONS|$)`),
		mustCompileSection(`(?i)\n(project|portfolio|PROJECT|PORTFOLIO)\n([\s\S]*?)\n\s*(?:SKILLS|skills|certifications|CERTIFICATIONS|$)`),
		mustCompileSection(`(?i)(?:PROJECTS|projects)([\s\S]*?)\n\s*(?:SKILLS|skills|experience|EXPERIENCE|$)`),
	}
)

// Secondary scans used when no section header matched.
var (
	jobPatterns = []*regexp.Regexp{
		mustCompileSection(`(?i)(?:Software Developer|Developer|Engineer|Intern|Analyst|Manager|Lead|Senior|Junior|Full Stack|Frontend|Backend|DevOps|Data Scientist|Product Manager|Designer)`),
		mustCompileSection(`(?i)(?:at|@)\s*([A-Za-z\s&.,]+?)(?:\s*\||\s*\n|\s*,|\s*\(|\s*$)`),
	}

	degreePatterns = []*regexp.Regexp{
		mustCompileSection(`(?i)(?:Bachelor|B\.|Master|M\.|PhD|Doctorate|Bachelor's|Master's|Associate|A\.|Diploma|Certificate)(?:\s+of\s+|\s+in\s+)?([A-Za-z\s]+)`),
		mustCompileSection(`(?i)(?:Engineering|Computer Science|Information Technology|Business|Arts|Science|Mathematics|Physics|Chemistry|Biology)`),
	}

	skillSeparators = regexp.MustCompile(`[,\n•\-▪►→]`)
)
