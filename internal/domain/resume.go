package domain

import (
	"time"
)

// Accepted resume media types
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Placeholder values stored when no data is located for a field
const (
	SkillsSentinel     = "Skills to be updated"
	ExperienceNotFound = "No work experience information found"
	EducationNotFound  = "No education information found"
	ProjectsNotFound   = "No projects information found"
	NotSpecified       = "Not specified"
)

// Upper bounds (in runes) for the prose fields, ellipsis included
const (
	MaxExperienceLength = 800
	MaxEducationLength  = 500
	MaxProjectsLength   = 600
)

// ResumeDocument is an uploaded file. It only lives for one upload request.
type ResumeDocument struct {
	Data     []byte
	MimeType string
	Filename string
}

// ResumeFields is the structured data extracted from resume text.
type ResumeFields struct {
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Education  string   `json:"education"`
	Projects   string   `json:"projects"`
}

// ExtractionMethod tells which extractor produced a ResumeFields value.
type ExtractionMethod string

const (
	ExtractionMethodAI       ExtractionMethod = "ai"
	ExtractionMethodFallback ExtractionMethod = "fallback"
)

// ExtractionResult is what the orchestrator hands back to callers.
type ExtractionResult struct {
	Fields ResumeFields     `json:"fields"`
	Method ExtractionMethod `json:"method"`
}

// ResumeRecord is the persisted form of a processed upload (resume_data row).
// Skills holds a JSON array encoded as a string.
type ResumeRecord struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ResumeText string    `json:"resume_text"`
	Skills     string    `json:"skills"`
	Experience string    `json:"experience"`
	Education  string    `json:"education"`
	Projects   string    `json:"projects"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ResumeProcessedEvent is published after a record has been stored.
type ResumeProcessedEvent struct {
	EventID     string           `json:"event_id"`
	UserID      int64            `json:"user_id"`
	ResumeID    int64            `json:"resume_id"`
	Method      ExtractionMethod `json:"method"`
	SkillsCount int              `json:"skills_count"`
	TextLength  int              `json:"text_length"`
	OccurredAt  time.Time        `json:"occurred_at"`
}
