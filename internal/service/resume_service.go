package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resume-intake/internal/domain"

	"github.com/google/uuid"
)

// ResumeService runs the upload use case: text, fields, storage, onboarding
// flag and the processed event.
type ResumeService struct {
	text      *TextExtractor
	extractor *ResumeExtractor
	repo      domain.ResumeRepository
	publisher domain.EventPublisher
	logger    domain.Logger
	now       func() time.Time
}

func NewResumeService(
	text *TextExtractor,
	extractor *ResumeExtractor,
	repo domain.ResumeRepository,
	publisher domain.EventPublisher,
	logger domain.Logger,
) *ResumeService {
	return &ResumeService{
		text:      text,
		extractor: extractor,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Upload processes and stores a resume for user. Only text extraction and
// storage failures are returned; event publishing is best effort.
func (s *ResumeService) Upload(ctx context.Context, user domain.SessionUser, doc domain.ResumeDocument) (*domain.ResumeRecord, error) {
	resumeText, err := s.text.ExtractText(ctx, doc)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Extracted text from file", "user_id", user.ID, "filename", doc.Filename, "text_length", len(resumeText))

	result := s.extractor.Extract(ctx, resumeText)

	skillsJSON, err := json.Marshal(result.Fields.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}

	record := &domain.ResumeRecord{
		UserID:     user.ID,
		ResumeText: resumeText,
		Skills:     string(skillsJSON),
		Experience: result.Fields.Experience,
		Education:  result.Fields.Education,
		Projects:   result.Fields.Projects,
		UploadedAt: s.now().UTC(),
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}

	if err := s.repo.MarkOnboarded(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to update user onboarding: %w", err)
	}

	event := &domain.ResumeProcessedEvent{
		EventID:     uuid.NewString(),
		UserID:      user.ID,
		ResumeID:    record.ID,
		Method:      result.Method,
		SkillsCount: len(result.Fields.Skills),
		TextLength:  len(resumeText),
		OccurredAt:  record.UploadedAt,
	}
	if err := s.publisher.PublishResumeProcessed(ctx, event); err != nil {
		s.logger.Error("Failed to publish resume processed event", err, "user_id", user.ID, "resume_id", record.ID)
	}

	s.logger.Info("Resume processed", "user_id", user.ID, "resume_id", record.ID, "method", result.Method)
	return record, nil
}

// Latest returns the most recent resume stored for userID.
func (s *ResumeService) Latest(ctx context.Context, userID int64) (*domain.ResumeRecord, error) {
	record, err := s.repo.GetLatestByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// DecodeSkills returns the skills array stored in a record.
func DecodeSkills(record *domain.ResumeRecord) ([]string, error) {
	if record.Skills == "" {
		return []string{}, nil
	}
	var skills []string
	if err := json.Unmarshal([]byte(record.Skills), &skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}
	return skills, nil
}
