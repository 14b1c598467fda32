package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"resume-intake/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

const (
	resumeTable = "resume_data"
	usersTable  = "users"
)

// TableClient is the PostgREST entry point shared by *supabase.Client and
// *postgrest.Client.
type TableClient interface {
	From(table string) *postgrest.QueryBuilder
}

// SupabaseResumeRepository implements domain.ResumeRepository over PostgREST.
type SupabaseResumeRepository struct {
	db     TableClient
	logger domain.Logger
}

// NewSupabaseResumeRepository creates a new Supabase resume repository
func NewSupabaseResumeRepository(db TableClient, logger domain.Logger) *SupabaseResumeRepository {
	return &SupabaseResumeRepository{
		db:     db,
		logger: logger,
	}
}

type resumeRow struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	ResumeText string `json:"resume_text"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Projects   string `json:"projects"`
	UploadedAt string `json:"uploaded_at"`
}

// Save inserts record and sets its ID from the returned row.
func (r *SupabaseResumeRepository) Save(ctx context.Context, record *domain.ResumeRecord) error {
	if r.db == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	data := map[string]interface{}{
		"user_id":     record.UserID,
		"resume_text": record.ResumeText,
		"skills":      record.Skills,
		"experience":  record.Experience,
		"education":   record.Education,
		"projects":    record.Projects,
		"uploaded_at": record.UploadedAt.UTC().Format(time.RFC3339Nano),
	}

	resp, _, err := r.db.From(resumeTable).Insert(data, false, "", "representation", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to insert resume: %w", err)
	}

	var rows []resumeRow
	if err := json.Unmarshal(resp, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("insert returned no rows")
	}

	record.ID = rows[0].ID
	r.logger.Info("Resume stored", "resume_id", record.ID, "user_id", record.UserID)
	return nil
}

// GetLatestByUserID returns the most recently uploaded resume for userID.
func (r *SupabaseResumeRepository) GetLatestByUserID(ctx context.Context, userID int64) (*domain.ResumeRecord, error) {
	if r.db == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	resp, _, err := r.db.From(resumeTable).
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Order("uploaded_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	var rows []resumeRow
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrResumeNotFound
	}

	return rows[0].toRecord(), nil
}

// MarkOnboarded clears the user's first login flag.
func (r *SupabaseResumeRepository) MarkOnboarded(ctx context.Context, userID int64) error {
	if r.db == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err := r.db.From(usersTable).
		Update(map[string]interface{}{"is_first_login": false}, "", "").
		Eq("id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (row resumeRow) toRecord() *domain.ResumeRecord {
	return &domain.ResumeRecord{
		ID:         row.ID,
		UserID:     row.UserID,
		ResumeText: row.ResumeText,
		Skills:     row.Skills,
		Experience: row.Experience,
		Education:  row.Education,
		Projects:   row.Projects,
		UploadedAt: parseTimestamp(row.UploadedAt),
	}
}

// PostgREST renders timestamp columns without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
}

func parseTimestamp(value string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
