package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resume-intake/internal/domain"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// OpenPostgres opens and pings a pooled connection to dsn.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return db, nil
}

// PostgresResumeRepository implements domain.ResumeRepository with database/sql.
type PostgresResumeRepository struct {
	db     *sql.DB
	logger domain.Logger
}

func NewPostgresResumeRepository(db *sql.DB, logger domain.Logger) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db, logger: logger}
}

const (
	insertResumeQuery = `INSERT INTO resume_data (user_id, resume_text, skills, experience, education, projects, uploaded_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING id`

	latestResumeQuery = `SELECT id, user_id, resume_text, COALESCE(skills, ''), COALESCE(experience, ''),
                     COALESCE(education, ''), COALESCE(projects, ''), uploaded_at
              FROM resume_data
              WHERE user_id = $1
              ORDER BY uploaded_at DESC, id DESC
              LIMIT 1`

	markOnboardedQuery = `UPDATE users SET is_first_login = false WHERE id = $1`
)

func (r *PostgresResumeRepository) Save(ctx context.Context, record *domain.ResumeRecord) error {
	err := r.db.QueryRowContext(ctx, insertResumeQuery,
		record.UserID,
		record.ResumeText,
		nullIfEmpty(record.Skills),
		nullIfEmpty(record.Experience),
		nullIfEmpty(record.Education),
		nullIfEmpty(record.Projects),
		record.UploadedAt,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to insert resume: %w", err)
	}

	r.logger.Info("Resume stored", "resume_id", record.ID, "user_id", record.UserID)
	return nil
}

func (r *PostgresResumeRepository) GetLatestByUserID(ctx context.Context, userID int64) (*domain.ResumeRecord, error) {
	var record domain.ResumeRecord
	err := r.db.QueryRowContext(ctx, latestResumeQuery, userID).Scan(
		&record.ID,
		&record.UserID,
		&record.ResumeText,
		&record.Skills,
		&record.Experience,
		&record.Education,
		&record.Projects,
		&record.UploadedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrResumeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &record, nil
}

func (r *PostgresResumeRepository) MarkOnboarded(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx, markOnboardedQuery, userID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		r.logger.Warn("No user row updated for onboarding flag", "user_id", userID)
	}
	return nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
