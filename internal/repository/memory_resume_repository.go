package repository

import (
	"context"
	"sync"

	"resume-intake/internal/domain"
)

// MemoryResumeRepository keeps records in process memory. It backs local runs
// without a database.
type MemoryResumeRepository struct {
	mu        sync.RWMutex
	records   []domain.ResumeRecord
	onboarded map[int64]bool
	nextID    int64
}

func NewMemoryResumeRepository() *MemoryResumeRepository {
	return &MemoryResumeRepository{onboarded: make(map[int64]bool)}
}

func (r *MemoryResumeRepository) Save(ctx context.Context, record *domain.ResumeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	record.ID = r.nextID
	r.records = append(r.records, *record)
	return nil
}

func (r *MemoryResumeRepository) GetLatestByUserID(ctx context.Context, userID int64) (*domain.ResumeRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.ResumeRecord
	for i := range r.records {
		rec := &r.records[i]
		if rec.UserID != userID {
			continue
		}
		if latest == nil || !rec.UploadedAt.Before(latest.UploadedAt) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, domain.ErrResumeNotFound
	}

	out := *latest
	return &out, nil
}

func (r *MemoryResumeRepository) MarkOnboarded(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.onboarded[userID] = true
	return nil
}

// IsOnboarded reports whether MarkOnboarded ran for userID.
func (r *MemoryResumeRepository) IsOnboarded(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.onboarded[userID]
}
