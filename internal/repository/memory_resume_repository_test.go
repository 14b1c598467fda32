package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-intake/internal/domain"
)

func TestMemoryResumeRepository(t *testing.T) {
	repo := NewMemoryResumeRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, err := repo.GetLatestByUserID(ctx, 1); !errors.Is(err, domain.ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}

	first := &domain.ResumeRecord{UserID: 1, ResumeText: "first", UploadedAt: base}
	other := &domain.ResumeRecord{UserID: 2, ResumeText: "other", UploadedAt: base.Add(time.Hour)}
	second := &domain.ResumeRecord{UserID: 1, ResumeText: "second", UploadedAt: base.Add(time.Minute)}
	for _, rec := range []*domain.ResumeRecord{first, other, second} {
		if err := repo.Save(ctx, rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if first.ID != 1 || other.ID != 2 || second.ID != 3 {
		t.Fatalf("expected sequential ids, got %d %d %d", first.ID, other.ID, second.ID)
	}

	latest, err := repo.GetLatestByUserID(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest.ResumeText != "second" {
		t.Fatalf("expected the latest record, got %q", latest.ResumeText)
	}

	latest.ResumeText = "mutated"
	again, _ := repo.GetLatestByUserID(ctx, 1)
	if again.ResumeText != "second" {
		t.Fatalf("returned records must be copies")
	}

	if repo.IsOnboarded(1) {
		t.Fatalf("user must not start onboarded")
	}
	if err := repo.MarkOnboarded(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.IsOnboarded(1) || repo.IsOnboarded(2) {
		t.Fatalf("unexpected onboarding state")
	}
}

func TestMemoryResumeRepository_SameTimestampPrefersLaterSave(t *testing.T) {
	repo := NewMemoryResumeRepository()
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	repo.Save(ctx, &domain.ResumeRecord{UserID: 5, ResumeText: "a", UploadedAt: at})
	repo.Save(ctx, &domain.ResumeRecord{UserID: 5, ResumeText: "b", UploadedAt: at})

	latest, err := repo.GetLatestByUserID(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest.ResumeText != "b" {
		t.Fatalf("expected the later save to win, got %q", latest.ResumeText)
	}
}
