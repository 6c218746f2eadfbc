package repository_test

import (
	"testing"
	"time"

	"quiz_exam_backend/internal/model"
	"quiz_exam_backend/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestProgress(t *testing.T) (*repository.ProgressRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return repository.NewProgressRepository(rdb, time.Hour, time.Hour), mr
}

func TestTokenRoundTrip(t *testing.T) {
	repo, _ := newTestProgress(t)

	id := &repository.Identity{UserID: 42, Phone: "13800000001"}
	if err := repo.SaveToken("tok123", id); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	got, err := repo.GetToken("tok123")
	if err != nil {
		t.Fatalf("GetToken: %v", err)
	}
	if got == nil || got.UserID != 42 || got.Phone != "13800000001" {
		t.Fatalf("unexpected identity: %+v", got)
	}

	if err := repo.DeleteToken("tok123"); err != nil {
		t.Fatalf("DeleteToken: %v", err)
	}
	got, err = repo.GetToken("tok123")
	if err != nil {
		t.Fatalf("GetToken after delete: %v", err)
	}
	if got != nil {
		t.Fatal("token should be gone after delete")
	}
}

func TestTokenMissIsNotAnError(t *testing.T) {
	repo, _ := newTestProgress(t)

	got, err := repo.GetToken("unknown")
	if err != nil {
		t.Fatalf("miss should not error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil identity, got %+v", got)
	}
}

func TestProgressExpires(t *testing.T) {
	repo, mr := newTestProgress(t)

	p := &repository.Progress{
		SessionID:      9,
		UserID:         42,
		Order:          3,
		QuestionID:     77,
		TotalQuestions: 50,
		Mode:           model.ModeStudy,
	}
	if err := repo.SaveProgress(p); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}

	got, err := repo.GetProgress(9)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if got == nil || got.Order != 3 || got.QuestionID != 77 {
		t.Fatalf("unexpected progress: %+v", got)
	}

	mr.FastForward(2 * time.Hour)

	got, err = repo.GetProgress(9)
	if err != nil {
		t.Fatalf("GetProgress after expiry: %v", err)
	}
	if got != nil {
		t.Fatal("progress should have expired")
	}
}
