package repository_test

import (
	"testing"
	"time"

	"quiz_exam_backend/internal/model"
	"quiz_exam_backend/internal/repository"
)

func TestUpsertAnswerOverwrites(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewAnswerRepository(db)

	now := time.Now()
	first := &model.UserAnswer{SessionID: 1, QuestionID: 2, Answer: "A", IsCorrect: false, AnsweredAt: now}
	if err := repo.UpsertAnswer(first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &model.UserAnswer{SessionID: 1, QuestionID: 2, Answer: "B", IsCorrect: true, AnsweredAt: now.Add(time.Minute)}
	if err := repo.UpsertAnswer(second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	if err := db.Model(&model.UserAnswer{}).Where("session_id = ? AND question_id = ?", 1, 2).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 answer row, got %d", count)
	}

	got, err := repo.FindAnswer(1, 2)
	if err != nil {
		t.Fatalf("FindAnswer: %v", err)
	}
	if got.Answer != "B" || !got.IsCorrect {
		t.Errorf("latest answer not retained: %+v", got)
	}
}

func TestUpsertStatIncrementsPerSubmission(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewAnswerRepository(db)

	now := time.Now()
	if err := repo.UpsertStat(1, 2, false, now); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertStat(1, 2, true, now.Add(time.Minute)); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if err := repo.UpsertStat(1, 2, true, now.Add(2*time.Minute)); err != nil {
		t.Fatalf("third upsert: %v", err)
	}

	stat, err := repo.FindStat(1, 2)
	if err != nil {
		t.Fatalf("FindStat: %v", err)
	}
	if stat.TotalAttempts != 3 {
		t.Errorf("totalAttempts = %d, want 3", stat.TotalAttempts)
	}
	if stat.CorrectAttempts != 2 {
		t.Errorf("correctAttempts = %d, want 2", stat.CorrectAttempts)
	}
	if !stat.LastIsCorrect {
		t.Error("lastIsCorrect should reflect the latest attempt")
	}
}

func TestListWrongQuestions(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewAnswerRepository(db)

	wrongQ := seedQuestion(t, db, model.SingleChoice, "做错的题", "A", "科技", "")
	rightQ := seedQuestion(t, db, model.SingleChoice, "做对的题", "B", "科技", "")

	session := &model.ExamSession{UserID: 1, Mode: model.ModeStudy, Status: model.SessionCompleted, StartedAt: time.Now()}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	now := time.Now()
	if err := repo.UpsertAnswer(&model.UserAnswer{SessionID: session.ID, QuestionID: wrongQ.ID, Answer: "C", IsCorrect: false, AnsweredAt: now}); err != nil {
		t.Fatalf("upsert answer: %v", err)
	}
	if err := repo.UpsertStat(1, wrongQ.ID, false, now); err != nil {
		t.Fatalf("upsert stat: %v", err)
	}
	if err := repo.UpsertStat(1, rightQ.ID, true, now); err != nil {
		t.Fatalf("upsert stat: %v", err)
	}

	rows, err := repo.ListWrongQuestions(1)
	if err != nil {
		t.Fatalf("ListWrongQuestions: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 wrong question, got %d", len(rows))
	}
	if rows[0].Question.ID != wrongQ.ID {
		t.Errorf("wrong question id = %d, want %d", rows[0].Question.ID, wrongQ.ID)
	}
	if rows[0].LastAnswer != "C" {
		t.Errorf("lastAnswer = %q, want C", rows[0].LastAnswer)
	}
	if rows[0].Answer != "A" {
		t.Errorf("correctAnswer = %q, want A", rows[0].Answer)
	}
}

// 同一道题跨会话重做时，错题本展示的是最近一次的作答，
// 且不会混入其他用户的答案
func TestListWrongQuestionsPicksLatestAttemptAcrossSessions(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewAnswerRepository(db)

	q := seedQuestion(t, db, model.SingleChoice, "反复做错的题", "A", "科技", "")

	now := time.Now()
	newSession := func(userID uint) *model.ExamSession {
		s := &model.ExamSession{UserID: userID, Mode: model.ModeStudy, Status: model.SessionCompleted, StartedAt: now}
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("seed session: %v", err)
		}
		return s
	}

	first := newSession(1)
	second := newSession(1)
	other := newSession(2)

	if err := repo.UpsertAnswer(&model.UserAnswer{SessionID: first.ID, QuestionID: q.ID, Answer: "B", IsCorrect: false, AnsweredAt: now}); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if err := repo.UpsertAnswer(&model.UserAnswer{SessionID: second.ID, QuestionID: q.ID, Answer: "D", IsCorrect: false, AnsweredAt: now.Add(time.Hour)}); err != nil {
		t.Fatalf("second answer: %v", err)
	}
	// 其他用户更晚的作答不应出现在本人的错题本里
	if err := repo.UpsertAnswer(&model.UserAnswer{SessionID: other.ID, QuestionID: q.ID, Answer: "C", IsCorrect: false, AnsweredAt: now.Add(2 * time.Hour)}); err != nil {
		t.Fatalf("other user answer: %v", err)
	}

	if err := repo.UpsertStat(1, q.ID, false, now); err != nil {
		t.Fatalf("first stat: %v", err)
	}
	if err := repo.UpsertStat(1, q.ID, false, now.Add(time.Hour)); err != nil {
		t.Fatalf("second stat: %v", err)
	}

	rows, err := repo.ListWrongQuestions(1)
	if err != nil {
		t.Fatalf("ListWrongQuestions: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 wrong question, got %d", len(rows))
	}
	if rows[0].LastAnswer != "D" {
		t.Errorf("lastAnswer = %q, want latest attempt D", rows[0].LastAnswer)
	}
	if rows[0].Attempts != 2 {
		t.Errorf("attempts = %d, want 2", rows[0].Attempts)
	}
}
