package repository_test

import (
	"path/filepath"
	"testing"

	"quiz_exam_backend/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.PhoneWhitelist{},
		&model.Question{},
		&model.ExamSession{},
		&model.ExamQuestion{},
		&model.UserAnswer{},
		&model.UserQuestionStat{},
		&model.ExamResult{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedQuestion(t *testing.T, db *gorm.DB, qType model.QuestionType, content, answer, categoryBig, categorySmall string) *model.Question {
	t.Helper()
	q := &model.Question{
		Type:          qType,
		Content:       content,
		Answer:        answer,
		CategoryBig:   categoryBig,
		CategorySmall: categorySmall,
	}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return q
}
