package service_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"quiz_exam_backend/internal/config"
	"quiz_exam_backend/internal/model"
	"quiz_exam_backend/internal/repository"
	"quiz_exam_backend/internal/service"
	"quiz_exam_backend/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	redis    *miniredis.Miniredis
	cfg      *config.Config
	progress *repository.ProgressRepository
	auth     *service.AuthService
	exam     *service.ExamService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger.Log = zap.NewNop()

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

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		Quiz: config.QuizConfig{
			JudgmentCount:       20,
			SingleChoiceCount:   20,
			MultipleChoiceCount: 10,
		},
		Session: config.SessionConfig{
			TokenTTL:    time.Hour,
			ProgressTTL: time.Hour,
		},
	}

	live := config.NewLive(cfg)
	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	progress := repository.NewProgressRepository(rdb, cfg.Session.TokenTTL, cfg.Session.ProgressTTL)
	selector := service.NewQuestionSelector(questionRepo, live)

	return &testEnv{
		db:       db,
		redis:    mr,
		cfg:      cfg,
		progress: progress,
		auth:     service.NewAuthService(userRepo, progress, live),
		exam:     service.NewExamService(sessionRepo, questionRepo, answerRepo, progress, selector),
	}
}

// seedBank 按题型数量灌题库，答案固定便于测试判分
func (e *testEnv) seedBank(t *testing.T, judgment, single, multiple int, categoryBig string) {
	t.Helper()
	for i := 0; i < judgment; i++ {
		e.seedQuestion(t, model.Judgment, fmt.Sprintf("判断题%s-%d", categoryBig, i), "对", categoryBig)
	}
	for i := 0; i < single; i++ {
		e.seedQuestion(t, model.SingleChoice, fmt.Sprintf("单选题%s-%d", categoryBig, i), "A", categoryBig)
	}
	for i := 0; i < multiple; i++ {
		e.seedQuestion(t, model.MultipleChoice, fmt.Sprintf("多选题%s-%d", categoryBig, i), "AC", categoryBig)
	}
}

func (e *testEnv) seedQuestion(t *testing.T, qType model.QuestionType, content, answer, categoryBig string) *model.Question {
	t.Helper()
	q := &model.Question{
		Type:        qType,
		Content:     content,
		Answer:      answer,
		CategoryBig: categoryBig,
	}
	if err := e.db.Create(q).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return q
}

func (e *testEnv) seedStat(t *testing.T, userID, questionID uint, correct bool, at time.Time) {
	t.Helper()
	correctAttempts := 0
	if correct {
		correctAttempts = 1
	}
	err := e.db.Create(&model.UserQuestionStat{
		UserID:          userID,
		QuestionID:      questionID,
		TotalAttempts:   1,
		CorrectAttempts: correctAttempts,
		LastIsCorrect:   correct,
		LastAttemptAt:   at,
	}).Error
	if err != nil {
		t.Fatalf("seed stat: %v", err)
	}
}

func (e *testEnv) whitelist(t *testing.T, phone string) {
	t.Helper()
	if err := e.db.Create(&model.PhoneWhitelist{Phone: phone}).Error; err != nil {
		t.Fatalf("seed whitelist: %v", err)
	}
}

func (e *testEnv) sessionQuestions(t *testing.T, sessionID uint) []model.Question {
	t.Helper()
	var qs []model.Question
	err := e.db.Model(&model.Question{}).
		Joins("JOIN exam_questions eq ON eq.question_id = questions.id").
		Where("eq.session_id = ?", sessionID).
		Order("eq.order_num ASC").
		Find(&qs).Error
	if err != nil {
		t.Fatalf("load session questions: %v", err)
	}
	return qs
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
