package service

import (
	"errors"
	"math"
	"time"

	"quiz_exam_backend/internal/model"
	"quiz_exam_backend/internal/repository"
	"quiz_exam_backend/internal/util"
	"quiz_exam_backend/pkg/logger"
	"quiz_exam_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExamService 会话生命周期与判分
type ExamService struct {
	SessionRepo  *repository.SessionRepository
	QuestionRepo *repository.QuestionRepository
	AnswerRepo   *repository.AnswerRepository
	Progress     *repository.ProgressRepository
	Selector     *QuestionSelector
}

func NewExamService(
	sessionRepo *repository.SessionRepository,
	questionRepo *repository.QuestionRepository,
	answerRepo *repository.AnswerRepository,
	progress *repository.ProgressRepository,
	selector *QuestionSelector,
) *ExamService {
	return &ExamService{
		SessionRepo:  sessionRepo,
		QuestionRepo: questionRepo,
		AnswerRepo:   answerRepo,
		Progress:     progress,
		Selector:     selector,
	}
}

// StartRequest 筛选字段用指针区分"没传"和"传了默认值"
type StartRequest struct {
	Mode          model.ExamMode
	CategoryBig   *string
	CategorySmall *string
	Total         *int
}

func (r *StartRequest) hasFilters() bool {
	return r.CategoryBig != nil || r.CategorySmall != nil || r.Total != nil
}

type StartResult struct {
	SessionID      uint           `json:"sessionId"`
	Mode           model.ExamMode `json:"mode"`
	TotalQuestions int            `json:"totalQuestions"`
	Resumed        bool           `json:"resumed"`
}

// StartOrResume 有进行中会话、没带筛选、模式一致时直接续用；
// 否则废弃旧会话重新组卷。废弃与新建在同一个事务里完成。
func (s *ExamService) StartOrResume(userID uint, req StartRequest) (*StartResult, error) {
	if req.Mode != model.ModeStudy && req.Mode != model.ModeExam {
		return nil, util.ErrInvalidMode
	}
	if req.Total != nil && *req.Total <= 0 {
		return nil, util.ErrInvalidTotal
	}

	active, err := s.SessionRepo.FindActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	if active != nil && !req.hasFilters() && active.Mode == req.Mode {
		total, err := s.SessionRepo.CountQuestions(active.ID)
		if err != nil {
			return nil, err
		}
		return &StartResult{
			SessionID:      active.ID,
			Mode:           active.Mode,
			TotalQuestions: total,
			Resumed:        true,
		}, nil
	}

	var abandonID uint
	if active != nil {
		abandonID = active.ID
	}

	categoryBig, categorySmall, overrideTotal := "", "", 0
	if req.CategoryBig != nil {
		categoryBig = *req.CategoryBig
	}
	if req.CategorySmall != nil {
		categorySmall = *req.CategorySmall
	}
	if req.Total != nil {
		overrideTotal = *req.Total
	}

	questions, err := s.Selector.Select(userID, categoryBig, categorySmall, overrideTotal)
	if err != nil {
		return nil, err
	}

	session := &model.ExamSession{
		UserID:    userID,
		Mode:      req.Mode,
		Status:    model.SessionActive,
		StartedAt: time.Now(),
	}

	questionIDs := make([]uint, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	if err := s.SessionRepo.CreateWithQuestions(session, questionIDs, abandonID); err != nil {
		return nil, err
	}

	if len(questions) > 0 {
		s.cacheProgress(&repository.Progress{
			SessionID:      session.ID,
			UserID:         userID,
			Order:          1,
			QuestionID:     questions[0].ID,
			TotalQuestions: len(questions),
			Mode:           session.Mode,
		})
	}

	return &StartResult{
		SessionID:      session.ID,
		Mode:           session.Mode,
		TotalQuestions: len(questions),
	}, nil
}

// CurrentProgress 优先读缓存；缓存不可用或未命中就从关系库重建并回填
func (s *ExamService) CurrentProgress(userID uint) (*repository.Progress, error) {
	active, err := s.SessionRepo.FindActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, util.ErrSessionNotFound
	}

	if p, err := s.Progress.GetProgress(active.ID); err == nil && p != nil {
		return p, nil
	} else if err != nil {
		logger.Log.Warn("progress cache read failed, falling back to store",
			zap.Uint("sessionId", active.ID), zap.Error(err))
	}

	return s.rebuildProgress(active)
}

func (s *ExamService) rebuildProgress(session *model.ExamSession) (*repository.Progress, error) {
	total, err := s.SessionRepo.CountQuestions(session.ID)
	if err != nil {
		return nil, err
	}

	answered, err := s.AnswerRepo.CountAnswered(session.ID)
	if err != nil {
		return nil, err
	}

	order := answered + 1
	if order > total {
		order = total
	}
	if order < 1 {
		order = 1
	}

	var questionID uint
	if total > 0 {
		q, err := s.SessionRepo.FindQuestionByOrder(session.ID, order)
		if err != nil {
			return nil, err
		}
		questionID = q.ID
	}

	p := &repository.Progress{
		SessionID:      session.ID,
		UserID:         session.UserID,
		Order:          order,
		QuestionID:     questionID,
		TotalQuestions: total,
		Mode:           session.Mode,
	}
	s.cacheProgress(p)
	return p, nil
}

// QuestionAt 按序号取题，顺带推进进度缓存
func (s *ExamService) QuestionAt(userID, sessionID uint, order int) (*model.Question, int, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, 0, err
	}

	q, err := s.SessionRepo.FindQuestionByOrder(sessionID, order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.SessionRepo.CountQuestions(sessionID)
	if err != nil {
		return nil, 0, err
	}

	s.cacheProgress(&repository.Progress{
		SessionID:      sessionID,
		UserID:         userID,
		Order:          order,
		QuestionID:     q.ID,
		TotalQuestions: total,
		Mode:           session.Mode,
	})

	return q, total, nil
}

// AnswerResult 背题模式附带正确答案和解析，考试模式只给对错
type AnswerResult struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
}

// SubmitAnswer 判分、落答案、累计统计。比较是区分大小写的精确匹配，
// 多选的选项键由前端按字典序提交。
func (s *ExamService) SubmitAnswer(userID, sessionID, questionID uint, answer string) (*AnswerResult, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionActive {
		return nil, util.ErrSessionFinished
	}

	ok, err := s.SessionRepo.HasQuestion(sessionID, questionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrQuestionNotFound
	}

	question, err := s.QuestionRepo.FindByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	correct := question.Answer == answer

	if err := s.AnswerRepo.UpsertAnswer(&model.UserAnswer{
		SessionID:  sessionID,
		QuestionID: questionID,
		Answer:     answer,
		IsCorrect:  correct,
		AnsweredAt: now,
	}); err != nil {
		return nil, err
	}

	if err := s.AnswerRepo.UpsertStat(userID, questionID, correct, now); err != nil {
		return nil, err
	}

	monitoring.ObserveAnswer(string(session.Mode), correct)
	s.advanceProgress(session, questionID)

	result := &AnswerResult{IsCorrect: correct}
	if session.Mode == model.ModeStudy {
		result.CorrectAnswer = question.Answer
		result.Explanation = question.Explanation
	}
	return result, nil
}

type FinishResult struct {
	SessionID      uint `json:"sessionId"`
	TotalQuestions int  `json:"totalQuestions"`
	CorrectAnswers int  `json:"correctAnswers"`
	WrongAnswers   int  `json:"wrongAnswers"`
	Score          int  `json:"score"`
}

// Finish 只有 active 会话能交卷；重复交卷报 ErrSessionFinished，
// 不会重复写成绩单。
func (s *ExamService) Finish(userID, sessionID uint) (*FinishResult, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionActive {
		return nil, util.ErrSessionFinished
	}

	total, err := s.SessionRepo.CountQuestions(sessionID)
	if err != nil {
		return nil, err
	}
	correct, err := s.AnswerRepo.CountCorrect(sessionID)
	if err != nil {
		return nil, err
	}

	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}

	done, err := s.SessionRepo.FinishWithResult(sessionID, score, &model.ExamResult{
		UserID:         userID,
		SessionID:      sessionID,
		Mode:           session.Mode,
		TotalQuestions: total,
		CorrectAnswers: correct,
		Score:          score,
	})
	if err != nil {
		return nil, err
	}
	if !done {
		// 两个并发交卷只有一个能完成迁移
		return nil, util.ErrSessionFinished
	}

	if err := s.Progress.DeleteProgress(sessionID); err != nil {
		logger.Log.Warn("failed to drop progress cache",
			zap.Uint("sessionId", sessionID), zap.Error(err))
	}

	return &FinishResult{
		SessionID:      sessionID,
		TotalQuestions: total,
		CorrectAnswers: correct,
		WrongAnswers:   total - correct,
		Score:          score,
	}, nil
}

// StoredResult 已结束会话的成绩单
func (s *ExamService) StoredResult(userID, sessionID uint) (*FinishResult, error) {
	if _, err := s.ownedSession(userID, sessionID); err != nil {
		return nil, err
	}

	res, err := s.SessionRepo.FindResultBySession(sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &FinishResult{
		SessionID:      res.SessionID,
		TotalQuestions: res.TotalQuestions,
		CorrectAnswers: res.CorrectAnswers,
		WrongAnswers:   res.TotalQuestions - res.CorrectAnswers,
		Score:          res.Score,
	}, nil
}

func (s *ExamService) WrongQuestions(userID uint) ([]repository.WrongQuestion, error) {
	return s.AnswerRepo.ListWrongQuestions(userID)
}

func (s *ExamService) ownedSession(userID, sessionID uint) (*model.ExamSession, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrNotSessionOwner
	}
	return session, nil
}

// cacheProgress 缓存只是加速层，写失败记日志继续
func (s *ExamService) cacheProgress(p *repository.Progress) {
	if err := s.Progress.SaveProgress(p); err != nil {
		logger.Log.Warn("failed to update progress cache",
			zap.Uint("sessionId", p.SessionID), zap.Error(err))
	}
}

// advanceProgress 答完一题把指针拨到下一题
func (s *ExamService) advanceProgress(session *model.ExamSession, questionID uint) {
	order, err := s.SessionRepo.FindQuestionOrder(session.ID, questionID)
	if err != nil {
		return
	}
	total, err := s.SessionRepo.CountQuestions(session.ID)
	if err != nil {
		return
	}

	next := order + 1
	if next > total {
		next = total
	}

	nextQuestionID := questionID
	if next != order {
		if q, err := s.SessionRepo.FindQuestionByOrder(session.ID, next); err == nil {
			nextQuestionID = q.ID
		} else {
			next = order
		}
	}

	s.cacheProgress(&repository.Progress{
		SessionID:      session.ID,
		UserID:         session.UserID,
		Order:          next,
		QuestionID:     nextQuestionID,
		TotalQuestions: total,
		Mode:           session.Mode,
	})
}
