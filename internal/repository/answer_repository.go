package repository

import (
	"encoding/json"
	"time"

	"quiz_exam_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// UpsertAnswer 同一 (会话, 题目) 重复提交时覆盖旧答案
func (r *AnswerRepository) UpsertAnswer(a *model.UserAnswer) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"answer":      a.Answer,
			"is_correct":  a.IsCorrect,
			"answered_at": a.AnsweredAt,
			"updated_at":  a.AnsweredAt,
		}),
	}).Create(a).Error
}

// UpsertStat 累计答题统计：total_attempts 单语句自增，
// 并发提交也不会丢计数。
func (r *AnswerRepository) UpsertStat(userID, questionID uint, correct bool, at time.Time) error {
	correctInc := 0
	if correct {
		correctInc = 1
	}

	stat := &model.UserQuestionStat{
		UserID:          userID,
		QuestionID:      questionID,
		TotalAttempts:   1,
		CorrectAttempts: correctInc,
		LastIsCorrect:   correct,
		LastAttemptAt:   at,
	}

	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_attempts":   gorm.Expr("total_attempts + 1"),
			"correct_attempts": gorm.Expr("correct_attempts + ?", correctInc),
			"last_is_correct":  correct,
			"last_attempt_at":  at,
			"updated_at":       at,
		}),
	}).Create(stat).Error
}

func (r *AnswerRepository) FindAnswer(sessionID, questionID uint) (*model.UserAnswer, error) {
	var a model.UserAnswer
	err := r.DB.Where("session_id = ? AND question_id = ?", sessionID, questionID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AnswerRepository) FindStat(userID, questionID uint) (*model.UserQuestionStat, error) {
	var s model.UserQuestionStat
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AnswerRepository) CountAnswered(sessionID uint) (int, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).Where("session_id = ?", sessionID).Count(&count).Error
	return int(count), err
}

func (r *AnswerRepository) CountCorrect(sessionID uint) (int, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).
		Where("session_id = ? AND is_correct = ?", sessionID, true).
		Count(&count).Error
	return int(count), err
}

// WrongQuestion 错题本条目：题目加上用户最近一次的作答
type WrongQuestion struct {
	Question   model.Question `json:"question"`
	LastAnswer string         `json:"lastAnswer"`
	Answer     string         `json:"correctAnswer"`
	Attempts   int            `json:"attempts"`
}

// ListWrongQuestions 最近一次做错的题，按最后作答时间倒序。
// 单条联查出题目、该用户最近一次的作答和累计次数；
// 最近作答用相关子查询定位（同一题可能在多个会话里答过）。
func (r *AnswerRepository) ListWrongQuestions(userID uint) ([]WrongQuestion, error) {
	type wrongRow struct {
		ID            uint
		Type          model.QuestionType
		Content       string
		Options       json.RawMessage
		Answer        string
		Explanation   string
		CategoryBig   string
		CategorySmall string
		LastAnswer    string
		Attempts      int
	}

	var rows []wrongRow
	err := r.DB.Model(&model.UserQuestionStat{}).
		Select("questions.id, questions.type, questions.content, questions.options, "+
			"questions.answer, questions.explanation, questions.category_big, questions.category_small, "+
			"ua.answer AS last_answer, user_question_stats.total_attempts AS attempts").
		Joins("JOIN questions ON questions.id = user_question_stats.question_id AND questions.deleted_at IS NULL").
		Joins("LEFT JOIN user_answers ua ON ua.question_id = user_question_stats.question_id "+
			"AND ua.deleted_at IS NULL "+
			"AND ua.session_id IN (SELECT id FROM exam_sessions WHERE user_id = ? AND deleted_at IS NULL) "+
			"AND ua.answered_at = ("+
			"SELECT MAX(ua2.answered_at) FROM user_answers ua2 "+
			"JOIN exam_sessions es ON es.id = ua2.session_id AND es.user_id = ? "+
			"WHERE ua2.question_id = user_question_stats.question_id AND ua2.deleted_at IS NULL)",
			userID, userID).
		Where("user_question_stats.user_id = ? AND user_question_stats.last_is_correct = ?", userID, false).
		Order("user_question_stats.last_attempt_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]WrongQuestion, 0, len(rows))
	for _, row := range rows {
		q := model.Question{
			Type:          row.Type,
			Content:       row.Content,
			Options:       row.Options,
			Answer:        row.Answer,
			Explanation:   row.Explanation,
			CategoryBig:   row.CategoryBig,
			CategorySmall: row.CategorySmall,
		}
		q.ID = row.ID
		result = append(result, WrongQuestion{
			Question:   q,
			LastAnswer: row.LastAnswer,
			Answer:     row.Answer,
			Attempts:   row.Attempts,
		})
	}
	return result, nil
}
