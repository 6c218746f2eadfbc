package repository

import (
	"errors"
	"time"

	"quiz_exam_backend/internal/model"
	"quiz_exam_backend/internal/util"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) FindByID(id uint) (*model.ExamSession, error) {
	var s model.ExamSession
	err := r.DB.First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindActiveByUser 没有进行中的会话时返回 (nil, nil)
func (r *SessionRepository) FindActiveByUser(userID uint) (*model.ExamSession, error) {
	var s model.ExamSession
	err := r.DB.Where("user_id = ? AND status = ?", userID, model.SessionActive).
		Order("id DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateWithQuestions 建会话并落组卷记录，全程单事务：
// 旧会话的废弃、"同一用户只有一个进行中会话"的复查、会话行和逐题行的
// 写入要么全部生效要么全部回滚。
func (r *SessionRepository) CreateWithQuestions(session *model.ExamSession, questionIDs []uint, abandonID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if abandonID > 0 {
			if err := tx.Model(&model.ExamSession{}).
				Where("id = ? AND status = ?", abandonID, model.SessionActive).
				Update("status", model.SessionAbandoned).Error; err != nil {
				return err
			}
		}

		var count int64
		if err := tx.Model(&model.ExamSession{}).
			Where("user_id = ? AND status = ?", session.UserID, model.SessionActive).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return util.ErrActiveSessionExists
		}

		if err := tx.Create(session).Error; err != nil {
			return err
		}

		if len(questionIDs) == 0 {
			return nil
		}

		rows := make([]model.ExamQuestion, len(questionIDs))
		for i, qid := range questionIDs {
			rows[i] = model.ExamQuestion{
				SessionID:  session.ID,
				QuestionID: qid,
				Order:      i + 1,
			}
		}
		return tx.CreateInBatches(rows, 100).Error
	})
}

func (r *SessionRepository) CountQuestions(sessionID uint) (int, error) {
	var count int64
	err := r.DB.Model(&model.ExamQuestion{}).Where("session_id = ?", sessionID).Count(&count).Error
	return int(count), err
}

// FindQuestionByOrder 按会话内序号取题
func (r *SessionRepository) FindQuestionByOrder(sessionID uint, order int) (*model.Question, error) {
	var q model.Question
	err := r.DB.Model(&model.Question{}).
		Joins("JOIN exam_questions eq ON eq.question_id = questions.id AND eq.deleted_at IS NULL").
		Where("eq.session_id = ? AND eq.order_num = ?", sessionID, order).
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *SessionRepository) FindQuestionOrder(sessionID, questionID uint) (int, error) {
	var eq model.ExamQuestion
	err := r.DB.Where("session_id = ? AND question_id = ?", sessionID, questionID).First(&eq).Error
	if err != nil {
		return 0, err
	}
	return eq.Order, nil
}

func (r *SessionRepository) HasQuestion(sessionID, questionID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ExamQuestion{}).
		Where("session_id = ? AND question_id = ?", sessionID, questionID).
		Count(&count).Error
	return count > 0, err
}

// FinishWithResult 结会话并写成绩单，同一事务内完成：
// 只允许 active -> completed 的迁移，迁移失败（已结束）时成绩单也不落库，
// 不会出现已完成却查不到成绩的会话。返回本次调用是否真正完成了迁移。
func (r *SessionRepository) FinishWithResult(sessionID uint, score int, result *model.ExamResult) (bool, error) {
	done := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ExamSession{}).
			Where("id = ? AND status = ?", sessionID, model.SessionActive).
			Updates(map[string]interface{}{
				"status":       model.SessionCompleted,
				"score":        score,
				"completed_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 已经结束过，第二次调用由上层决定幂等语义
			return nil
		}
		done = true
		return tx.Create(result).Error
	})
	return done, err
}

func (r *SessionRepository) FindResultBySession(sessionID uint) (*model.ExamResult, error) {
	var res model.ExamResult
	err := r.DB.Where("session_id = ?", sessionID).First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *SessionRepository) ListOrders(sessionID uint) ([]int, error) {
	var orders []int
	err := r.DB.Model(&model.ExamQuestion{}).
		Where("session_id = ?", sessionID).
		Order("order_num ASC").
		Pluck("order_num", &orders).Error
	return orders, err
}
