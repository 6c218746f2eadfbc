package model

import "time"

type ExamMode string

const (
	ModeStudy ExamMode = "study" // 背题模式：提交后立即返回正确答案
	ModeExam  ExamMode = "exam"  // 考试模式：交卷前不反馈
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// swagger:model ExamSession
type ExamSession struct {
	BaseModel
	UserID      uint          `gorm:"index;not null" json:"userId"`
	Mode        ExamMode      `gorm:"size:10;not null" json:"mode"`
	Status      SessionStatus `gorm:"size:10;not null;index" json:"status"`
	Score       *int          `json:"score,omitempty"`
	StartedAt   time.Time     `json:"startedAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}

// ExamQuestion 组卷记录，创建会话时一次性写入，之后不再变更
type ExamQuestion struct {
	BaseModel
	SessionID  uint `gorm:"uniqueIndex:idx_session_order;not null" json:"sessionId"`
	QuestionID uint `gorm:"index;not null" json:"questionId"`
	Order      int  `gorm:"column:order_num;uniqueIndex:idx_session_order;not null" json:"order"`
}

func (ExamQuestion) TableName() string {
	return "exam_questions"
}

// swagger:model ExamResult
type ExamResult struct {
	BaseModel
	UserID         uint     `gorm:"index;not null" json:"userId"`
	SessionID      uint     `gorm:"uniqueIndex;not null" json:"sessionId"`
	Mode           ExamMode `gorm:"size:10;not null" json:"mode"`
	TotalQuestions int      `json:"totalQuestions"`
	CorrectAnswers int      `json:"correctAnswers"`
	Score          int      `json:"score"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}
