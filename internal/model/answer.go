package model

import "time"

// UserAnswer 每题每会话一条，重复提交覆盖旧答案
type UserAnswer struct {
	BaseModel
	SessionID  uint      `gorm:"uniqueIndex:idx_session_question;not null" json:"sessionId"`
	QuestionID uint      `gorm:"uniqueIndex:idx_session_question;not null" json:"questionId"`
	Answer     string    `gorm:"size:255" json:"answer"`
	IsCorrect  bool      `json:"isCorrect"`
	AnsweredAt time.Time `json:"answeredAt"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}

// UserQuestionStat 跨会话的答题统计，选题优先级依赖它
type UserQuestionStat struct {
	BaseModel
	UserID          uint      `gorm:"uniqueIndex:idx_user_question;not null" json:"userId"`
	QuestionID      uint      `gorm:"uniqueIndex:idx_user_question;not null" json:"questionId"`
	TotalAttempts   int       `gorm:"not null;default:0" json:"totalAttempts"`
	CorrectAttempts int       `gorm:"not null;default:0" json:"correctAttempts"`
	LastIsCorrect   bool      `json:"lastIsCorrect"`
	LastAttemptAt   time.Time `json:"lastAttemptAt"`
}

func (UserQuestionStat) TableName() string {
	return "user_question_stats"
}
