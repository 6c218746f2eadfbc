package model

import "encoding/json"

type QuestionType string

const (
	Judgment       QuestionType = "judgment"        // 判断题
	SingleChoice   QuestionType = "single_choice"   // 单选题
	MultipleChoice QuestionType = "multiple_choice" // 多选题
)

// swagger:model Question
type Question struct {
	BaseModel
	Type          QuestionType    `gorm:"size:20;not null;index" json:"type"`
	Content       string          `gorm:"type:text;not null" json:"content"`
	Options       json.RawMessage `gorm:"type:json" json:"options,omitempty"` // JSON: {"A": "...", "B": "..."}，判断题为空
	Answer        string          `gorm:"size:255;not null" json:"-"`
	Explanation   string          `gorm:"type:text" json:"-"`
	CategoryBig   string          `gorm:"size:100;index:idx_questions_category" json:"categoryBig"`
	CategorySmall string          `gorm:"size:100;index:idx_questions_category" json:"categorySmall"`
}

func (Question) TableName() string {
	return "questions"
}
