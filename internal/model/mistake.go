package model

import "time"

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// Mistake 错题本条目，每个 (user, question) 一条，带间隔重复状态
// swagger:model Mistake
type Mistake struct {
	RecordModel

	UserID        uint   `gorm:"uniqueIndex:idx_mistake_user_question;type:bigint unsigned" json:"userId"`
	QuestionID    uint   `gorm:"uniqueIndex:idx_mistake_user_question;type:bigint unsigned" json:"questionId"`
	UserAnswer    string `gorm:"type:text" json:"userAnswer"`
	CorrectAnswer string `gorm:"type:text" json:"correctAnswer"`
	Notes         string `gorm:"type:text" json:"notes"`
	MistakeType   string `gorm:"size:32" json:"mistakeType"` // 概念性、粗心、时间紧张等
	Source        string `gorm:"size:32" json:"source"`      // 手动添加 / 考试收集

	EaseFactor       float64    `json:"easeFactor"`
	IntervalDays     int        `json:"intervalDays"`
	RevisionCount    int        `json:"revisionCount"`
	LastRevisedAt    *time.Time `json:"lastRevisedAt,omitempty"`
	NextRevisionDate *time.Time `gorm:"index" json:"nextRevisionDate,omitempty"`
	IsMastered       bool       `gorm:"index" json:"isMastered"`
}

func (Mistake) TableName() string {
	return "mistakes"
}

// ResetRevision 将复习状态恢复为初始值
func (m *Mistake) ResetRevision() {
	m.EaseFactor = DefaultEaseFactor
	m.IntervalDays = 0
	m.RevisionCount = 0
	m.LastRevisedAt = nil
	m.NextRevisionDate = nil
	m.IsMastered = false
}
