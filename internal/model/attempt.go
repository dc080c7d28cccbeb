package model

import (
	"time"

	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptSubmitted  AttemptStatus = "submitted"
)

// ScoreMap 按 subject/chapter ID 汇总的分数或耗时
type ScoreMap map[uint]float64

// swagger:model Attempt
type Attempt struct {
	BaseModel

	TestID        uint          `gorm:"index:idx_attempt_user_test,priority:2;type:bigint unsigned" json:"testId"`
	UserID        uint          `gorm:"index:idx_attempt_user_test,priority:1;type:bigint unsigned" json:"userId"`
	AttemptNumber int           `json:"attemptNumber"`
	Status        AttemptStatus `gorm:"size:16;index;default:'in_progress'" json:"status"`
	StartedAt     time.Time     `json:"startedAt"`
	SubmittedAt   *time.Time    `json:"submittedAt,omitempty"`

	// 开始时从试卷快照
	TotalQuestions int     `json:"totalQuestions"`
	TotalMarks     float64 `json:"totalMarks"`

	// 以下字段仅在 finish 后写入
	TimeTakenSeconds   int                          `json:"timeTakenSeconds"`
	TotalTimeSeconds   int                          `json:"totalTimeSeconds"`
	AttemptedQuestions int                          `json:"attemptedQuestions"`
	CorrectAnswers     int                          `json:"correctAnswers"`
	IncorrectAnswers   int                          `json:"incorrectAnswers"`
	SkippedQuestions   int                          `json:"skippedQuestions"`
	MarksObtained      float64                      `json:"marksObtained"`
	Percentage         float64                      `json:"percentage"`
	SubjectWiseScores  datatypes.JSONType[ScoreMap] `json:"subjectWiseScores"`
	ChapterWiseScores  datatypes.JSONType[ScoreMap] `json:"chapterWiseScores"`
	TimeDistribution   datatypes.JSONType[ScoreMap] `json:"timeDistribution"`

	Responses []AnswerResponse `gorm:"foreignKey:AttemptID" json:"responses,omitempty"`
}

func (Attempt) TableName() string {
	return "attempts"
}

func (a *Attempt) InProgress() bool {
	return a.Status == AttemptInProgress
}
