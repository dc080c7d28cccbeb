package model

import "gorm.io/datatypes"

// AnswerResponse 每个 (attempt, question) 至多一条，重复提交覆盖
// swagger:model AnswerResponse
type AnswerResponse struct {
	RecordModel

	AttemptID        uint                         `gorm:"uniqueIndex:idx_response_attempt_question;type:bigint unsigned" json:"attemptId"`
	QuestionID       uint                         `gorm:"uniqueIndex:idx_response_attempt_question;type:bigint unsigned" json:"questionId"`
	SelectedOptions  datatypes.JSONType[[]string] `json:"selectedOptions"`
	NumericAnswer    *float64                     `json:"numericAnswer,omitempty"`
	IsAttempted      bool                         `json:"isAttempted"`
	IsCorrect        *bool                        `json:"isCorrect"`
	MarksObtained    float64                      `json:"marksObtained"`
	TimeSpentSeconds int                          `json:"timeSpentSeconds"`
	MarkedForReview  bool                         `json:"markedForReview"`
}

func (AnswerResponse) TableName() string {
	return "answer_responses"
}
