package model

import "gorm.io/datatypes"

const (
	QuestionTypeSingleChoice = "single_choice"
	QuestionTypeMultiChoice  = "multiple_choice"
	QuestionTypeNumeric      = "numeric"
)

// QuestionOption 选项，Label 如 "A"、"B"
type QuestionOption struct {
	Label     string `json:"label"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question 由内容目录维护，这里只读取选项以及 subject/chapter 归属
// swagger:model Question
type Question struct {
	BaseModel

	SubjectID     uint                                 `gorm:"index;type:bigint unsigned" json:"subjectId"`
	ChapterID     uint                                 `gorm:"index;type:bigint unsigned" json:"chapterId"`
	TopicID       uint                                 `gorm:"index;type:bigint unsigned" json:"topicId"`
	QuestionType  string                               `gorm:"size:32" json:"questionType"`
	Content       string                               `gorm:"type:text" json:"content"`
	Options       datatypes.JSONType[[]QuestionOption] `json:"options"`
	NumericAnswer *float64                             `json:"numericAnswer,omitempty"`
	Explanation   string                               `gorm:"type:text" json:"explanation"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectLabels 返回标记为正确的选项标签
func (q *Question) CorrectLabels() []string {
	var labels []string
	for _, o := range q.Options.Data() {
		if o.IsCorrect {
			labels = append(labels, o.Label)
		}
	}
	return labels
}

func (q *Question) HasOption(label string) bool {
	for _, o := range q.Options.Data() {
		if o.Label == label {
			return true
		}
	}
	return false
}
