package model

import "gorm.io/datatypes"

// MarkingScheme 答题结果对应的得分增量
type MarkingScheme struct {
	Correct     float64 `json:"correct"`
	Incorrect   float64 `json:"incorrect"`
	Unattempted float64 `json:"unattempted"`
}

// swagger:model Test
type Test struct {
	BaseModel

	Title           string                            `gorm:"size:255" json:"title"`
	TotalQuestions  int                               `json:"totalQuestions"`
	TotalMarks      float64                           `json:"totalMarks"`
	DurationMinutes int                               `json:"durationMinutes"`
	MarkingScheme   datatypes.JSONType[MarkingScheme] `json:"markingScheme"`
	TotalAttempts   int                               `gorm:"default:0" json:"totalAttempts"`

	Questions []TestQuestion `gorm:"foreignKey:TestID" json:"questions,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}

// Scheme 返回评分规则
func (t *Test) Scheme() MarkingScheme {
	return t.MarkingScheme.Data()
}

// QuestionSlot 查找题目在试卷中的位置
func (t *Test) QuestionSlot(questionID uint) (*TestQuestion, bool) {
	for i := range t.Questions {
		if t.Questions[i].QuestionID == questionID {
			return &t.Questions[i], true
		}
	}
	return nil, false
}

// TestQuestion 试卷的固定题目组成，按 Sequence 排序
type TestQuestion struct {
	BaseModel

	TestID     uint    `gorm:"uniqueIndex:idx_test_question;type:bigint unsigned" json:"testId"`
	QuestionID uint    `gorm:"uniqueIndex:idx_test_question;type:bigint unsigned" json:"questionId"`
	Sequence   int     `gorm:"default:0" json:"sequence"`
	Marks      float64 `json:"marks"`

	Question *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (TestQuestion) TableName() string {
	return "test_questions"
}
