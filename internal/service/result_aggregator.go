package service

import (
	"exam_prep_backend/internal/model"

	"gorm.io/datatypes"
)

// AttemptSummary 交卷时写入 attempt 的汇总数据
type AttemptSummary struct {
	AttemptedQuestions int
	CorrectAnswers     int
	IncorrectAnswers   int
	SkippedQuestions   int
	MarksObtained      float64
	Percentage         float64
	SubjectWiseScores  model.ScoreMap
	ChapterWiseScores  model.ScoreMap
	TimeDistribution   model.ScoreMap
	TotalTimeSeconds   int
}

// AggregateResults 将 attempt 的作答汇总为成绩
// totalQuestions 与 totalMarks 取开始考试时的快照，slots 通过预加载的题目提供 subject/chapter 归属
func AggregateResults(totalQuestions int, totalMarks float64, slots []model.TestQuestion, responses []model.AnswerResponse) AttemptSummary {
	questions := make(map[uint]*model.Question, len(slots))
	for i := range slots {
		if slots[i].Question != nil {
			questions[slots[i].QuestionID] = slots[i].Question
		}
	}

	sum := AttemptSummary{
		SubjectWiseScores: model.ScoreMap{},
		ChapterWiseScores: model.ScoreMap{},
		TimeDistribution:  model.ScoreMap{},
	}

	for _, r := range responses {
		sum.MarksObtained += r.MarksObtained
		sum.TotalTimeSeconds += r.TimeSpentSeconds

		q := questions[r.QuestionID]
		if q != nil {
			sum.TimeDistribution[q.SubjectID] += float64(r.TimeSpentSeconds)
		}

		if !r.IsAttempted {
			continue
		}
		sum.AttemptedQuestions++
		if r.IsCorrect != nil {
			if *r.IsCorrect {
				sum.CorrectAnswers++
			} else {
				sum.IncorrectAnswers++
			}
		}
		if q != nil {
			sum.SubjectWiseScores[q.SubjectID] += r.MarksObtained
			sum.ChapterWiseScores[q.ChapterID] += r.MarksObtained
		}
	}

	sum.SkippedQuestions = totalQuestions - sum.AttemptedQuestions
	if sum.SkippedQuestions < 0 {
		sum.SkippedQuestions = 0
	}
	if totalMarks > 0 {
		sum.Percentage = sum.MarksObtained / totalMarks * 100
	}
	return sum
}

// apply 写回 attempt 的汇总字段
func (s AttemptSummary) apply(a *model.Attempt) {
	a.AttemptedQuestions = s.AttemptedQuestions
	a.CorrectAnswers = s.CorrectAnswers
	a.IncorrectAnswers = s.IncorrectAnswers
	a.SkippedQuestions = s.SkippedQuestions
	a.MarksObtained = s.MarksObtained
	a.Percentage = s.Percentage
	a.TotalTimeSeconds = s.TotalTimeSeconds
	a.SubjectWiseScores = datatypes.NewJSONType(s.SubjectWiseScores)
	a.ChapterWiseScores = datatypes.NewJSONType(s.ChapterWiseScores)
	a.TimeDistribution = datatypes.NewJSONType(s.TimeDistribution)
}
