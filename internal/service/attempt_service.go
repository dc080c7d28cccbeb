package service

import (
	"context"
	"errors"
	"time"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/event"
	"exam_prep_backend/pkg/logger"
	"exam_prep_backend/pkg/monitoring"
	"exam_prep_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// TestCatalog 提供试卷结构（评分规则 + 有序题目），由内容目录维护
type TestCatalog interface {
	GetTest(ctx context.Context, testID uint) (*model.Test, error)
	Invalidate(ctx context.Context, testID uint) error
}

// QuestionCatalog 提供题目的选项与 subject/chapter 归属
type QuestionCatalog interface {
	GetQuestion(ctx context.Context, questionID uint) (*model.Question, error)
}

type AttemptService struct {
	Store     *repository.Store
	Tests     TestCatalog
	Questions QuestionCatalog
	Events    event.Publisher
	Now       func() time.Time
}

func NewAttemptService(store *repository.Store, tests TestCatalog, questions QuestionCatalog, events event.Publisher) *AttemptService {
	return &AttemptService{
		Store:     store,
		Tests:     tests,
		Questions: questions,
		Events:    events,
		Now:       time.Now,
	}
}

type SubmitAnswerRequest struct {
	Selection        []string `json:"selection"`
	NumericAnswer    *float64 `json:"numericAnswer"`
	TimeSpentSeconds int      `json:"timeSpentSeconds"`
	MarkedForReview  bool     `json:"markedForReview"`
}

// AttemptResult attempt 及其作答和对应的试卷
type AttemptResult struct {
	Attempt *model.Attempt `json:"attempt"`
	Test    *model.Test    `json:"test"`
}

// Start 返回用户在该试卷上进行中的 attempt，没有则创建下一次
func (s *AttemptService) Start(ctx context.Context, userID, testID uint) (*model.Attempt, error) {
	ctx, span := tracing.StartSpan(ctx, "AttemptService.Start",
		attribute.Int64("user.id", int64(userID)),
		attribute.Int64("test.id", int64(testID)),
	)
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	test, err := s.Tests.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	var attempt *model.Attempt
	resumed := false
	err = s.Store.Transaction(ctx, func(tx *repository.Store) error {
		// 锁住试卷行，避免并发创建两个进行中的 attempt
		if err := tx.Tests.LockForUpdate(ctx, testID); err != nil {
			return err
		}

		existing, err := tx.Attempts.FindInProgress(ctx, userID, testID)
		if err == nil {
			attempt, resumed = existing, true
			return nil
		}
		if !errors.Is(err, util.ErrAttemptNotFound) {
			return err
		}

		count, err := tx.Attempts.CountByUserAndTest(ctx, userID, testID)
		if err != nil {
			return err
		}

		attempt = &model.Attempt{
			TestID:         testID,
			UserID:         userID,
			AttemptNumber:  int(count) + 1,
			Status:         model.AttemptInProgress,
			StartedAt:      s.Now(),
			TotalQuestions: test.TotalQuestions,
			TotalMarks:     test.TotalMarks,
		}
		return tx.Attempts.Create(ctx, attempt)
	})
	if err != nil {
		return nil, err
	}

	if resumed {
		monitoring.AttemptsStarted.WithLabelValues("true").Inc()
		logger.Log.Debug("Resuming attempt", zap.Uint("attemptId", attempt.ID), zap.Uint("userId", userID))
		return attempt, nil
	}

	monitoring.AttemptsStarted.WithLabelValues("false").Inc()
	logger.Log.Info("Attempt started",
		zap.Uint("attemptId", attempt.ID),
		zap.Uint("testId", testID),
		zap.Uint("userId", userID),
		zap.Int("attemptNumber", attempt.AttemptNumber),
	)
	publishEvent(ctx, s.Events, event.AttemptStarted, AttemptEvent{
		AttemptID:     attempt.ID,
		TestID:        testID,
		UserID:        userID,
		AttemptNumber: attempt.AttemptNumber,
	})
	return attempt, nil
}

// SubmitAnswer 判分并保存作答，覆盖该题之前的作答
func (s *AttemptService) SubmitAnswer(ctx context.Context, userID, attemptID, questionID uint, req SubmitAnswerRequest) (*model.AnswerResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "AttemptService.SubmitAnswer",
		attribute.Int64("attempt.id", int64(attemptID)),
		attribute.Int64("question.id", int64(questionID)),
	)
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	if req.TimeSpentSeconds < 0 {
		err = util.NewValidationError("timeSpentSeconds", "must not be negative")
		return nil, err
	}

	attempt, err := s.ownedAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if !attempt.InProgress() {
		err = util.ErrAttemptNotInProgress
		return nil, err
	}

	test, err := s.Tests.GetTest(ctx, attempt.TestID)
	if err != nil {
		return nil, err
	}
	if _, ok := test.QuestionSlot(questionID); !ok {
		err = util.NewValidationError("questionId", "question is not part of this test")
		return nil, err
	}

	question, err := s.Questions.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	selection := NormalizeSelection(req.Selection)
	for _, label := range selection {
		if !question.HasOption(label) {
			err = util.NewValidationError("selection", "unknown option "+label)
			return nil, err
		}
	}

	eval := EvaluateAnswer(question.CorrectLabels(), selection, test.Scheme())
	resp := &model.AnswerResponse{
		AttemptID:        attemptID,
		QuestionID:       questionID,
		SelectedOptions:  datatypes.NewJSONType(selection),
		NumericAnswer:    req.NumericAnswer,
		IsAttempted:      eval.Attempted,
		IsCorrect:        eval.IsCorrect,
		MarksObtained:    eval.Marks,
		TimeSpentSeconds: req.TimeSpentSeconds,
		MarkedForReview:  req.MarkedForReview,
	}
	if err = s.Store.Responses.Upsert(ctx, resp); err != nil {
		return nil, err
	}

	monitoring.AnswersSubmitted.WithLabelValues(answerOutcome(eval)).Inc()
	return resp, nil
}

// Finish 汇总成绩并标记为已交卷，汇总、状态变更和试卷计数在同一事务中写入
func (s *AttemptService) Finish(ctx context.Context, userID, attemptID uint) (*model.Attempt, error) {
	ctx, span := tracing.StartSpan(ctx, "AttemptService.Finish",
		attribute.Int64("attempt.id", int64(attemptID)),
	)
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	attempt, err := s.ownedAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if !attempt.InProgress() {
		err = util.ErrAttemptNotInProgress
		return nil, err
	}

	test, err := s.Tests.GetTest(ctx, attempt.TestID)
	if err != nil {
		return nil, err
	}

	err = s.Store.Transaction(ctx, func(tx *repository.Store) error {
		locked, err := tx.Attempts.FindForUpdate(ctx, attemptID)
		if err != nil {
			return err
		}
		if !locked.InProgress() {
			return util.ErrAttemptNotInProgress
		}

		responses, err := tx.Responses.ListByAttempt(ctx, attemptID)
		if err != nil {
			return err
		}

		summary := AggregateResults(locked.TotalQuestions, locked.TotalMarks, test.Questions, responses)
		summary.apply(locked)

		now := s.Now()
		locked.Status = model.AttemptSubmitted
		locked.SubmittedAt = &now
		locked.TimeTakenSeconds = int(now.Sub(locked.StartedAt).Seconds())

		if err := tx.Attempts.Update(ctx, locked); err != nil {
			return err
		}
		if err := tx.Tests.IncrementAttempts(ctx, locked.TestID); err != nil {
			return err
		}

		locked.Responses = responses
		attempt = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cerr := s.Tests.Invalidate(ctx, attempt.TestID); cerr != nil {
		logger.Log.Warn("Failed to invalidate cached test", zap.Uint("testId", attempt.TestID), zap.Error(cerr))
	}

	monitoring.AttemptsSubmitted.Inc()
	monitoring.AttemptPercentage.Observe(attempt.Percentage)
	logger.Log.Info("Attempt submitted",
		zap.Uint("attemptId", attempt.ID),
		zap.Uint("userId", userID),
		zap.Float64("marks", attempt.MarksObtained),
		zap.Float64("percentage", attempt.Percentage),
	)
	publishEvent(ctx, s.Events, event.AttemptSubmitted, AttemptEvent{
		AttemptID:     attempt.ID,
		TestID:        attempt.TestID,
		UserID:        attempt.UserID,
		AttemptNumber: attempt.AttemptNumber,
		MarksObtained: attempt.MarksObtained,
		Percentage:    attempt.Percentage,
	})
	return attempt, nil
}

// GetResults 返回用户自己的 attempt、作答和试卷结构
// 交卷前隐藏正确答案和判分结果
func (s *AttemptService) GetResults(ctx context.Context, userID, attemptID uint) (*AttemptResult, error) {
	if _, err := s.ownedAttempt(ctx, userID, attemptID); err != nil {
		return nil, err
	}
	return s.loadResults(ctx, attemptID, false)
}

// GetResultsForReview 教师/管理员视图，不校验归属
func (s *AttemptService) GetResultsForReview(ctx context.Context, attemptID uint) (*AttemptResult, error) {
	return s.loadResults(ctx, attemptID, true)
}

func (s *AttemptService) ListAttempts(ctx context.Context, userID, testID uint) ([]model.Attempt, error) {
	if _, err := s.Tests.GetTest(ctx, testID); err != nil {
		return nil, err
	}
	return s.Store.Attempts.ListByUserAndTest(ctx, userID, testID)
}

func (s *AttemptService) loadResults(ctx context.Context, attemptID uint, reveal bool) (*AttemptResult, error) {
	attempt, err := s.Store.Attempts.FindWithResponses(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	test, err := s.Tests.GetTest(ctx, attempt.TestID)
	if err != nil {
		return nil, err
	}
	if attempt.InProgress() && !reveal {
		hideAnswers(test)
		for i := range attempt.Responses {
			attempt.Responses[i] = *RedactScoring(&attempt.Responses[i])
		}
	}
	return &AttemptResult{Attempt: attempt, Test: test}, nil
}

func (s *AttemptService) ownedAttempt(ctx context.Context, userID, attemptID uint) (*model.Attempt, error) {
	attempt, err := s.Store.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return attempt, nil
}

// hideAnswers 清除答案信息，test 为调用方独占的副本
func hideAnswers(test *model.Test) {
	for i := range test.Questions {
		q := test.Questions[i].Question
		if q == nil {
			continue
		}
		opts := q.Options.Data()
		masked := make([]model.QuestionOption, len(opts))
		for j, o := range opts {
			masked[j] = model.QuestionOption{Label: o.Label, Text: o.Text}
		}
		q.Options = datatypes.NewJSONType(masked)
		q.NumericAnswer = nil
		q.Explanation = ""
	}
}

// RedactScoring 返回去掉判分结果的副本，考试结束前考生只能看到自己的作答
func RedactScoring(r *model.AnswerResponse) *model.AnswerResponse {
	masked := *r
	masked.IsCorrect = nil
	masked.MarksObtained = 0
	return &masked
}

func answerOutcome(e Evaluation) string {
	switch {
	case !e.Attempted:
		return "unattempted"
	case *e.IsCorrect:
		return "correct"
	default:
		return "incorrect"
	}
}
