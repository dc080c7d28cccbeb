package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/event"
	"exam_prep_backend/pkg/logger"
	"exam_prep_backend/pkg/monitoring"
	"exam_prep_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	MistakeSourceManual  = "manual"
	MistakeSourceAttempt = "attempt"
)

type MistakeService struct {
	Store     *repository.Store
	Questions QuestionCatalog
	Events    event.Publisher
	Now       func() time.Time

	mu     sync.RWMutex
	limits config.RevisionConfig
}

func NewMistakeService(store *repository.Store, questions QuestionCatalog, events event.Publisher, limits config.RevisionConfig) *MistakeService {
	return &MistakeService{
		Store:     store,
		Questions: questions,
		Events:    events,
		Now:       time.Now,
		limits:    limits,
	}
}

// SetLimits 替换复习队列的数量限制，配置热更新时调用
func (s *MistakeService) SetLimits(limits config.RevisionConfig) {
	s.mu.Lock()
	s.limits = limits
	s.mu.Unlock()
}

type AddMistakeRequest struct {
	QuestionID    uint   `json:"questionId" binding:"required"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Notes         string `json:"notes"`
	MistakeType   string `json:"mistakeType"`
	Source        string `json:"source"`
}

// Add 将题目记入错题本，已存在的条目被替换并重新开始复习计划
func (s *MistakeService) Add(ctx context.Context, userID uint, req AddMistakeRequest) (*model.Mistake, error) {
	ctx, span := tracing.StartSpan(ctx, "MistakeService.Add",
		attribute.Int64("user.id", int64(userID)),
		attribute.Int64("question.id", int64(req.QuestionID)),
	)
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	question, err := s.Questions.GetQuestion(ctx, req.QuestionID)
	if err != nil {
		return nil, err
	}

	m := s.newEntry(userID, question, req)
	err = s.Store.Transaction(ctx, func(tx *repository.Store) error {
		return tx.Mistakes.Upsert(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	s.afterAdd(ctx, m)
	return m, nil
}

func (s *MistakeService) Remove(ctx context.Context, userID, questionID uint) error {
	if err := s.Store.Mistakes.Delete(ctx, userID, questionID); err != nil {
		return err
	}
	publishEvent(ctx, s.Events, event.MistakeRemoved, MistakeEvent{UserID: userID, QuestionID: questionID})
	return nil
}

// UpdateRevisionStatus 按 0-5 的质量评分记录一次复习并重新排期
func (s *MistakeService) UpdateRevisionStatus(ctx context.Context, userID, questionID uint, quality int) (*model.Mistake, error) {
	ctx, span := tracing.StartSpan(ctx, "MistakeService.UpdateRevisionStatus",
		attribute.Int64("user.id", int64(userID)),
		attribute.Int64("question.id", int64(questionID)),
		attribute.Int("quality", quality),
	)
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	if err = ValidateQuality(quality); err != nil {
		return nil, err
	}

	var (
		entry         *model.Mistake
		outcome       RevisionOutcome
		newlyMastered bool
	)
	err = s.Store.Transaction(ctx, func(tx *repository.Store) error {
		m, err := tx.Mistakes.FindForUpdate(ctx, userID, questionID)
		if err != nil {
			return err
		}

		now := s.Now()
		outcome, err = ScheduleRevision(revisionStateOf(m), quality, now)
		if err != nil {
			return err
		}

		newlyMastered = outcome.Mastered && !m.IsMastered
		m.EaseFactor = outcome.EaseFactor
		m.IntervalDays = outcome.IntervalDays
		m.RevisionCount = outcome.Repetitions
		m.LastRevisedAt = &now
		next := outcome.NextRevisionDate
		m.NextRevisionDate = &next
		m.IsMastered = outcome.Mastered

		entry = m
		return tx.Mistakes.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	result := "fail"
	if outcome.Passed {
		result = "pass"
	}
	monitoring.RevisionReviews.WithLabelValues(result).Inc()

	if newlyMastered {
		monitoring.MasteryReached.Inc()
		logger.Log.Info("Mistake mastered", zap.Uint("userId", userID), zap.Uint("questionId", questionID))
		publishEvent(ctx, s.Events, event.MistakeMastered, MistakeEvent{UserID: userID, QuestionID: questionID})
	}
	return entry, nil
}

// GetRevisionQueue 返回已到期且未掌握的错题，逾期最久的在前
// limit <= 0 时使用默认值，超过上限时截断
func (s *MistakeService) GetRevisionQueue(ctx context.Context, userID uint, limit int) ([]model.Mistake, error) {
	return s.Store.Mistakes.RevisionQueue(ctx, userID, s.Now(), s.queueLimit(limit))
}

func (s *MistakeService) List(ctx context.Context, userID uint, includeMastered bool) ([]model.Mistake, error) {
	return s.Store.Mistakes.ListByUser(ctx, userID, includeMastered)
}

func (s *MistakeService) Stats(ctx context.Context, userID uint) (*repository.MistakeStats, error) {
	return s.Store.Mistakes.Stats(ctx, userID, s.Now())
}

// CaptureFromAttempt 将已交卷 attempt 中答错的题目全部记入错题本
func (s *MistakeService) CaptureFromAttempt(ctx context.Context, userID, attemptID uint) ([]model.Mistake, error) {
	ctx, span := tracing.StartSpan(ctx, "MistakeService.CaptureFromAttempt",
		attribute.Int64("attempt.id", int64(attemptID)),
	)
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	attempt, err := s.Store.Attempts.FindWithResponses(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		err = util.ErrPermissionDenied
		return nil, err
	}
	if attempt.Status != model.AttemptSubmitted {
		err = util.ErrAttemptNotSubmitted
		return nil, err
	}

	entries := make([]*model.Mistake, 0)
	for _, r := range attempt.Responses {
		if !r.IsAttempted || r.IsCorrect == nil || *r.IsCorrect {
			continue
		}
		question, qerr := s.Questions.GetQuestion(ctx, r.QuestionID)
		if qerr != nil {
			err = qerr
			return nil, err
		}
		entries = append(entries, s.newEntry(userID, question, AddMistakeRequest{
			QuestionID: r.QuestionID,
			UserAnswer: strings.Join(r.SelectedOptions.Data(), ","),
			Source:     MistakeSourceAttempt,
		}))
	}

	err = s.Store.Transaction(ctx, func(tx *repository.Store) error {
		for _, m := range entries {
			if err := tx.Mistakes.Upsert(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]model.Mistake, 0, len(entries))
	for _, m := range entries {
		s.afterAdd(ctx, m)
		out = append(out, *m)
	}
	logger.Log.Info("Captured mistakes from attempt",
		zap.Uint("attemptId", attemptID),
		zap.Int("count", len(out)),
	)
	return out, nil
}

func (s *MistakeService) newEntry(userID uint, question *model.Question, req AddMistakeRequest) *model.Mistake {
	correct := req.CorrectAnswer
	if correct == "" {
		correct = strings.Join(question.CorrectLabels(), ",")
	}
	source := req.Source
	if source == "" {
		source = MistakeSourceManual
	}

	m := &model.Mistake{
		UserID:        userID,
		QuestionID:    question.ID,
		UserAnswer:    req.UserAnswer,
		CorrectAnswer: correct,
		Notes:         req.Notes,
		MistakeType:   req.MistakeType,
		Source:        source,
	}
	m.CreatedAt = s.Now()
	m.ResetRevision()
	return m
}

func (s *MistakeService) afterAdd(ctx context.Context, m *model.Mistake) {
	monitoring.MistakesAdded.WithLabelValues(m.Source).Inc()
	publishEvent(ctx, s.Events, event.MistakeAdded, MistakeEvent{
		UserID:     m.UserID,
		QuestionID: m.QuestionID,
		Source:     m.Source,
	})
}

func (s *MistakeService) queueLimit(limit int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		return s.limits.DefaultQueueLimit
	}
	if s.limits.MaxQueueLimit > 0 && limit > s.limits.MaxQueueLimit {
		return s.limits.MaxQueueLimit
	}
	return limit
}
