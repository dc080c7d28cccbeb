package repository

import (
	"context"
	"errors"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerResponseRepository struct {
	DB *gorm.DB
}

func NewAnswerResponseRepository(db *gorm.DB) *AnswerResponseRepository {
	return &AnswerResponseRepository{DB: db}
}

var responseUpsertColumns = []string{
	"selected_options",
	"numeric_answer",
	"is_attempted",
	"is_correct",
	"marks_obtained",
	"time_spent_seconds",
	"marked_for_review",
	"updated_at",
}

// Upsert 插入作答，或整体替换同一 (attempt, question) 的已有记录
// 写入后重新读取 resp，使其 ID 与保留下来的行一致
func (r *AnswerResponseRepository) Upsert(ctx context.Context, resp *model.AnswerResponse) error {
	resp.ID = 0
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns(responseUpsertColumns),
	}).Create(resp).Error
	if err != nil {
		return err
	}

	stored, err := r.FindByAttemptAndQuestion(ctx, resp.AttemptID, resp.QuestionID)
	if err != nil {
		return err
	}
	*resp = *stored
	return nil
}

func (r *AnswerResponseRepository) FindByAttemptAndQuestion(ctx context.Context, attemptID, questionID uint) (*model.AnswerResponse, error) {
	var resp model.AnswerResponse
	err := r.DB.WithContext(ctx).
		Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
		First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

func (r *AnswerResponseRepository) ListByAttempt(ctx context.Context, attemptID uint) ([]model.AnswerResponse, error) {
	var responses []model.AnswerResponse
	err := r.DB.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Order("question_id ASC").
		Find(&responses).Error
	return responses, err
}
