package repository

import (
	"context"
	"errors"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *model.Attempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

func (r *AttemptRepository) Update(ctx context.Context, attempt *model.Attempt) error {
	return r.DB.WithContext(ctx).Omit("Responses").Save(attempt).Error
}

func (r *AttemptRepository) FindByID(ctx context.Context, id uint) (*model.Attempt, error) {
	return r.first(r.DB.WithContext(ctx), id)
}

// FindForUpdate 在事务内锁定 attempt 行，finish 依此串行化
func (r *AttemptRepository) FindForUpdate(ctx context.Context, id uint) (*model.Attempt, error) {
	return r.first(r.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *AttemptRepository) first(db *gorm.DB, id uint) (*model.Attempt, error) {
	var a model.Attempt
	if err := db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindWithResponses 加载作答记录，按题目 ID 排序
func (r *AttemptRepository) FindWithResponses(ctx context.Context, id uint) (*model.Attempt, error) {
	var a model.Attempt
	err := r.DB.WithContext(ctx).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_id ASC")
		}).
		First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindInProgress 返回用户在该试卷上进行中的 attempt，不存在时返回 ErrAttemptNotFound
func (r *AttemptRepository) FindInProgress(ctx context.Context, userID, testID uint) (*model.Attempt, error) {
	var a model.Attempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND test_id = ? AND status = ?", userID, testID, model.AttemptInProgress).
		Order("attempt_number DESC").
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CountByUserAndTest 包含软删除的记录，保证 attempt 序号不重复
func (r *AttemptRepository) CountByUserAndTest(ctx context.Context, userID, testID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Unscoped().
		Model(&model.Attempt{}).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) ListByUserAndTest(ctx context.Context, userID, testID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Order("attempt_number ASC").
		Find(&attempts).Error
	return attempts, err
}
