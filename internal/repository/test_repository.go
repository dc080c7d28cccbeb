package repository

import (
	"context"
	"errors"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

// Create 保存试卷及其题目组成（供内容目录和脚本使用）
func (r *TestRepository) Create(ctx context.Context, test *model.Test) error {
	return r.DB.WithContext(ctx).Create(test).Error
}

func (r *TestRepository) FindByID(ctx context.Context, id uint) (*model.Test, error) {
	var t model.Test
	if err := r.DB.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindWithQuestions 加载试卷及按 sequence 排序的题目
func (r *TestRepository) FindWithQuestions(ctx context.Context, id uint) (*model.Test, error) {
	var t model.Test
	err := r.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC").Order("id ASC")
		}).
		Preload("Questions.Question").
		First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	return &t, nil
}

// LockForUpdate 对试卷行加锁，使并发的开始考试串行执行
func (r *TestRepository) LockForUpdate(ctx context.Context, id uint) error {
	var t model.Test
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrTestNotFound
	}
	return err
}

func (r *TestRepository) IncrementAttempts(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).
		Model(&model.Test{}).
		Where("id = ?", id).
		UpdateColumn("total_attempts", gorm.Expr("total_attempts + ?", 1)).Error
}
