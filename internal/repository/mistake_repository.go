package repository

import (
	"context"
	"errors"
	"time"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MistakeRepository struct {
	DB *gorm.DB
}

func NewMistakeRepository(db *gorm.DB) *MistakeRepository {
	return &MistakeRepository{DB: db}
}

// 不更新 created_at，重新加入的错题在队列排序中保持原有位置
var mistakeUpsertColumns = []string{
	"user_answer",
	"correct_answer",
	"notes",
	"mistake_type",
	"source",
	"ease_factor",
	"interval_days",
	"revision_count",
	"last_revised_at",
	"next_revision_date",
	"is_mastered",
	"updated_at",
}

// Upsert 插入错题，或整体替换同一 (user, question) 的已有记录
func (r *MistakeRepository) Upsert(ctx context.Context, m *model.Mistake) error {
	m.ID = 0
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns(mistakeUpsertColumns),
	}).Create(m).Error
	if err != nil {
		return err
	}

	stored, err := r.FindByUserAndQuestion(ctx, m.UserID, m.QuestionID)
	if err != nil {
		return err
	}
	*m = *stored
	return nil
}

func (r *MistakeRepository) FindByUserAndQuestion(ctx context.Context, userID, questionID uint) (*model.Mistake, error) {
	return r.findOne(r.DB.WithContext(ctx), userID, questionID)
}

// FindForUpdate 加行锁读取错题，供复习时读改写
func (r *MistakeRepository) FindForUpdate(ctx context.Context, userID, questionID uint) (*model.Mistake, error) {
	return r.findOne(r.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID, questionID)
}

func (r *MistakeRepository) findOne(db *gorm.DB, userID, questionID uint) (*model.Mistake, error) {
	var m model.Mistake
	err := db.
		Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMistakeNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MistakeRepository) Update(ctx context.Context, m *model.Mistake) error {
	return r.DB.WithContext(ctx).Save(m).Error
}

func (r *MistakeRepository) Delete(ctx context.Context, userID, questionID uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Delete(&model.Mistake{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrMistakeNotFound
	}
	return nil
}

// RevisionQueue 返回到期未掌握的错题：从未排期的在前，其次按到期时间、创建时间升序
func (r *MistakeRepository) RevisionQueue(ctx context.Context, userID uint, now time.Time, limit int) ([]model.Mistake, error) {
	var mistakes []model.Mistake
	query := r.DB.WithContext(ctx).
		Where("user_id = ? AND is_mastered = ?", userID, false).
		Where("(next_revision_date IS NULL OR next_revision_date <= ?)", now).
		Order("CASE WHEN next_revision_date IS NULL THEN 0 ELSE 1 END").
		Order("next_revision_date ASC").
		Order("created_at ASC").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&mistakes).Error
	return mistakes, err
}

func (r *MistakeRepository) ListByUser(ctx context.Context, userID uint, includeMastered bool) ([]model.Mistake, error) {
	var mistakes []model.Mistake
	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if !includeMastered {
		query = query.Where("is_mastered = ?", false)
	}
	err := query.Order("created_at DESC").Order("id DESC").Find(&mistakes).Error
	return mistakes, err
}

type MistakeStats struct {
	Total    int64 `json:"total"`
	Mastered int64 `json:"mastered"`
	Due      int64 `json:"due"`
}

func (r *MistakeRepository) Stats(ctx context.Context, userID uint, now time.Time) (*MistakeStats, error) {
	var stats MistakeStats
	base := r.DB.WithContext(ctx).Model(&model.Mistake{}).Where("user_id = ?", userID)

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_mastered = ?", true).Count(&stats.Mastered).Error; err != nil {
		return nil, err
	}
	err := base.Session(&gorm.Session{}).
		Where("is_mastered = ?", false).
		Where("(next_revision_date IS NULL OR next_revision_date <= ?)", now).
		Count(&stats.Due).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
