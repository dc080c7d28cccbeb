// Package testutil 为测试提供内存 SQLite 存储和试卷数据
package testutil

import (
	"context"
	"fmt"
	"testing"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB 打开独立的内存数据库并完成迁移
// 单连接保持内存库存活，并使事务串行执行
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// QuestionSpec 描述 SeedTest 要创建的一道题
type QuestionSpec struct {
	SubjectID uint
	ChapterID uint
	Options   []string // 全部选项标签
	Correct   []string // 正确选项标签
	Type      string
}

func MCQ(subjectID, chapterID uint, correct ...string) QuestionSpec {
	return QuestionSpec{
		SubjectID: subjectID,
		ChapterID: chapterID,
		Options:   []string{"A", "B", "C", "D"},
		Correct:   correct,
		Type:      model.QuestionTypeSingleChoice,
	}
}

// SeedTest 创建题目以及按给定顺序引用它们的试卷
func SeedTest(t testing.TB, db *gorm.DB, scheme model.MarkingScheme, totalMarks float64, specs ...QuestionSpec) *model.Test {
	t.Helper()
	ctx := context.Background()

	test := &model.Test{
		Title:           "Mock Test",
		TotalQuestions:  len(specs),
		TotalMarks:      totalMarks,
		DurationMinutes: 180,
		MarkingScheme:   datatypes.NewJSONType(scheme),
	}

	for i, spec := range specs {
		correct := make(map[string]bool, len(spec.Correct))
		for _, c := range spec.Correct {
			correct[c] = true
		}
		opts := make([]model.QuestionOption, 0, len(spec.Options))
		for _, label := range spec.Options {
			opts = append(opts, model.QuestionOption{Label: label, Text: "Option " + label, IsCorrect: correct[label]})
		}
		q := &model.Question{
			SubjectID:    spec.SubjectID,
			ChapterID:    spec.ChapterID,
			QuestionType: spec.Type,
			Content:      fmt.Sprintf("Question %d", i+1),
			Options:      datatypes.NewJSONType(opts),
		}
		if err := db.WithContext(ctx).Create(q).Error; err != nil {
			t.Fatalf("seed question: %v", err)
		}
		test.Questions = append(test.Questions, model.TestQuestion{
			QuestionID: q.ID,
			Sequence:   i + 1,
			Marks:      scheme.Correct,
		})
	}

	if err := db.WithContext(ctx).Create(test).Error; err != nil {
		t.Fatalf("seed test: %v", err)
	}
	return test
}
