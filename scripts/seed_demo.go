// 导入演示试卷，便于本地联调考试与错题本接口
//
// 用法: go run scripts/seed_demo.go [-f scripts/demo_test.yaml]

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/pkg/database"
	"exam_prep_backend/pkg/logger"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

type demoOption struct {
	Label   string `yaml:"label"`
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
}

type demoQuestion struct {
	SubjectID uint         `yaml:"subject_id"`
	ChapterID uint         `yaml:"chapter_id"`
	Type      string       `yaml:"type"`
	Content   string       `yaml:"content"`
	Options   []demoOption `yaml:"options"`
}

type demoTest struct {
	Title           string              `yaml:"title"`
	DurationMinutes int                 `yaml:"duration_minutes"`
	MarkingScheme   model.MarkingScheme `yaml:"marking_scheme"`
	Questions       []demoQuestion      `yaml:"questions"`
}

func main() {
	file := flag.String("f", "scripts/demo_test.yaml", "试卷定义文件")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	logger.InitLogger(cfg)

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取试卷文件: %v", err)
	}
	var def demoTest
	if err := yaml.Unmarshal(data, &def); err != nil {
		log.Fatalf("解析试卷文件失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	ctx := context.Background()
	store := repository.NewStore(db)
	test := &model.Test{
		Title:           def.Title,
		TotalQuestions:  len(def.Questions),
		TotalMarks:      def.MarkingScheme.Correct * float64(len(def.Questions)),
		DurationMinutes: def.DurationMinutes,
		MarkingScheme:   datatypes.NewJSONType(def.MarkingScheme),
	}

	err = store.Transaction(ctx, func(tx *repository.Store) error {
		for i, dq := range def.Questions {
			opts := make([]model.QuestionOption, 0, len(dq.Options))
			for _, o := range dq.Options {
				opts = append(opts, model.QuestionOption{Label: o.Label, Text: o.Text, IsCorrect: o.Correct})
			}
			q := &model.Question{
				SubjectID:    dq.SubjectID,
				ChapterID:    dq.ChapterID,
				QuestionType: dq.Type,
				Content:      dq.Content,
				Options:      datatypes.NewJSONType(opts),
			}
			if err := tx.Questions.Create(ctx, q); err != nil {
				return err
			}
			test.Questions = append(test.Questions, model.TestQuestion{
				QuestionID: q.ID,
				Sequence:   i + 1,
				Marks:      def.MarkingScheme.Correct,
			})
		}
		return tx.Tests.Create(ctx, test)
	})
	if err != nil {
		log.Fatalf("导入失败: %v", err)
	}

	log.Printf("已导入试卷 %q (id=%d, %d 题)", test.Title, test.ID, len(test.Questions))
}
