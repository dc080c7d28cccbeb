package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store 聚合各实体仓储，Transaction 内的所有写操作共享同一个事务
type Store struct {
	DB        *gorm.DB
	Tests     *TestRepository
	Questions *QuestionRepository
	Attempts  *AttemptRepository
	Responses *AnswerResponseRepository
	Mistakes  *MistakeRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB:        db,
		Tests:     NewTestRepository(db),
		Questions: NewQuestionRepository(db),
		Attempts:  NewAttemptRepository(db),
		Responses: NewAnswerResponseRepository(db),
		Mistakes:  NewMistakeRepository(db),
	}
}

// Transaction 将 fn 作为一个工作单元执行，出错时回滚 tx 上的全部写入
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
