package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/testutil"
	"exam_prep_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var scheme = model.MarkingScheme{Correct: 4, Incorrect: -1, Unattempted: 0}

func boolPtr(b bool) *bool { return &b }

func TestTestRepository_FindWithQuestionsOrdersBySequence(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	test := testutil.SeedTest(t, db, scheme, 12,
		testutil.MCQ(1, 10, "A"),
		testutil.MCQ(1, 11, "B"),
		testutil.MCQ(2, 20, "C"),
	)

	// 倒序的 sequence
	for i, tq := range test.Questions {
		require.NoError(t, db.Model(&model.TestQuestion{}).Where("id = ?", tq.ID).Update("sequence", 10-i).Error)
	}

	repo := NewTestRepository(db)
	loaded, err := repo.FindWithQuestions(ctx, test.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 3)
	assert.Equal(t, test.Questions[2].QuestionID, loaded.Questions[0].QuestionID)
	assert.Equal(t, test.Questions[0].QuestionID, loaded.Questions[2].QuestionID)
	require.NotNil(t, loaded.Questions[0].Question)
	assert.Equal(t, uint(2), loaded.Questions[0].Question.SubjectID)
	assert.Equal(t, scheme, loaded.Scheme())

	_, err = repo.FindWithQuestions(ctx, 9999)
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestTestRepository_IncrementAttempts(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	test := testutil.SeedTest(t, db, scheme, 4, testutil.MCQ(1, 1, "A"))
	repo := NewTestRepository(db)

	require.NoError(t, repo.IncrementAttempts(ctx, test.ID))
	require.NoError(t, repo.IncrementAttempts(ctx, test.ID))

	loaded, err := repo.FindByID(ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.TotalAttempts)
	assert.NoError(t, repo.LockForUpdate(ctx, test.ID))
	assert.ErrorIs(t, repo.LockForUpdate(ctx, 9999), util.ErrTestNotFound)
}

func TestAttemptRepository_InProgressAndCount(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewAttemptRepository(db)

	_, err := repo.FindInProgress(ctx, 7, 1)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)

	done := &model.Attempt{TestID: 1, UserID: 7, AttemptNumber: 1, Status: model.AttemptSubmitted, StartedAt: time.Now()}
	active := &model.Attempt{TestID: 1, UserID: 7, AttemptNumber: 2, Status: model.AttemptInProgress, StartedAt: time.Now()}
	other := &model.Attempt{TestID: 1, UserID: 8, AttemptNumber: 1, Status: model.AttemptInProgress, StartedAt: time.Now()}
	for _, a := range []*model.Attempt{done, active, other} {
		require.NoError(t, repo.Create(ctx, a))
	}

	found, err := repo.FindInProgress(ctx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, active.ID, found.ID)

	count, err := repo.CountByUserAndTest(ctx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// 软删除的 attempt 仍计入序号
	require.NoError(t, db.Delete(&model.Attempt{}, done.ID).Error)
	count, err = repo.CountByUserAndTest(ctx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	list, err := repo.ListByUserAndTest(ctx, 7, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].AttemptNumber)
}

func TestAnswerResponseRepository_UpsertReplaces(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewAnswerResponseRepository(db)

	first := &model.AnswerResponse{
		AttemptID:        1,
		QuestionID:       5,
		SelectedOptions:  datatypes.NewJSONType([]string{"A"}),
		IsAttempted:      true,
		IsCorrect:        boolPtr(true),
		MarksObtained:    4,
		TimeSpentSeconds: 30,
		MarkedForReview:  true,
	}
	require.NoError(t, repo.Upsert(ctx, first))
	firstID := first.ID
	require.NotZero(t, firstID)

	second := &model.AnswerResponse{
		AttemptID:        1,
		QuestionID:       5,
		SelectedOptions:  datatypes.NewJSONType([]string{"B"}),
		IsAttempted:      true,
		IsCorrect:        boolPtr(false),
		MarksObtained:    -1,
		TimeSpentSeconds: 12,
	}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, firstID, second.ID)

	all, err := repo.ListByAttempt(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"B"}, all[0].SelectedOptions.Data())
	assert.Equal(t, -1.0, all[0].MarksObtained)
	assert.Equal(t, 12, all[0].TimeSpentSeconds)
	assert.False(t, all[0].MarkedForReview)
	require.NotNil(t, all[0].IsCorrect)
	assert.False(t, *all[0].IsCorrect)
}

func TestMistakeRepository_UpsertResetsRevisionState(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewMistakeRepository(db)
	created := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	m := &model.Mistake{UserID: 3, QuestionID: 9, UserAnswer: "A", CorrectAnswer: "B", Source: "manual"}
	m.ResetRevision()
	m.CreatedAt = created
	require.NoError(t, repo.Upsert(ctx, m))

	due := created.AddDate(0, 0, 30)
	m.RevisionCount = 4
	m.IntervalDays = 30
	m.EaseFactor = 2.8
	m.IsMastered = true
	m.NextRevisionDate = &due
	require.NoError(t, repo.Update(ctx, m))

	again := &model.Mistake{UserID: 3, QuestionID: 9, UserAnswer: "C", CorrectAnswer: "B", Notes: "again"}
	again.ResetRevision()
	again.CreatedAt = created.AddDate(0, 1, 0)
	require.NoError(t, repo.Upsert(ctx, again))

	assert.Equal(t, m.ID, again.ID)
	assert.Equal(t, "C", again.UserAnswer)
	assert.Equal(t, "again", again.Notes)
	assert.Equal(t, 0, again.RevisionCount)
	assert.Equal(t, 0, again.IntervalDays)
	assert.Equal(t, model.DefaultEaseFactor, again.EaseFactor)
	assert.False(t, again.IsMastered)
	assert.Nil(t, again.NextRevisionDate)
	assert.True(t, again.CreatedAt.Equal(created), "created_at is kept on re-add")
}

func TestMistakeRepository_Delete(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewMistakeRepository(db)

	assert.ErrorIs(t, repo.Delete(ctx, 1, 1), util.ErrMistakeNotFound)

	m := &model.Mistake{UserID: 1, QuestionID: 1}
	m.ResetRevision()
	require.NoError(t, repo.Upsert(ctx, m))
	require.NoError(t, repo.Delete(ctx, 1, 1))

	_, err := repo.FindByUserAndQuestion(ctx, 1, 1)
	assert.ErrorIs(t, err, util.ErrMistakeNotFound)
}

func TestMistakeRepository_RevisionQueueOrdering(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewMistakeRepository(db)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	at := func(days int) *time.Time {
		ts := now.AddDate(0, 0, days)
		return &ts
	}
	entries := []struct {
		questionID uint
		created    time.Time
		next       *time.Time
		mastered   bool
		userID     uint
	}{
		{questionID: 1, created: now.Add(-5 * time.Hour), next: at(-1)},
		{questionID: 2, created: now.Add(-4 * time.Hour), next: nil},
		{questionID: 3, created: now.Add(-3 * time.Hour), next: at(-3)},
		{questionID: 4, created: now.Add(-6 * time.Hour), next: nil},
		{questionID: 5, created: now.Add(-7 * time.Hour), next: at(2)},                   // 未到期
		{questionID: 6, created: now.Add(-8 * time.Hour), next: at(-10), mastered: true}, // 已掌握
		{questionID: 7, created: now.Add(-9 * time.Hour), next: at(-1), userID: 2},       // 其他用户
		{questionID: 8, created: now.Add(-2 * time.Hour), next: at(-1)},
	}
	for _, e := range entries {
		userID := e.userID
		if userID == 0 {
			userID = 1
		}
		m := &model.Mistake{UserID: userID, QuestionID: e.questionID}
		m.ResetRevision()
		m.CreatedAt = e.created
		m.NextRevisionDate = e.next
		m.IsMastered = e.mastered
		require.NoError(t, repo.Upsert(ctx, m))
	}

	queue, err := repo.RevisionQueue(ctx, 1, now, 0)
	require.NoError(t, err)

	var got []uint
	for _, m := range queue {
		got = append(got, m.QuestionID)
	}
	assert.Equal(t, []uint{4, 2, 3, 1, 8}, got)

	limited, err := repo.RevisionQueue(ctx, 1, now, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, uint(4), limited[0].QuestionID)

	stats, err := repo.Stats(ctx, 1, now)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.Total)
	assert.Equal(t, int64(1), stats.Mastered)
	assert.Equal(t, int64(5), stats.Due)

	active, err := repo.ListByUser(ctx, 1, false)
	require.NoError(t, err)
	assert.Len(t, active, 6)
	all, err := repo.ListByUser(ctx, 1, true)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestStore_TransactionRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	store := NewStore(db)
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx *Store) error {
		a := &model.Attempt{TestID: 1, UserID: 1, AttemptNumber: 1, Status: model.AttemptInProgress, StartedAt: time.Now()}
		if err := tx.Attempts.Create(ctx, a); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := store.Attempts.CountByUserAndTest(ctx, 1, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}
