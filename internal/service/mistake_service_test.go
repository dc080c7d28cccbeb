package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/testutil"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQuestions(t *testing.T, f *fixture, n int) []uint {
	t.Helper()
	specs := make([]testutil.QuestionSpec, n)
	for i := range specs {
		specs[i] = testutil.MCQ(1, 1, "A")
	}
	test := testutil.SeedTest(t, f.db, negativeMarking, float64(4*n), specs...)
	ids := make([]uint, n)
	for i := range ids {
		ids[i] = qid(test, i)
	}
	return ids
}

func TestMistakeService_AddFillsCorrectAnswerFromCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	test := seedScenario(t, f)

	m, err := f.mistakes.Add(ctx, student, AddMistakeRequest{
		QuestionID: qid(test, 1),
		UserAnswer: "B",
		Notes:      "forgot C",
	})
	require.NoError(t, err)

	assert.NotZero(t, m.ID)
	assert.Equal(t, "B,C", m.CorrectAnswer)
	assert.Equal(t, MistakeSourceManual, m.Source)
	assert.Equal(t, model.DefaultEaseFactor, m.EaseFactor)
	assert.Equal(t, 0, m.RevisionCount)
	assert.Nil(t, m.NextRevisionDate)
	assert.False(t, m.IsMastered)
	assert.Equal(t, 1, f.events.count(event.MistakeAdded))

	_, err = f.mistakes.Add(ctx, student, AddMistakeRequest{QuestionID: 9999})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestMistakeService_ReAddStartsOver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := seedQuestions(t, f, 1)

	first, err := f.mistakes.Add(ctx, student, AddMistakeRequest{QuestionID: ids[0], UserAnswer: "B", Notes: "first"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = f.mistakes.UpdateRevisionStatus(ctx, student, ids[0], 5)
		require.NoError(t, err)
	}

	f.clock.Advance(48 * time.Hour)
	again, err := f.mistakes.Add(ctx, student, AddMistakeRequest{QuestionID: ids[0], UserAnswer: "C", Notes: "second"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "C", again.UserAnswer)
	assert.Equal(t, "second", again.Notes)
	assert.Equal(t, 0, again.RevisionCount)
	assert.Equal(t, 0, again.IntervalDays)
	assert.Equal(t, model.DefaultEaseFactor, again.EaseFactor)
	assert.Nil(t, again.LastRevisedAt)
	assert.Nil(t, again.NextRevisionDate)
	assert.False(t, again.IsMastered)
	assert.True(t, first.CreatedAt.Equal(again.CreatedAt))

	list, err := f.mistakes.List(ctx, student, true)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMistakeService_Remove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := seedQuestions(t, f, 1)

	_, err := f.mistakes.Add(ctx, student, AddMistakeRequest{QuestionID: ids[0]})
	require.NoError(t, err)

	assert.ErrorIs(t, f.mistakes.Remove(ctx, other, ids[0]), util.ErrMistakeNotFound)
	require.NoError(t, f.mistakes.Remove(ctx, student, ids[0]))
	assert.ErrorIs(t, f.mistakes.Remove(ctx, student, ids[0]), util.ErrNotFound)
	assert.Equal(t, 1, f.events.count(event.MistakeRemoved))
}

func TestMistakeService_UpdateRevisionStatusFromStoredState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := seedQuestions(t, f, 2)

	for _, id := range ids {
		m, err := f.mistakes.Add(ctx, student, AddMistakeRequest{QuestionID: id})
		require.NoError(t, err)
		m.IntervalDays = 6
		m.RevisionCount = 1
		require.NoError(t, f.store.Mistakes.Update(ctx, m))
	}

	passed, err := f.mistakes.UpdateRevisionStatus(ctx, student, ids[0], 4)
	require.NoError(t, err)
	assert.Equal(t, 2, passed.RevisionCount)
	assert.Equal(t, 15, passed.IntervalDays)
	assert.InDelta(t, 2.5, passed.EaseFactor, 1e-9)
	assert.False(t, passed.IsMastered)
	require.NotNil(t, passed.NextRevisionDate)
	assert.True(t, f.clock.Now().AddDate(0, 0, 15).Equal(*passed.NextRevisionDate))
	require.NotNil(t, passed.LastRevisedAt)
	assert.True(t, f.clock.Now().Equal(*passed.LastRevisedAt))

	failed, err := f.mistakes.UpdateRevisionStatus(ctx, student, ids[1], 1)
	require.NoError(t, err)
	assert.Equal(t, 0, failed.RevisionCount)
	assert.Equal(t, 1, failed.IntervalDays)
	assert.InDelta(t, 1.96, failed.EaseFactor, 1e-9)
	assert.False(t, failed.IsMastered)

	stored, err := f.store.Mistakes.FindByUserAndQuestion(ctx, student, ids[1])
	require.NoError(t, err)
	assert.InDelta(t, 1.96, stored.EaseFactor, 1e-9)
}

func TestMistakeService_UpdateRevisionStatusErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := seedQuestions(t, f, 1)

	for _, q := range []int{-1, 6} {
		_, err := f.mistakes.UpdateRevisionStatus(ctx, student, ids[0], q)
		var verr *util.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "quality", verr.Field)
	}

	_, err := f.mistakes.UpdateRevisionStatus(ctx, student, ids[0], 3)
	assert.ErrorIs(t, err, util.ErrMistakeNotFound)
}

func TestMistakeService_MasteryRemovesFromQueue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := seedQuestions(t, f, 1)
	_, err := f.mistakes.Add(ctx, student, AddMistakeRequest{QuestionID: ids[0]})
	require.NoError(t, err)

	wantDays := []int{1, 6, 16, 45}
	var last *model.Mistake
	for i, days := range wantDays {
		queue, err := f.mistakes.GetRevisionQueue(ctx, student, 0)
		require.NoError(t, err)
		require.Len(t, queue, 1, "review %d should be due", i+1)

		last, err = f.mistakes.UpdateRevisionStatus(ctx, student, ids[0], 5)
		require.NoError(t, err)
		assert.Equal(t, days, last.IntervalDays)

		// 间隔未到之前不出现在队列中
		queue, err = f.mistakes.GetRevisionQueue(ctx, student, 0)
		require.NoError(t, err)
		assert.Empty(t, queue)

		f.clock.Advance(time.Duration(days) * 24 * time.Hour)
	}

	assert.True(t, last.IsMastered)
	assert.Equal(t, 4, last.RevisionCount)
	assert.Equal(t, 1, f.events.count(event.MistakeMastered))

	queue, err := f.mistakes.GetRevisionQueue(ctx, student, 0)
	require.NoError(t, err)
	assert.Empty(t, queue)

	stats, err := f.mistakes.Stats(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Mastered)
	assert.Equal(t, int64(0), stats.Due)

	active, err := f.mistakes.List(ctx, student, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	// 重新加入后恢复
	_, err = f.mistakes.Add(ctx, student, AddMistakeRequest{QuestionID: ids[0]})
	require.NoError(t, err)
	queue, err = f.mistakes.GetRevisionQueue(ctx, student, 0)
	require.NoError(t, err)
	assert.Len(t, queue, 1)
}

func TestMistakeService_RevisionQueueLimits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := seedQuestions(t, f, 5)
	for _, id := range ids {
		_, err := f.mistakes.Add(ctx, student, AddMistakeRequest{QuestionID: id})
		require.NoError(t, err)
		f.clock.Advance(time.Minute)
	}

	f.mistakes.SetLimits(config.RevisionConfig{DefaultQueueLimit: 2, MaxQueueLimit: 3})

	cases := []struct {
		limit int
		want  int
	}{
		{0, 2},
		{-5, 2},
		{1, 1},
		{3, 3},
		{50, 3},
	}
	for _, tc := range cases {
		queue, err := f.mistakes.GetRevisionQueue(ctx, student, tc.limit)
		require.NoError(t, err)
		assert.Len(t, queue, tc.want, "limit %d", tc.limit)
	}

	queue, err := f.mistakes.GetRevisionQueue(ctx, student, 3)
	require.NoError(t, err)
	assert.Equal(t, ids[0], queue[0].QuestionID, "oldest first")
	assert.Equal(t, ids[2], queue[2].QuestionID)
}

func TestMistakeService_CaptureFromAttempt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	test := seedScenario(t, f)

	a, err := f.attempts.Start(ctx, student, test.ID)
	require.NoError(t, err)
	_, err = f.attempts.SubmitAnswer(ctx, student, a.ID, qid(test, 0), answer("A"))
	require.NoError(t, err)
	_, err = f.attempts.SubmitAnswer(ctx, student, a.ID, qid(test, 1), answer("C", "B", "A"))
	require.NoError(t, err)

	_, err = f.mistakes.CaptureFromAttempt(ctx, student, a.ID)
	assert.ErrorIs(t, err, util.ErrInvalidState)

	_, err = f.attempts.Finish(ctx, student, a.ID)
	require.NoError(t, err)

	_, err = f.mistakes.CaptureFromAttempt(ctx, other, a.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	captured, err := f.mistakes.CaptureFromAttempt(ctx, student, a.ID)
	require.NoError(t, err)
	require.Len(t, captured, 1)
	assert.Equal(t, qid(test, 1), captured[0].QuestionID)
	assert.Equal(t, "A,B,C", captured[0].UserAnswer)
	assert.Equal(t, "B,C", captured[0].CorrectAnswer)
	assert.Equal(t, MistakeSourceAttempt, captured[0].Source)
	assert.Equal(t, 1, f.events.count(event.MistakeAdded))

	// 再次收集只替换，不重复
	_, err = f.mistakes.CaptureFromAttempt(ctx, student, a.ID)
	require.NoError(t, err)
	list, err := f.mistakes.List(ctx, student, true)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
