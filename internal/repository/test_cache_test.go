package repository

import (
	"context"
	"testing"
	"time"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/testutil"
	"exam_prep_backend/internal/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCachedTestCatalog_ServesFromCacheUntilInvalidated(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	test := testutil.SeedTest(t, db, scheme, 8, testutil.MCQ(1, 1, "A"), testutil.MCQ(2, 2, "B", "C"))

	mr, rdb := newMiniRedis(t)
	catalog := NewCachedTestCatalog(NewTestRepository(db), rdb, 10*time.Minute)

	first, err := catalog.GetTest(ctx, test.ID)
	require.NoError(t, err)
	require.Len(t, first.Questions, 2)
	assert.True(t, mr.Exists(testCacheKey(test.ID)))
	assert.Equal(t, 10*time.Minute, mr.TTL(testCacheKey(test.ID)))

	require.NoError(t, db.Model(&model.Test{}).Where("id = ?", test.ID).Update("title", "Renamed").Error)

	cached, err := catalog.GetTest(ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mock Test", cached.Title)
	require.NotNil(t, cached.Questions[1].Question)
	assert.ElementsMatch(t, []string{"B", "C"}, cached.Questions[1].Question.CorrectLabels())
	assert.Equal(t, scheme, cached.Scheme())

	require.NoError(t, catalog.Invalidate(ctx, test.ID))
	assert.False(t, mr.Exists(testCacheKey(test.ID)))

	fresh, err := catalog.GetTest(ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fresh.Title)
}

func TestCachedTestCatalog_FallsBackWhenRedisDown(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	test := testutil.SeedTest(t, db, scheme, 4, testutil.MCQ(1, 1, "A"))

	mr, rdb := newMiniRedis(t)
	mr.Close()

	catalog := NewCachedTestCatalog(NewTestRepository(db), rdb, time.Minute)
	loaded, err := catalog.GetTest(ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, test.ID, loaded.ID)
}

func TestCachedTestCatalog_WithoutRedis(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	catalog := NewCachedTestCatalog(NewTestRepository(db), nil, time.Minute)

	_, err := catalog.GetTest(ctx, 42)
	assert.ErrorIs(t, err, util.ErrTestNotFound)
	assert.NoError(t, catalog.Invalidate(ctx, 42))
}
