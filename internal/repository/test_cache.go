package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const testCacheKeyPrefix = "exam_prep:test:"

// CachedTestCatalog 从 redis 读取试卷结构（试卷 + 有序题目），未命中时回源数据库
// Redis 客户端为 nil 时不启用缓存
type CachedTestCatalog struct {
	Tests *TestRepository
	Redis *redis.Client
	TTL   time.Duration
}

func NewCachedTestCatalog(tests *TestRepository, rdb *redis.Client, ttl time.Duration) *CachedTestCatalog {
	return &CachedTestCatalog{Tests: tests, Redis: rdb, TTL: ttl}
}

func testCacheKey(testID uint) string {
	return fmt.Sprintf("%s%d", testCacheKeyPrefix, testID)
}

func (c *CachedTestCatalog) GetTest(ctx context.Context, testID uint) (*model.Test, error) {
	if c.Redis == nil {
		return c.Tests.FindWithQuestions(ctx, testID)
	}

	key := testCacheKey(testID)
	val, err := c.Redis.Get(ctx, key).Result()
	if err == nil {
		var t model.Test
		if err := json.Unmarshal([]byte(val), &t); err == nil {
			return &t, nil
		}
		logger.Log.Warn("discarding undecodable cached test", zap.Uint("testId", testID))
	} else if err != redis.Nil {
		// 缓存不可用时直接读库
		logger.Log.Warn("test cache read failed", zap.Uint("testId", testID), zap.Error(err))
	}

	t, err := c.Tests.FindWithQuestions(ctx, testID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(t); err == nil {
		if err := c.Redis.Set(ctx, key, data, c.TTL).Err(); err != nil {
			logger.Log.Warn("test cache write failed", zap.Uint("testId", testID), zap.Error(err))
		}
	}
	return t, nil
}

// Invalidate 删除缓存的试卷结构，例如试卷计数变化之后
func (c *CachedTestCatalog) Invalidate(ctx context.Context, testID uint) error {
	if c.Redis == nil {
		return nil
	}
	return c.Redis.Del(ctx, testCacheKey(testID)).Err()
}
