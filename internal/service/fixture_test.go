package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/testutil"

	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return p.err
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e == eventType {
			n++
		}
	}
	return n
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	db       *gorm.DB
	store    *repository.Store
	events   *recordingPublisher
	clock    *clock
	attempts *AttemptService
	mistakes *MistakeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	catalog := repository.NewCachedTestCatalog(store.Tests, nil, 0)
	events := &recordingPublisher{}
	clk := &clock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	attempts := NewAttemptService(store, catalog, store.Questions, events)
	attempts.Now = clk.Now

	mistakes := NewMistakeService(store, store.Questions, events, config.RevisionConfig{
		DefaultQueueLimit: 20,
		MaxQueueLimit:     100,
	})
	mistakes.Now = clk.Now

	return &fixture{
		db:       db,
		store:    store,
		events:   events,
		clock:    clk,
		attempts: attempts,
		mistakes: mistakes,
	}
}
