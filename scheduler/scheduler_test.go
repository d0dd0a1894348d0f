package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile_finder/config"
	"profile_finder/models"
	"profile_finder/repository"
)

type fakeReaper struct {
	mu        sync.Mutex
	torndown  []string
	reaped    []string
	reapErr   error
	reapCalls int
}

func (f *fakeReaper) Teardown(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.torndown = append(f.torndown, id)
}

func (f *fakeReaper) Reap(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reapCalls++
	return f.reaped, f.reapErr
}

// fakeRepo 只实现清理所需的行为
type fakeRepo struct {
	repository.SessionRepository
	ids    []string
	err    error
	before time.Time
}

func (f *fakeRepo) PurgeIdle(ctx context.Context, before time.Time) ([]string, error) {
	f.before = before
	return f.ids, f.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Session.IdleTimeoutMin = 30
	cfg.Scheduler.CheckIntervalSec = 1
	return cfg
}

func TestRunOncePurgesIdleSessions(t *testing.T) {
	repo := repository.NewMemorySessionRepo()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, models.NewSession("a")))
	require.NoError(t, repo.Save(ctx, models.NewSession("b")))

	reaper := &fakeReaper{reaped: []string{"expired"}}
	s := NewScheduler(testConfig(), repo, reaper)
	// 两个会话都已空闲超过30分钟
	s.now = func() time.Time { return time.Now().Add(time.Hour) }

	purged, reaped := s.RunOnce(ctx)
	assert.Equal(t, 2, purged)
	assert.Equal(t, 1, reaped)
	assert.Equal(t, 0, repo.Len())

	sort.Strings(reaper.torndown)
	assert.Equal(t, []string{"a", "b"}, reaper.torndown)

	status := s.Status()
	assert.False(t, status.IsRunning)
	assert.Equal(t, 2, status.LastPurged)
	assert.False(t, status.LastRun.IsZero())
}

func TestRunOnceKeepsActiveSessions(t *testing.T) {
	repo := repository.NewMemorySessionRepo()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, models.NewSession("a")))

	reaper := &fakeReaper{}
	purged, reaped := NewScheduler(testConfig(), repo, reaper).RunOnce(ctx)
	assert.Equal(t, 0, purged)
	assert.Equal(t, 0, reaped)
	assert.Equal(t, 1, repo.Len())
	assert.Empty(t, reaper.torndown)
}

func TestRunOnceUsesIdleTimeout(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	s := NewScheduler(testConfig(), repo, &fakeReaper{})
	s.now = func() time.Time { return now }

	s.RunOnce(context.Background())
	assert.Equal(t, now.Add(-30*time.Minute), repo.before)
}

func TestRunOnceStillReapsWhenPurgeFails(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	reaper := &fakeReaper{reaped: []string{"x"}}

	purged, reaped := NewScheduler(testConfig(), repo, reaper).RunOnce(context.Background())
	assert.Equal(t, 0, purged)
	assert.Equal(t, 1, reaped)
	assert.Equal(t, 1, reaper.reapCalls)
}

func TestNewSchedulerDefaults(t *testing.T) {
	s := NewScheduler(&config.Config{}, &fakeRepo{}, &fakeReaper{})
	assert.Equal(t, time.Minute, s.checkInterval)
	assert.Equal(t, time.Hour, s.idleTimeout)
}

func TestRunStopsOnCancel(t *testing.T) {
	reaper := &fakeReaper{}
	s := NewScheduler(testConfig(), &fakeRepo{}, reaper)
	s.checkInterval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		reaper.mu.Lock()
		defer reaper.mu.Unlock()
		return reaper.reapCalls > 0
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
