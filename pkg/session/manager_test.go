package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/ports"
	"github.com/aretw0/decisiontree/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]*domain.SessionRecord
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, sessionID string, rec *domain.SessionRecord) error {
	time.Sleep(2 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]*domain.SessionRecord)
	}
	s.data[sessionID] = rec.Clone()
	return nil
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	time.Sleep(2 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.data[sessionID]; ok {
		return rec.Clone(), nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestManager_UpdateSerializesWrites(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "race-test"

	var wg sync.WaitGroup
	concurrentWrites := 20

	for i := 0; i < concurrentWrites; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := manager.Update(ctx, id, func(rec *domain.SessionRecord) error {
				rec.Turns++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Without the lock, read-modify-write would lose increments.
	rec, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, concurrentWrites, rec.Turns)
}

func TestManager_UpdateStartsNewRecord(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()

	err := manager.Update(ctx, "fresh", func(rec *domain.SessionRecord) error {
		assert.Equal(t, "fresh", rec.SessionID)
		assert.Equal(t, domain.SessionActive, rec.Status)
		rec.Answers["personality"] = "introvert"
		return nil
	})
	require.NoError(t, err)

	rec, err := manager.Load(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "introvert", rec.Answers["personality"])
}

func TestManager_UpdateAbortsOnError(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()
	boom := errors.New("boom")

	err := manager.Update(ctx, "aborted", func(rec *domain.SessionRecord) error {
		rec.Turns = 99
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = manager.Load(ctx, "aborted")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_UpdateRequiresID(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	err := manager.Update(context.Background(), "", func(*domain.SessionRecord) error { return nil })
	assert.Error(t, err)
}

func TestManager_DeleteAndList(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()

	require.NoError(t, manager.Save(ctx, "a", domain.NewSessionRecord("a")))
	require.NoError(t, manager.Save(ctx, "b", domain.NewSessionRecord("b")))

	ids, err := manager.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	require.NoError(t, manager.Delete(ctx, "a"))
	ids, err = manager.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
}

type recordingLocker struct {
	mu       sync.Mutex
	locked   []string
	unlocked int
	ttl      time.Duration
	err      error
}

func (l *recordingLocker) Lock(_ context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	l.locked = append(l.locked, key)
	l.ttl = ttl
	l.mu.Unlock()
	return func(context.Context) error {
		l.mu.Lock()
		l.unlocked++
		l.mu.Unlock()
		return nil
	}, nil
}

func TestManager_DistributedLock(t *testing.T) {
	locker := &recordingLocker{}
	manager := session.NewManager(&SlowStore{}, session.WithLocker(locker), session.WithLockTTL(5*time.Second))

	err := manager.Update(context.Background(), "s1", func(*domain.SessionRecord) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, []string{"s1"}, locker.locked)
	assert.Equal(t, 1, locker.unlocked)
	assert.Equal(t, 5*time.Second, locker.ttl)
}

func TestManager_DistributedLockFailure(t *testing.T) {
	locker := &recordingLocker{err: errors.New("lock busy")}
	manager := session.NewManager(&SlowStore{}, session.WithLocker(locker))

	called := false
	err := manager.Update(context.Background(), "s1", func(*domain.SessionRecord) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "lock busy")
	assert.False(t, called)
}
