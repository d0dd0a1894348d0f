package repository

import (
	"context"
	"sync"
	"time"

	"profile_finder/models"
)

type memoryEntry struct {
	data      []byte
	updatedAt time.Time
}

// MemorySessionRepo 进程内会话存储，保存序列化后的副本，避免调用方共享同一对象
type MemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (r *MemorySessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return decodeSession(id, entry.data)
}

func (r *MemorySessionRepo) Save(ctx context.Context, s *models.Session) error {
	s.UpdatedAt = r.now()
	data, err := encodeSession(s)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.sessions[s.ID] = memoryEntry{data: data, updatedAt: s.UpdatedAt}
	r.mu.Unlock()
	return nil
}

func (r *MemorySessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

func (r *MemorySessionRepo) PurgeIdle(ctx context.Context, before time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	purged := make([]string, 0)
	for id, entry := range r.sessions {
		if entry.updatedAt.Before(before) {
			delete(r.sessions, id)
			purged = append(purged, id)
		}
	}
	return purged, nil
}

// Len 当前会话数
func (r *MemorySessionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
