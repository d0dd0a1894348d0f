package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"profile_finder/models"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository 会话快照存储
type SessionRepository interface {
	// Get 读取会话，不存在时返回 ErrSessionNotFound
	Get(ctx context.Context, id string) (*models.Session, error)
	// Save 写入会话（存在则覆盖），同时刷新 UpdatedAt
	Save(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id string) error
	// PurgeIdle 删除 before 之前未更新的会话，返回被删除的ID
	PurgeIdle(ctx context.Context, before time.Time) ([]string, error)
}

func encodeSession(s *models.Session) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	return b, nil
}

func decodeSession(id string, data []byte) (*models.Session, error) {
	s := &models.Session{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if s.Decisions == nil {
		s.Decisions = map[string]bool{}
	}
	if s.View == "" {
		s.View = models.ViewSelection
	}
	return s, nil
}
