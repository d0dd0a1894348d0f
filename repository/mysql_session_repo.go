package repository

import (
	"context"
	"database/sql"
	"time"

	"profile_finder/models"
	"profile_finder/utils"
)

// MySQLSessionRepo 基于MySQL sessions表的会话存储
type MySQLSessionRepo struct {
	db *sql.DB
}

func NewMySQLSessionRepo(db *sql.DB) *MySQLSessionRepo {
	return &MySQLSessionRepo{db: db}
}

func (r *MySQLSessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT state_json FROM sessions WHERE id=?`, id).Scan(&raw)
	if utils.IsSQLNoRowsError(err) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(id, []byte(raw))
}

func (r *MySQLSessionRepo) Save(ctx context.Context, s *models.Session) error {
	s.UpdatedAt = time.Now()
	data, err := encodeSession(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO sessions (id, state_json, updated_at)
        VALUES (?, ?, ?)
        ON DUPLICATE KEY UPDATE state_json=VALUES(state_json), updated_at=VALUES(updated_at)
    `, s.ID, string(data), s.UpdatedAt)
	return err
}

func (r *MySQLSessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id=?`, id)
	return err
}

func (r *MySQLSessionRepo) PurgeIdle(ctx context.Context, before time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM sessions WHERE updated_at < ?`, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return ids, nil
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`, before); err != nil {
		return nil, err
	}
	return ids, nil
}
