package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/anashalam/music-app-backend/domain"
)

type HistoryRepository interface {
	Record(ctx context.Context, entry *domain.HistoryEntry) error
}

type historyRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Record(ctx context.Context, entry *domain.HistoryEntry) error {
	action := entry.ActionType
	if action == "" {
		action = "PLAY"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_history (user_id, song_id, action_type, created_at) VALUES (?, ?, ?, ?)`,
		entry.UserID, entry.SongID, action, time.Now().Unix())
	return err
}
