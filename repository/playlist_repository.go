package repository

import (
	"context"
	"database/sql"

	"github.com/anashalam/music-app-backend/domain"
)

type PlaylistRepository interface {
	Create(ctx context.Context, p *domain.Playlist) error
	// FindOwned looks up a playlist scoped to its owner. A playlist that
	// exists but belongs to someone else is indistinguishable from one that
	// does not exist.
	FindOwned(ctx context.Context, id, userID string) (*domain.Playlist, error)
	Delete(ctx context.Context, id, userID string) error
	AddSong(ctx context.Context, playlistID, songID string) error
	HasSong(ctx context.Context, playlistID, songID string) (bool, error)
	RemoveSong(ctx context.Context, playlistID, songID string) error
	Songs(ctx context.Context, playlistID string) ([]domain.Song, error)
}

type playlistRepository struct {
	db *sql.DB
}

func NewPlaylistRepository(db *sql.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, p *domain.Playlist) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO playlists (id, user_id, name) VALUES (?, ?, ?)`,
		p.ID, p.UserID, p.Name)
	return err
}

func (r *playlistRepository) FindOwned(ctx context.Context, id, userID string) (*domain.Playlist, error) {
	var p domain.Playlist
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name FROM playlists WHERE id = ? AND user_id = ?`,
		id, userID).Scan(&p.ID, &p.UserID, &p.Name)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *playlistRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM playlists WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *playlistRepository) AddSong(ctx context.Context, playlistID, songID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO playlist_songs (playlist_id, song_id) VALUES (?, ?)`,
		playlistID, songID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *playlistRepository) HasSong(ctx context.Context, playlistID, songID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM playlist_songs WHERE playlist_id = ? AND song_id = ?)`,
		playlistID, songID).Scan(&exists)
	return exists, err
}

func (r *playlistRepository) RemoveSong(ctx context.Context, playlistID, songID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?`,
		playlistID, songID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *playlistRepository) Songs(ctx context.Context, playlistID string) ([]domain.Song, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.title, m.file_url, m.thumbnail_url, m.genre, m.artist_id,
		        COALESCE(a.stage_name, '') AS artist_name, m.views
		 FROM playlist_songs ps
		 JOIN media m ON ps.song_id = m.id
		 LEFT JOIN artists a ON m.artist_id = a.id
		 WHERE ps.playlist_id = ?
		 ORDER BY m.created_at DESC, m.id DESC`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := []domain.Song{}
	for rows.Next() {
		var s domain.Song
		var thumb sql.NullString
		if err := rows.Scan(&s.ID, &s.Title, &s.FileURL, &thumb, &s.Genre, &s.ArtistID, &s.ArtistName, &s.Views); err != nil {
			return nil, err
		}
		s.ThumbnailURL = thumb.String
		songs = append(songs, s)
	}
	return songs, rows.Err()
}
