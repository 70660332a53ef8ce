package repository

import (
	"context"
	"database/sql"

	"github.com/anashalam/music-app-backend/domain"
)

// FollowedArtist is the listing projection for a user's followed artists.
type FollowedArtist struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profile_image"`
}

type SocialRepository interface {
	Follow(ctx context.Context, f *domain.Follower) error
	Unfollow(ctx context.Context, userID, artistID string) error
	IsFollowing(ctx context.Context, userID, artistID string) (bool, error)
	Following(ctx context.Context, userID string) ([]FollowedArtist, error)
	FollowerCount(ctx context.Context, artistID string) (int64, error)

	Like(ctx context.Context, l *domain.Like) error
	Unlike(ctx context.Context, userID, songID string) error
	HasLiked(ctx context.Context, userID, songID string) (bool, error)
	LikedSongs(ctx context.Context, userID string) ([]domain.Song, error)
}

type socialRepository struct {
	db *sql.DB
}

func NewSocialRepository(db *sql.DB) SocialRepository {
	return &socialRepository{db: db}
}

func (r *socialRepository) Follow(ctx context.Context, f *domain.Follower) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO followers (id, user_id, artist_id) VALUES (?, ?, ?)`,
		f.ID, f.UserID, f.ArtistID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

// Unfollow is a no-op when the relation does not exist.
func (r *socialRepository) Unfollow(ctx context.Context, userID, artistID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM followers WHERE user_id = ? AND artist_id = ?`, userID, artistID)
	return err
}

func (r *socialRepository) IsFollowing(ctx context.Context, userID, artistID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM followers WHERE user_id = ? AND artist_id = ?)`,
		userID, artistID).Scan(&exists)
	return exists, err
}

func (r *socialRepository) Following(ctx context.Context, userID string) ([]FollowedArtist, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.stage_name, a.profile_image_url
		 FROM followers f
		 JOIN artists a ON f.artist_id = a.id
		 WHERE f.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	following := []FollowedArtist{}
	for rows.Next() {
		var fa FollowedArtist
		if err := rows.Scan(&fa.ID, &fa.Name, &fa.ProfileImageURL); err != nil {
			return nil, err
		}
		following = append(following, fa)
	}
	return following, rows.Err()
}

func (r *socialRepository) FollowerCount(ctx context.Context, artistID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM followers WHERE artist_id = ?`, artistID).Scan(&n)
	return n, err
}

func (r *socialRepository) Like(ctx context.Context, l *domain.Like) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO likes (id, user_id, song_id) VALUES (?, ?, ?)`,
		l.ID, l.UserID, l.SongID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

// Unlike is a no-op when the relation does not exist.
func (r *socialRepository) Unlike(ctx context.Context, userID, songID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = ? AND song_id = ?`, userID, songID)
	return err
}

func (r *socialRepository) HasLiked(ctx context.Context, userID, songID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = ? AND song_id = ?)`,
		userID, songID).Scan(&exists)
	return exists, err
}

func (r *socialRepository) LikedSongs(ctx context.Context, userID string) ([]domain.Song, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.title, m.file_url, m.thumbnail_url, m.genre, m.artist_id,
		        COALESCE(a.stage_name, '') AS artist_name, m.views
		 FROM likes l
		 JOIN media m ON l.song_id = m.id
		 LEFT JOIN artists a ON m.artist_id = a.id
		 WHERE l.user_id = ?`, userID)
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
