package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/anashalam/music-app-backend/domain"
)

// MediaOwnership is what the ownership resolver needs: the user at the end of
// the media -> artist -> user chain, plus the asset paths for cleanup.
type MediaOwnership struct {
	OwnerUserID  string
	FileURL      string
	ThumbnailURL string
}

// SongDetails is the single-song projection with optional sponsored-slot
// metadata.
type SongDetails struct {
	ID           string
	Title        string
	FileURL      string
	ThumbnailURL string
	Views        int64
	Ad           *domain.Ad
}

type MediaRepository interface {
	Create(ctx context.Context, m *domain.Media) error
	Exists(ctx context.Context, id string) (bool, error)
	FindOwnership(ctx context.Context, id string) (*MediaOwnership, error)
	Details(ctx context.Context, id string) (*SongDetails, error)
	Search(ctx context.Context, query string) ([]domain.Song, error)
	ListAll(ctx context.Context) ([]domain.Song, error)
	Trending(ctx context.Context, limit int) ([]domain.Song, error)
	SongsByArtist(ctx context.Context, artistID string) ([]domain.Song, error)
	IncrementViews(ctx context.Context, id string) error
	AssignAd(ctx context.Context, songID, adID string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	TotalViews(ctx context.Context) (int64, error)
}

type mediaRepository struct {
	db *sql.DB
}

func NewMediaRepository(db *sql.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, m *domain.Media) error {
	var thumb interface{}
	if m.ThumbnailURL != "" {
		thumb = m.ThumbnailURL
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO media (id, artist_id, title, genre, file_url, thumbnail_url, views, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?)`,
		m.ID, m.ArtistID, m.Title, m.Genre, m.FileURL, thumb, m.CreatedAt,
	)
	return err
}

func (r *mediaRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM media WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

func (r *mediaRepository) FindOwnership(ctx context.Context, id string) (*MediaOwnership, error) {
	var o MediaOwnership
	var thumb sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT a.user_id, m.file_url, m.thumbnail_url
		 FROM media m
		 JOIN artists a ON m.artist_id = a.id
		 WHERE m.id = ?`, id).
		Scan(&o.OwnerUserID, &o.FileURL, &thumb)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.ThumbnailURL = thumb.String
	return &o, nil
}

func (r *mediaRepository) Details(ctx context.Context, id string) (*SongDetails, error) {
	var d SongDetails
	var thumb sql.NullString
	var adID, adTitle, adImage, adTarget, adType sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT m.id, m.title, m.file_url, m.thumbnail_url, m.views,
		        ad.id, ad.title, ad.ad_image_url, ad.target_url, ad.ad_type
		 FROM media m
		 LEFT JOIN ads ad ON m.ad_id = ad.id
		 WHERE m.id = ?`, id).
		Scan(&d.ID, &d.Title, &d.FileURL, &thumb, &d.Views,
			&adID, &adTitle, &adImage, &adTarget, &adType)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d.ThumbnailURL = thumb.String
	if adID.Valid {
		d.Ad = &domain.Ad{
			ID:         adID.String,
			Title:      adTitle.String,
			AdImageURL: adImage.String,
			TargetURL:  adTarget.String,
			AdType:     adType.String,
		}
	}
	return &d, nil
}

const songColumns = `m.id, m.title, m.file_url, m.thumbnail_url, m.genre, m.artist_id,
		COALESCE(a.stage_name, '') AS artist_name, m.views`

func (r *mediaRepository) querySongs(ctx context.Context, query string, args ...interface{}) ([]domain.Song, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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

func (r *mediaRepository) Search(ctx context.Context, query string) ([]domain.Song, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	return r.querySongs(ctx,
		`SELECT `+songColumns+`
		 FROM media m
		 LEFT JOIN artists a ON m.artist_id = a.id
		 WHERE LOWER(m.title) LIKE ?
		    OR LOWER(m.genre) LIKE ?
		    OR LOWER(a.stage_name) LIKE ?
		 ORDER BY m.created_at DESC, m.id DESC`,
		pattern, pattern, pattern)
}

func (r *mediaRepository) ListAll(ctx context.Context) ([]domain.Song, error) {
	return r.querySongs(ctx,
		`SELECT `+songColumns+`
		 FROM media m
		 LEFT JOIN artists a ON m.artist_id = a.id
		 ORDER BY m.created_at DESC, m.id DESC`)
}

func (r *mediaRepository) Trending(ctx context.Context, limit int) ([]domain.Song, error) {
	return r.querySongs(ctx,
		`SELECT `+songColumns+`
		 FROM media m
		 LEFT JOIN artists a ON m.artist_id = a.id
		 ORDER BY m.views DESC, m.id ASC
		 LIMIT ?`, limit)
}

func (r *mediaRepository) SongsByArtist(ctx context.Context, artistID string) ([]domain.Song, error) {
	return r.querySongs(ctx,
		`SELECT `+songColumns+`
		 FROM media m
		 LEFT JOIN artists a ON m.artist_id = a.id
		 WHERE m.artist_id = ?
		 ORDER BY m.created_at DESC, m.id DESC`, artistID)
}

// IncrementViews bumps the counter in a single UPDATE so concurrent plays on
// the same song never lose updates.
func (r *mediaRepository) IncrementViews(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE media SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *mediaRepository) AssignAd(ctx context.Context, songID, adID string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE media SET ad_id = ? WHERE id = ?`, adID, songID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *mediaRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *mediaRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media`).Scan(&n)
	return n, err
}

func (r *mediaRepository) TotalViews(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(views), 0) FROM media`).Scan(&n)
	return n, err
}
