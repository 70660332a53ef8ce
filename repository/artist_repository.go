package repository

import (
	"context"
	"database/sql"

	"github.com/anashalam/music-app-backend/domain"
)

// ArtistProfile is the public projection of an artist joined with the owning
// user's account fields.
type ArtistProfile struct {
	ID            string
	StageName     string
	Bio           string
	IsVerified    bool
	Username      string
	ProfilePicURL string
}

type ArtistRepository interface {
	// CreateWithRolePromotion inserts the artist row and promotes the owning
	// user's role to artist in a single transaction, so a crash between the
	// two writes cannot leave them out of sync.
	CreateWithRolePromotion(ctx context.Context, artist *domain.Artist) error
	FindByUserID(ctx context.Context, userID string) (*domain.Artist, error)
	FindByID(ctx context.Context, id string) (*domain.Artist, error)
	ProfileByID(ctx context.Context, id string) (*ArtistProfile, error)
	SetVerified(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type artistRepository struct {
	db *sql.DB
}

func NewArtistRepository(db *sql.DB) ArtistRepository {
	return &artistRepository{db: db}
}

func (r *artistRepository) CreateWithRolePromotion(ctx context.Context, artist *domain.Artist) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO artists (id, user_id, stage_name, bio, profile_image_url) VALUES (?, ?, ?, ?, ?)`,
		artist.ID, artist.UserID, artist.StageName, artist.Bio, artist.ProfileImageURL,
	)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyArtist
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET role = ? WHERE id = ?`,
		string(domain.RoleArtist), artist.UserID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *artistRepository) scanArtist(row *sql.Row) (*domain.Artist, error) {
	var a domain.Artist
	err := row.Scan(&a.ID, &a.UserID, &a.StageName, &a.Bio, &a.IsVerified, &a.ProfileImageURL)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *artistRepository) FindByUserID(ctx context.Context, userID string) (*domain.Artist, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, stage_name, bio, is_verified, profile_image_url
		 FROM artists WHERE user_id = ?`, userID)
	return r.scanArtist(row)
}

func (r *artistRepository) FindByID(ctx context.Context, id string) (*domain.Artist, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, stage_name, bio, is_verified, profile_image_url
		 FROM artists WHERE id = ?`, id)
	return r.scanArtist(row)
}

func (r *artistRepository) ProfileByID(ctx context.Context, id string) (*ArtistProfile, error) {
	var p ArtistProfile
	err := r.db.QueryRowContext(ctx,
		`SELECT a.id, a.stage_name, a.bio, a.is_verified, u.username, u.profile_pic_url
		 FROM artists a
		 JOIN users u ON a.user_id = u.id
		 WHERE a.id = ?`, id).
		Scan(&p.ID, &p.StageName, &p.Bio, &p.IsVerified, &p.Username, &p.ProfilePicURL)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *artistRepository) SetVerified(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE artists SET is_verified = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *artistRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists`).Scan(&n)
	return n, err
}
