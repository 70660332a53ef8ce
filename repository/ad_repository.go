package repository

import (
	"context"
	"database/sql"

	"github.com/anashalam/music-app-backend/domain"
)

type AdRepository interface {
	Create(ctx context.Context, ad *domain.Ad) error
	Exists(ctx context.Context, id string) (bool, error)
}

type adRepository struct {
	db *sql.DB
}

func NewAdRepository(db *sql.DB) AdRepository {
	return &adRepository{db: db}
}

func (r *adRepository) Create(ctx context.Context, ad *domain.Ad) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ads (id, title, ad_image_url, target_url, ad_type) VALUES (?, ?, ?, ?, ?)`,
		ad.ID, ad.Title, ad.AdImageURL, ad.TargetURL, ad.AdType)
	return err
}

func (r *adRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM ads WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}
