package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/anashalam/music-app-backend/domain"
	sqlite3 "github.com/mattn/go-sqlite3"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateBio(ctx context.Context, id, bio string) error
	UpdateProfilePic(ctx context.Context, id, url string) error
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// isUniqueViolation reports whether err is a unique-constraint failure from
// the store, so callers can surface it as a conflict instead of a 500.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password, role, bio, profile_pic_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.Password, string(user.Role), user.Bio, user.ProfilePicURL, user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &role, &u.Bio, &u.ProfilePicURL, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password, role, bio, profile_pic_url, created_at
		 FROM users WHERE id = ?`, id)
	return r.scanUser(row)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password, role, bio, profile_pic_url, created_at
		 FROM users WHERE username = ?`, username)
	return r.scanUser(row)
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = ? OR email = ?)`,
		username, email).Scan(&exists)
	return exists, err
}

func (r *userRepository) UpdateBio(ctx context.Context, id, bio string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET bio = ? WHERE id = ?`, bio, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *userRepository) UpdateProfilePic(ctx context.Context, id, url string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET profile_pic_url = ? WHERE id = ?`, url, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// requireRow maps a zero-row update/delete to ErrNotFound.
func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
